// Package main provides the entry point for the envporter CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nvinuesa/envporter/internal/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-edge"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	verbose bool
	logger  *zap.Logger
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "envporter",
		Short: "Convert .env files to Bitwarden Secrets Manager import JSON",
		Long: `envporter converts a .env file into the JSON format accepted by the
Bitwarden Secrets Manager import feature.

Each KEY=VALUE line becomes a secret. Inline comments can be kept as secret
notes, and all secrets can be assigned to an existing project or to a new
project declared in the same document.

By default, output is written to stdout. Use --output-file to write to a file.
Logs are written to stderr so the JSON can be piped or redirected.

Examples:
  # Convert to stdout
  envporter convert .env > import.json

  # Convert to file, keeping comments as notes
  envporter convert .env --parse-comments --output-file import.json

  # Assign everything to a new project
  envporter convert .env -n my-new-project -o import.json

  # Preview without conversion
  envporter preview .env`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = logging.New(cmd.ErrOrStderr(), a.verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable completion command
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output on stderr")

	cmd.AddCommand(newConvertCmd(a))
	cmd.AddCommand(newPreviewCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
