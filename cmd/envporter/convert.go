package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/nvinuesa/envporter/internal/bws"
	"github.com/nvinuesa/envporter/internal/config"
	"github.com/nvinuesa/envporter/internal/export"
	"github.com/nvinuesa/envporter/internal/sources"
)

type convertFlags struct {
	output          string
	parseComments   bool
	leadingComments bool
	projectID       string
	newProjectName  string
	force           bool
	configPath      string
}

func newConvertCmd(a *app) *cobra.Command {
	f := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <dotenv-path>",
		Short: "Convert a .env file to Secrets Manager import JSON",
		Long: `Convert a .env file to the Bitwarden Secrets Manager import format.

The file must contain one KEY=VALUE pair per line, optionally followed by a
comment. Blank lines, comment lines and lines without '=' are skipped.

  SECRET_VALUE_1=12345
  SECRET_VALUE_2=abcde  # Optional comment

Values are copied verbatim: quotes are kept and no escaping is applied.
Everything after the first '#' on a line is treated as a comment.

With --leading-comments, a comment line directly above a variable (no blank
line in between) is used as its note and takes precedence over an inline
comment.

An output file without extension gets .json appended; any other extension is
rejected. Existing files are only replaced with --force.

Examples:
  # Print to stdout
  envporter convert .env

  # Keep comments as notes and write to a file
  envporter convert .env -c -o import.json

  # Assign all secrets to an existing project
  envporter convert .env -p 5f0d1c8e-3b1a-4f57-9d0e-2a7c1b9e6f10

  # Declare a new project and overwrite a previous export
  envporter convert .env -n backend -o import.json --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, f, args[0])
		},
	}

	cmd.Flags().StringVarP(&f.output, "output-file", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVarP(&f.parseComments, "parse-comments", "c", false, "Keep comments as secret notes")
	cmd.Flags().BoolVar(&f.leadingComments, "leading-comments", false, "Also use a comment line directly above a variable as its note")
	cmd.Flags().StringVarP(&f.projectID, "project-id", "p", "", "Assign all secrets to the existing project with this ID")
	cmd.Flags().StringVarP(&f.newProjectName, "new-project-name", "n", "", "Declare a new project with this name and assign all secrets to it")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "Overwrite the output file if it exists")
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML file with default option values")

	cmd.MarkFlagsMutuallyExclusive("project-id", "new-project-name")

	return cmd
}

// options builds and validates the run configuration from flags and the
// optional defaults file.
func (f *convertFlags) options(cmd *cobra.Command, a *app, dotenvPath string) (*config.Options, error) {
	opts := &config.Options{
		DotenvPath:      dotenvPath,
		OutputFile:      f.output,
		ParseComments:   f.parseComments,
		LeadingComments: f.leadingComments,
		Verbose:         a.verbose,
		ForceOverwrite:  f.force,
	}

	if cmd.Flags().Changed("new-project-name") {
		name := f.newProjectName
		opts.NewProjectName = &name
	}

	if cmd.Flags().Changed("project-id") {
		id, err := config.ParseProjectID(f.projectID)
		if err != nil {
			return nil, err
		}
		opts.ProjectID = id
	}

	if f.configPath != "" {
		defaults, err := config.LoadDefaults(f.configPath)
		if err != nil {
			return nil, err
		}
		if err := defaults.Apply(opts, cmd.Flags().Changed); err != nil {
			return nil, err
		}
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Reject a bad extension before doing any work
	if !opts.ToStdout() {
		if _, err := export.ResolveOutputPath(opts.OutputFile); err != nil {
			return nil, err
		}
	}

	return opts, nil
}

func runConvert(cmd *cobra.Command, a *app, f *convertFlags, dotenvPath string) error {
	log := a.log()

	opts, err := f.options(cmd, a, dotenvPath)
	if err != nil {
		return err
	}

	vars, err := sources.ReadFile(opts.DotenvPath, sources.OpenOptions{
		ParseComments:   opts.ParseComments,
		LeadingComments: opts.LeadingComments,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	if dups := vars.Duplicates(); len(dups) > 0 {
		log.Warn("duplicate keys will produce duplicate secrets", zap.Strings("keys", dups))
	}

	assignment := opts.Assignment()
	doc := bws.Generate(vars, assignment)

	log.Debug("generated import document",
		zap.Int("secrets", len(doc.Secrets)),
		zap.Int("projects", len(doc.Projects)),
		zap.Stringer("assignment", assignment),
		zap.Stringers("project_ids", doc.ProjectIDs()),
	)

	if opts.ToStdout() {
		out := cmd.OutOrStdout()
		if isTerminal(out) {
			log.Warn("printing secret values to the terminal; use --output-file to write a file instead")
		}
		return export.Write(out, doc)
	}

	log.Info("writing to file", zap.String("path", opts.OutputFile))
	path, err := export.Export(doc, export.ExportOptions{
		OutputPath: opts.OutputFile,
		Force:      opts.ForceOverwrite,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	log.Info("output written",
		zap.String("path", path),
		zap.Int("secrets", len(doc.Secrets)),
	)

	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
