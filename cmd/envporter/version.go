package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, git commit, and build information for envporter.`,
		Args:  cobra.NoArgs,
		Run:   runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "envporter %s\n", Version)
	fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
	fmt.Fprintf(out, "Build date: %s\n", BuildDate)
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
