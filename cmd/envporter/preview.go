package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nvinuesa/envporter/internal/model"
	"github.com/nvinuesa/envporter/internal/sources"
)

type previewFlags struct {
	parseComments   bool
	leadingComments bool
}

func newPreviewCmd(a *app) *cobra.Command {
	f := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <dotenv-path>",
		Short: "Preview variables without conversion",
		Long: `Preview the variables found in a .env file without writing any output.

The preview lists every key that would become a secret, with its note when
comments are parsed. Values are never printed.

Examples:
  # Preview a .env file
  envporter preview .env

  # Preview with notes
  envporter preview .env --parse-comments --leading-comments`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := sources.ReadFile(args[0], sources.OpenOptions{
				ParseComments:   f.parseComments,
				LeadingComments: f.leadingComments,
				Logger:          a.log(),
			})
			if err != nil {
				return err
			}

			printPreview(cmd.OutOrStdout(), args[0], vars)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&f.parseComments, "parse-comments", "c", false, "show comments as notes")
	cmd.Flags().BoolVar(&f.leadingComments, "leading-comments", false, "also use a comment line directly above a variable")

	return cmd
}

// printPreview outputs the variable preview.
func printPreview(w io.Writer, inputPath string, vars model.Variables) {
	fmt.Fprintf(w, "Source: dotenv (%s)\n", inputPath)
	fmt.Fprintf(w, "Variables: %d total, %d with notes\n", len(vars), vars.WithComments())

	for _, v := range vars {
		if v.HasComment() && v.Note() != "" {
			fmt.Fprintf(w, "  - %s  # %s\n", v.Key, v.Note())
			continue
		}
		fmt.Fprintf(w, "  - %s\n", v.Key)
	}

	// Print warnings
	if dups := vars.Duplicates(); len(dups) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, key := range dups {
			fmt.Fprintf(w, "  - duplicate key %s\n", key)
		}
	}
}
