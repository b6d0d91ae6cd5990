package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/hyperjump/huella/internal/cli"
	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/models"
)

func newCompareCmd(g *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "compare FILE_A FILE_B",
		Short: "Score the stylistic similarity of two texts",
		Example: `  huella compare carta1.txt carta2.docx
  huella compare a.txt b.txt --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			e, err := newEnv(g)
			if err != nil {
				return err
			}
			defer e.close()

			a, err := readFile(args[0])
			if err != nil {
				return err
			}
			b, err := readFile(args[1])
			if err != nil {
				return err
			}
			// Comparing two texts needs no reference corpus.
			empty, _ := corpus.New(nil)
			resp, err := newService(empty, e.cfg, e.logger, nil, nil).
				Compare(cmd.Context(), &models.CompareRequest{TextA: a, TextB: b})
			if err != nil {
				return err
			}
			return emit(cmd, "", func(w io.Writer) error {
				return cli.WriteComparison(w, resp, format)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, compact or json")
	return cmd
}
