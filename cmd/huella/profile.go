package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/hyperjump/huella/internal/cli"
	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/models"
)

func newProfileCmd(g *globalOptions) *cobra.Command {
	var (
		input  inputOptions
		output string
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the statistics and spelling patterns of one text",
		Args:  cobra.NoArgs,
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

			text, err := input.read(cmd.InOrStdin())
			if err != nil {
				return err
			}
			empty, _ := corpus.New(nil)
			resp, err := newService(empty, e.cfg, e.logger, nil, nil).
				Profile(cmd.Context(), &models.ProfileRequest{Text: text})
			if err != nil {
				return err
			}
			return emit(cmd, "", func(w io.Writer) error {
				return cli.WriteProfile(w, resp, format)
			})
		},
	}
	input.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, compact or json")
	return cmd
}
