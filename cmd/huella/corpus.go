package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/cli"
	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/keyword"
	"github.com/hyperjump/huella/internal/models"
)

func newCorpusCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect and export the reference corpus",
	}
	cmd.AddCommand(newCorpusListCmd(g), newCorpusSearchCmd(g), newCorpusExportCmd(g))
	return cmd
}

func newCorpusListCmd(g *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the corpus entries",
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

			c, err := e.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			entries := newService(c, e.cfg, e.logger, nil, nil).Entries()
			return emit(cmd, "", func(w io.Writer) error {
				return cli.WriteCorpus(w, entries, format)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, compact or json")
	return cmd
}

func newCorpusSearchCmd(g *globalOptions) *cobra.Command {
	var (
		output string
		limit  int
		fuzzy  bool
	)
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Find corpus entries containing words or an author name",
		Long: `Search the corpus texts and author names. Inflected forms match, and a
query with no exact hits is retried with typo tolerance.`,
		Example: `  huella corpus search escuela
  huella corpus search --fuzzy profesora examen`,
		Args: cobra.MinimumNArgs(1),
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

			c, err := e.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			idx, err := keyword.NewCorpusIndex(c)
			if err != nil {
				return err
			}
			defer idx.Close()

			if limit <= 0 {
				limit = e.cfg.Corpus.LookupLimit
			}
			q := &models.CorpusSearchQuery{
				Query: strings.TrimSpace(strings.Join(args, " ")),
				Limit: limit,
				Fuzzy: fuzzy,
			}
			resp, err := newService(c, e.cfg, e.logger, nil, idx).Lookup(cmd.Context(), q)
			if err != nil {
				return err
			}
			return emit(cmd, "", func(w io.Writer) error {
				return cli.WriteCorpusSearch(w, resp, format)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, compact or json")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of hits (default from config)")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "tolerate typos in the query")
	return cmd
}

func newCorpusExportCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export OUT",
		Short: "Write the corpus to a SQLite database (.db) or YAML file (.yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(g)
			if err != nil {
				return err
			}
			defer e.close()

			c, err := e.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			out := args[0]
			switch strings.ToLower(filepath.Ext(out)) {
			case ".yaml", ".yml":
				err = corpus.WriteYAML(out, c)
			case ".db", ".sqlite", ".sqlite3":
				err = corpus.WriteSQLite(cmd.Context(), out, c)
			default:
				return fmt.Errorf("unsupported export format %q (want .db or .yaml)", filepath.Ext(out))
			}
			if err != nil {
				return err
			}
			e.logger.Info("corpus exported", zap.String("path", out), zap.Int("entries", c.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", c.Len(), out)
			return nil
		},
	}
}
