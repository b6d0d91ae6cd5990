package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/cli"
	"github.com/hyperjump/huella/internal/config"
	"github.com/hyperjump/huella/internal/extract"
	"github.com/hyperjump/huella/internal/models"
)

// inputOptions select where the text to analyze comes from.
type inputOptions struct {
	file string
	text string
}

func (o *inputOptions) register(cmd *cobra.Command) {
	exts := make([]string, 0, len(extract.SupportedExtensions()))
	for _, ext := range extract.SupportedExtensions() {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "read the text from a file ("+strings.Join(exts, ", ")+")")
	cmd.Flags().StringVarP(&o.text, "text", "t", "", "text to analyze")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
}

// read returns the input text: --text, then --file, then stdin.
func (o *inputOptions) read(stdin io.Reader) (string, error) {
	switch {
	case o.text != "":
		return o.text, nil
	case o.file != "":
		return readFile(o.file)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

func readFile(path string) (string, error) {
	text, err := extract.NewExtractor().Extract(path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}

type analyzeOptions struct {
	input         inputOptions
	minSimilarity string
	output        string
	save          string
	workers       int
	limit         int
	serverURL     string
}

func newAnalyzeCmd(g *globalOptions) *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank the corpus authors by similarity to a text",
		Long: `Analyze a Spanish text and list the corpus authors whose writing style is
closest, best first, with every sub-score and examples of the spelling
patterns found in the text.

The text comes from --text, --file, or standard input.`,
		Example: `  huella analyze --file carta.docx
  huella analyze --text "Ayer bine a la escuela" --min-similarity 50
  cat texto.txt | huella analyze --output json --save informe.json
  huella analyze --file texto.txt --server http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, g, o)
		},
	}
	o.input.register(cmd)
	cmd.Flags().StringVarP(&o.minSimilarity, "min-similarity", "m", "", "minimum similarity percentage, 0-100 (default from config, 70)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "text", "output format: text, compact or json")
	cmd.Flags().StringVar(&o.save, "save", "", "also write the output to this file (UTF-8)")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 0, "parallel comparisons (default from config)")
	cmd.Flags().IntVarP(&o.limit, "limit", "n", 0, "maximum number of matches (0 = all)")
	cmd.Flags().StringVar(&o.serverURL, "server", "", "analyze through a running huella server instead of locally")
	return cmd
}

func runAnalyze(cmd *cobra.Command, g *globalOptions, o *analyzeOptions) error {
	format, err := cli.ParseOutputFormat(o.output)
	if err != nil {
		return err
	}
	e, err := newEnv(g)
	if err != nil {
		return err
	}
	defer e.close()

	text, err := o.input.read(cmd.InOrStdin())
	if err != nil {
		return err
	}
	req := &models.AnalyzeRequest{Text: text, Limit: o.limit}
	if o.minSimilarity != "" {
		threshold, ok := config.ParseThreshold(o.minSimilarity)
		if !ok {
			e.logger.Warn("invalid min similarity, using default",
				zap.String("value", o.minSimilarity),
				zap.Float64("default", threshold))
		}
		req.MinSimilarity = &threshold
	}

	var resp *models.AnalyzeResponse
	if o.serverURL != "" {
		resp, err = analyzeViaHTTP(o.serverURL, req)
	} else {
		if o.workers > 0 {
			e.cfg.Analysis.Workers = o.workers
		}
		c, loadErr := e.loadCorpus(cmd.Context())
		if loadErr != nil {
			return loadErr
		}
		resp, err = newService(c, e.cfg, e.logger, nil, nil).Analyze(cmd.Context(), req)
	}
	if err != nil {
		return err
	}
	return emit(cmd, o.save, func(w io.Writer) error {
		return cli.WriteAnalysis(w, resp, format)
	})
}

// emit writes output to the command's stdout, and to the file at save when
// one is given.
func emit(cmd *cobra.Command, save string, write func(io.Writer) error) error {
	w := cmd.OutOrStdout()
	if save == "" {
		return write(w)
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(save, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("save output: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", save)
	return nil
}

func analyzeViaHTTP(serverURL string, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+"/api/v1/analyze", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out models.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
