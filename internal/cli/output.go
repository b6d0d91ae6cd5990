// Package cli renders Huella results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/huella/internal/models"
	"github.com/hyperjump/huella/internal/patterns"
	"github.com/hyperjump/huella/internal/ranking"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is the human-readable report (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one line per result, tab separated.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a format name. The empty string selects text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputText, nil
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, compact or json)", s)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteAnalysis writes an analysis in the given format.
func WriteAnalysis(w io.Writer, resp *models.AnalyzeResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, resp)
	case OutputCompact:
		for _, m := range resp.Matches {
			fmt.Fprintf(w, "%d\t%s\t%.2f%%\n", m.EntryID, m.Author, m.Percentage)
		}
		return nil
	default:
		fmt.Fprintln(w, resp.Report)
		return nil
	}
}

// WriteComparison writes a two-text comparison in the given format.
func WriteComparison(w io.Writer, resp *models.CompareResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, resp)
	case OutputCompact:
		fmt.Fprintf(w, "%.2f%%\n", resp.Percentage)
		return nil
	default:
		fmt.Fprintf(w, "Similitud: %.2f%%\n", resp.Percentage)
		writeSubScores(w, resp.Detail)
		return nil
	}
}

func writeSubScores(w io.Writer, d *ranking.Detail) {
	if d == nil {
		return
	}
	for _, s := range d.SubScores() {
		fmt.Fprintf(w, "  - %s: %.2f\n", s.Key, s.Value)
	}
}

// WriteProfile writes the profile of one text in the given format.
func WriteProfile(w io.Writer, resp *models.ProfileResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, resp)
	case OutputCompact:
		for _, c := range patterns.Categories() {
			fmt.Fprintf(w, "%s\t%d\n", c.Key(), len(resp.Patterns[c]))
		}
		return nil
	default:
		fmt.Fprintf(w, "Palabras: %d\n", resp.Basic.WordCount)
		fmt.Fprintf(w, "Oraciones: %d\n", resp.Basic.SentenceCount)
		fmt.Fprintf(w, "Palabras por oración: %.2f\n", resp.Basic.AvgWordsPerSentence)
		fmt.Fprintf(w, "Longitud media de oración: %.2f (desviación %.2f)\n",
			resp.Stats.Sentences.Mean, resp.Stats.Sentences.StdDev)
		fmt.Fprintf(w, "Longitud media de palabra: %.2f\n", resp.Stats.Words.AvgWordLength)
		fmt.Fprintf(w, "Proporción de palabras únicas: %.2f\n", resp.Stats.Words.UniqueRatio)
		if len(resp.CommonWords) > 0 {
			fmt.Fprintf(w, "Palabras frecuentes: %s\n", strings.Join(resp.CommonWords, ", "))
		}
		fmt.Fprintln(w, "\nPatrones ortográficos:")
		for _, c := range patterns.Categories() {
			findings := resp.Patterns[c]
			fmt.Fprintf(w, "  %s: %d\n", c.Key(), len(findings))
			for i, f := range findings {
				if i == 3 {
					break
				}
				fmt.Fprintf(w, "    %s -> %s\n", f.Original, f.Transformed)
			}
		}
		return nil
	}
}

// WriteCorpus writes a corpus listing in the given format.
func WriteCorpus(w io.Writer, entries []*models.CorpusEntrySummary, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, entries)
	case OutputCompact:
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%d\n", e.ID, e.Author, e.WordCount)
		}
		return nil
	default:
		fmt.Fprintf(w, "%d textos en el corpus\n\n", len(entries))
		for _, e := range entries {
			fmt.Fprintf(w, "[%d] %s (%d palabras)\n    %s\n", e.ID, e.Author, e.WordCount, e.Preview)
		}
		return nil
	}
}

// WriteCorpusSearch writes corpus search hits in the given format.
func WriteCorpusSearch(w io.Writer, resp *models.CorpusSearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, resp)
	case OutputCompact:
		for _, h := range resp.Hits {
			fmt.Fprintf(w, "%d\t%s\t%.4f\n", h.ID, h.Author, h.Score)
		}
		return nil
	default:
		fmt.Fprintf(w, "%d resultados para %q en %dms\n", resp.Total, resp.Query, resp.QueryTime)
		if resp.DidYouMean != "" {
			fmt.Fprintf(w, "¿Quisiste decir: %q?\n", resp.DidYouMean)
		}
		if resp.AutoFuzzy {
			fmt.Fprintln(w, "(búsqueda aproximada)")
		}
		for _, h := range resp.Hits {
			fmt.Fprintf(w, "[%d] %s  score %.4f\n", h.ID, h.Author, h.Score)
		}
		return nil
	}
}
