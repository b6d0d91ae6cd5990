// Package report renders ranked matches as a Spanish plain-text report.
package report

import (
	"fmt"
	"strings"

	"github.com/hyperjump/huella/internal/patterns"
	"github.com/hyperjump/huella/internal/ranking"
)

// NoMatches is the whole report when nothing passed the threshold.
const NoMatches = "No se encontraron coincidencias significativas."

// DefaultExamples is the number of findings shown per category.
const DefaultExamples = 5

// Formatter renders reports.
type Formatter struct {
	examples int
}

// NewFormatter returns a Formatter showing at most examples findings per
// category. A non-positive value selects DefaultExamples.
func NewFormatter(examples int) *Formatter {
	if examples <= 0 {
		examples = DefaultExamples
	}
	return &Formatter{examples: examples}
}

// Format renders matches with the default settings.
func Format(matches []*ranking.Match) string {
	return NewFormatter(DefaultExamples).Format(matches)
}

// Format renders matches in order. For each match it lists the author, the
// percentage, every sub-score, and examples of the input text's spelling
// findings. Categories without findings are omitted.
func (f *Formatter) Format(matches []*ranking.Match) string {
	if len(matches) == 0 {
		return NoMatches
	}

	var lines []string
	for _, m := range matches {
		lines = append(lines,
			"\nCoincidencia con Autor: "+m.Author,
			fmt.Sprintf("Porcentaje de similitud: %.2f%%", m.Percentage),
			"\nDetalles de la similitud:",
		)
		if m.Detail == nil {
			continue
		}
		for _, s := range m.Detail.SubScores() {
			lines = append(lines, fmt.Sprintf("- %s: %.2f", s.Key, s.Value))
		}

		lines = append(lines, "\nPatrones de errores ortográficos encontrados:")
		for _, c := range patterns.Categories() {
			findings := m.Detail.InputPatterns[c]
			if len(findings) == 0 {
				continue
			}
			lines = append(lines, "\n"+c.Key()+":")
			for _, fd := range findings[:min(f.examples, len(findings))] {
				lines = append(lines, fmt.Sprintf("  %s -> %s", fd.Original, fd.Transformed))
			}
		}
	}
	return strings.Join(lines, "\n")
}
