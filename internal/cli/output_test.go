package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/huella/internal/models"
	"github.com/hyperjump/huella/internal/patterns"
	"github.com/hyperjump/huella/internal/ranking"
	"github.com/hyperjump/huella/internal/report"
)

func sampleAnalysis() *models.AnalyzeResponse {
	matches := []*ranking.Match{
		{EntryID: 2, Author: "Autor2", Score: 0.8412, Percentage: 84.12, Detail: &ranking.Detail{}},
		{EntryID: 1, Author: "Autor1", Score: 0.75, Percentage: 75, Detail: &ranking.Detail{}},
	}
	return &models.AnalyzeResponse{
		ID:            "abc",
		Matches:       matches,
		Total:         len(matches),
		CorpusSize:    4,
		MinSimilarity: 70,
		Report:        report.Format(matches),
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{" compact ", OutputCompact, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteAnalysis_JSON(t *testing.T) {
	resp := sampleAnalysis()
	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, resp, OutputJSON); err != nil {
		t.Fatalf("WriteAnalysis(json): %v", err)
	}
	var decoded models.AnalyzeResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != "abc" || decoded.Total != 2 {
		t.Errorf("decoded id=%q total=%d, want id=abc total=2", decoded.ID, decoded.Total)
	}
	if len(decoded.Matches) != 2 || decoded.Matches[0].Author != "Autor2" {
		t.Errorf("decoded matches: want Autor2 first, got %+v", decoded.Matches)
	}
}

func TestWriteAnalysis_compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, sampleAnalysis(), OutputCompact); err != nil {
		t.Fatalf("WriteAnalysis(compact): %v", err)
	}
	want := "2\tAutor2\t84.12%\n1\tAutor1\t75.00%\n"
	if got := buf.String(); got != want {
		t.Errorf("compact output = %q, want %q", got, want)
	}
}

func TestWriteAnalysis_text(t *testing.T) {
	resp := sampleAnalysis()
	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, resp, OutputText); err != nil {
		t.Fatalf("WriteAnalysis(text): %v", err)
	}
	if got := buf.String(); got != resp.Report+"\n" {
		t.Errorf("text output should be the report, got %q", got)
	}
}

func TestWriteAnalysis_textNoMatches(t *testing.T) {
	resp := &models.AnalyzeResponse{Report: report.NoMatches}
	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, resp, OutputText); err != nil {
		t.Fatalf("WriteAnalysis(text): %v", err)
	}
	if !strings.Contains(buf.String(), report.NoMatches) {
		t.Errorf("expected %q in output, got %q", report.NoMatches, buf.String())
	}
}

func TestWriteComparison(t *testing.T) {
	resp := &models.CompareResponse{
		Score:      0.5,
		Percentage: 50,
		Detail:     &ranking.Detail{SentenceLength: 1, CommonWords: 0.3},
	}
	var buf bytes.Buffer
	if err := WriteComparison(&buf, resp, OutputText); err != nil {
		t.Fatalf("WriteComparison: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Similitud: 50.00%", ranking.KeySentenceLength + ": 1.00", ranking.KeyCommonWords + ": 0.30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteComparison(&buf, resp, OutputCompact); err != nil {
		t.Fatalf("WriteComparison(compact): %v", err)
	}
	if got := buf.String(); got != "50.00%\n" {
		t.Errorf("compact output = %q", got)
	}
}

func TestWriteProfile_compact(t *testing.T) {
	p := patterns.NewProfile()
	p[patterns.CategoryBV] = []patterns.Finding{{Original: "bine", Transformed: "vine"}}
	resp := &models.ProfileResponse{Patterns: p}

	var buf bytes.Buffer
	if err := WriteProfile(&buf, resp, OutputCompact); err != nil {
		t.Fatalf("WriteProfile(compact): %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(patterns.Categories()) {
		t.Fatalf("got %d lines, want one per category", len(lines))
	}
	if want := patterns.CategoryBV.Key() + "\t1"; lines[0] != want {
		t.Errorf("first line = %q, want %q", lines[0], want)
	}
}

func TestWriteProfile_text(t *testing.T) {
	p := patterns.NewProfile()
	p[patterns.CategoryBV] = []patterns.Finding{{Original: "bine", Transformed: "vine"}}
	resp := &models.ProfileResponse{Patterns: p, CommonWords: []string{"escuela"}}

	var buf bytes.Buffer
	if err := WriteProfile(&buf, resp, OutputText); err != nil {
		t.Fatalf("WriteProfile(text): %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Palabras frecuentes: escuela", "bine -> vine"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCorpus(t *testing.T) {
	entries := []*models.CorpusEntrySummary{
		{ID: 1, Author: "Autor1", WordCount: 12, Preview: "Ayer bine a la escuela"},
	}
	var buf bytes.Buffer
	if err := WriteCorpus(&buf, entries, OutputCompact); err != nil {
		t.Fatalf("WriteCorpus: %v", err)
	}
	if got := buf.String(); got != "1\tAutor1\t12\n" {
		t.Errorf("compact output = %q", got)
	}

	buf.Reset()
	if err := WriteCorpus(&buf, entries, OutputJSON); err != nil {
		t.Fatalf("WriteCorpus(json): %v", err)
	}
	var decoded []models.CorpusEntrySummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Author != "Autor1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteCorpusSearch_text(t *testing.T) {
	resp := &models.CorpusSearchResponse{
		Query:      "escuelz",
		Hits:       []*models.CorpusHit{{ID: 1, Author: "Autor1", Score: 0.5}},
		Total:      1,
		DidYouMean: "escuela",
		AutoFuzzy:  true,
	}
	var buf bytes.Buffer
	if err := WriteCorpusSearch(&buf, resp, OutputText); err != nil {
		t.Fatalf("WriteCorpusSearch: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"escuela"`, "búsqueda aproximada", "[1] Autor1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
