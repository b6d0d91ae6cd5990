package keyword

import (
	"context"
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/es"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/huella/internal/corpus"
)

// Field names of an indexed entry.
const (
	fieldAuthor  = "author"
	fieldText    = "text"
	fieldStemmed = "stemmed"
)

// entryDoc is the indexed form of a corpus entry. Text is indexed twice:
// word for word, and through the Spanish analyzer so inflected forms match.
type entryDoc struct {
	Author  string `json:"author"`
	Text    string `json:"text"`
	Stemmed string `json:"stemmed"`
}

// CorpusIndex is an in-memory full-text index over a corpus. It is built
// once and only read afterwards.
type CorpusIndex struct {
	index   bleve.Index
	entries map[string]corpus.Entry
	checker *SpellChecker
}

func newMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()

	doc := bleve.NewDocumentMapping()
	plain := bleve.NewTextFieldMapping()
	plain.Analyzer = standard.Name
	stemmed := bleve.NewTextFieldMapping()
	stemmed.Analyzer = es.AnalyzerName
	stemmed.Store = false

	doc.AddFieldMappingsAt(fieldAuthor, plain)
	doc.AddFieldMappingsAt(fieldText, plain)
	doc.AddFieldMappingsAt(fieldStemmed, stemmed)
	im.DefaultMapping = doc
	im.DefaultAnalyzer = standard.Name
	return im
}

// NewCorpusIndex indexes every entry of c.
func NewCorpusIndex(c *corpus.Corpus) (*CorpusIndex, error) {
	index, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}

	ci := &CorpusIndex{index: index, entries: make(map[string]corpus.Entry, c.Len())}
	batch := index.NewBatch()
	for _, e := range c.Entries() {
		id := strconv.Itoa(e.ID)
		ci.entries[id] = e
		if err := batch.Index(id, entryDoc{Author: e.Author, Text: e.Text, Stemmed: e.Text}); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index entry %d: %w", e.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to index corpus: %w", err)
	}
	ci.checker = NewSpellChecker(ci)
	return ci, nil
}

// Search returns up to limit entries matching query, best first. A match on
// any field counts; fuzzy options tolerate misspelled query terms.
func (ci *CorpusIndex) Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*Hit, error) {
	if limit <= 0 {
		limit = 10
	}
	req := bleve.NewSearchRequest(ci.buildQuery(query, opts))
	req.Size = limit
	res, err := ci.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	hits := make([]*Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		e, ok := ci.entries[h.ID]
		if !ok {
			continue
		}
		hits = append(hits, &Hit{ID: e.ID, Author: e.Author, Score: h.Score})
	}
	return hits, nil
}

func (ci *CorpusIndex) buildQuery(query string, opts *SearchOptions) blevequery.Query {
	if opts != nil && opts.Fuzzy {
		fuzziness := opts.Fuzziness
		if fuzziness <= 0 {
			fuzziness = 1
		}
		terms := tokenizeQuery(query)
		queries := make([]blevequery.Query, 0, 2*len(terms))
		for _, t := range terms {
			for _, field := range []string{fieldAuthor, fieldText} {
				fq := bleve.NewFuzzyQuery(t)
				fq.SetFuzziness(fuzziness)
				fq.SetField(field)
				queries = append(queries, fq)
			}
		}
		if len(queries) > 0 {
			return bleve.NewDisjunctionQuery(queries...)
		}
	}

	queries := make([]blevequery.Query, 0, 3)
	for _, field := range []string{fieldAuthor, fieldText, fieldStemmed} {
		mq := bleve.NewMatchQuery(query)
		mq.SetField(field)
		queries = append(queries, mq)
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// Suggest returns query with unknown terms replaced by the closest corpus
// vocabulary, and whether anything changed.
func (ci *CorpusIndex) Suggest(query string) (string, bool) {
	res, err := ci.checker.Check(query)
	if err != nil || !res.HasCorrections {
		return query, false
	}
	return res.CorrectedQuery, true
}

// DocCount returns the number of indexed entries.
func (ci *CorpusIndex) DocCount() (uint64, error) {
	return ci.index.DocCount()
}

// Terms returns the distinct words of the corpus texts.
func (ci *CorpusIndex) Terms() ([]string, error) {
	dict, err := ci.index.FieldDict(fieldText)
	if err != nil {
		return nil, fmt.Errorf("failed to read term dictionary: %w", err)
	}
	defer dict.Close()

	terms := make([]string, 0)
	for {
		entry, err := dict.Next()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			break
		}
		terms = append(terms, entry.Term)
	}
	return terms, nil
}

// TermFrequency returns the number of entries whose text contains term.
func (ci *CorpusIndex) TermFrequency(term string) (int, error) {
	q := bleve.NewTermQuery(term)
	q.SetField(fieldText)
	req := bleve.NewSearchRequest(q)
	req.Size = 0
	res, err := ci.index.Search(req)
	if err != nil {
		return 0, fmt.Errorf("failed to search for term frequency: %w", err)
	}
	return int(res.Total), nil
}

// Close releases the index.
func (ci *CorpusIndex) Close() error {
	return ci.index.Close()
}
