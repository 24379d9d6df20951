package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	t.Run("identical strings score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("acme", "acme"))
	})

	t.Run("case and accents are ignored", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("PÉREZ", "perez"))
	})

	t.Run("empty input scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", "acme"))
		assert.Equal(t, 0.0, Similarity("acme", ""))
		assert.Equal(t, 0.0, Similarity("   ", "acme"))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, Similarity("kitten", "sitting"), Similarity("sitting", "kitten"))
	})

	t.Run("normalized edit distance", func(t *testing.T) {
		// levenshtein(kitten, sitting) = 3, max length 7
		assert.InDelta(t, 4.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	})

	t.Run("disjoint strings score low", func(t *testing.T) {
		assert.Less(t, Similarity("acme", "zzzz"), 0.3)
	})
}

func searchDocs() []map[string]interface{} {
	return []map[string]interface{}{
		{"legalName": "Acme", "taxId": "20-11111111-1", "address": map[string]interface{}{"city": "Córdoba"}},
		{"legalName": "Acme Trading", "taxId": "20-22222222-2", "address": map[string]interface{}{"city": "Rosario"}},
		{"legalName": "García e Hijos", "taxId": "20-33333333-3", "address": map[string]interface{}{"city": "Mendoza"}},
	}
}

var searchFields = []string{"legalName", "taxId", "address.city"}

func TestSearchScoredExactBeatsSubstring(t *testing.T) {
	results := SearchScored(searchDocs(), "ACME", searchFields, SearchOptions{})

	require.Len(t, results, 2)
	assert.Equal(t, "Acme", results[0].Record["legalName"])
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, []string{"legalName"}, results[0].MatchedFields)

	assert.Equal(t, "Acme Trading", results[1].Record["legalName"])
	// substring score is len(term)/len(field)
	assert.InDelta(t, 4.0/12.0, results[1].Score, 1e-9)
}

func TestSearchScoredAccentInsensitive(t *testing.T) {
	results := SearchScored(searchDocs(), "garcia", searchFields, SearchOptions{})

	require.Len(t, results, 1)
	assert.Equal(t, "García e Hijos", results[0].Record["legalName"])
}

func TestSearchScoredNestedPath(t *testing.T) {
	results := SearchScored(searchDocs(), "cordoba", searchFields, SearchOptions{})

	require.Len(t, results, 1)
	assert.Equal(t, "Acme", results[0].Record["legalName"])
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, []string{"address.city"}, results[0].MatchedFields)
}

func TestSearchScoredEmptyTermMatchesAll(t *testing.T) {
	docs := searchDocs()

	for _, term := range []string{"", "   "} {
		results := SearchScored(docs, term, searchFields, SearchOptions{})
		require.Len(t, results, len(docs))
		for i, r := range results {
			assert.Equal(t, docs[i]["legalName"], r.Record["legalName"], "input order preserved")
			assert.Equal(t, 1.0, r.Score)
		}
	}
}

func TestSearchScoredFuzzyTier(t *testing.T) {
	docs := []map[string]interface{}{{"legalName": "Acme S.A."}}

	results := SearchScored(docs, "acme sa", []string{"legalName"}, SearchOptions{})

	require.Len(t, results, 1)
	// "acme sa" vs "acme s.a.": distance 2 over length 9, scaled by the
	// fuzzy tier weight
	assert.InDelta(t, 7.0/9.0*0.6, results[0].Score, 1e-9)
}

func TestSearchScoredFuzzyCutoff(t *testing.T) {
	docs := []map[string]interface{}{{"legalName": "Acme"}}

	results := SearchScored(docs, "zzzz", []string{"legalName"}, SearchOptions{})
	assert.Empty(t, results)

	// raising the cutoff excludes a match the default would allow
	results = SearchScored(docs, "agme", []string{"legalName"}, SearchOptions{MinSimilarity: 0.9})
	assert.Empty(t, results)
	results = SearchScored(docs, "agme", []string{"legalName"}, SearchOptions{})
	assert.Len(t, results, 1)
}

func TestSearchScoredPunctuationFolding(t *testing.T) {
	docs := []map[string]interface{}{{"legalName": "Pérez & Cía. S.R.L."}}

	results := SearchScored(docs, "perez y cia srl", []string{"legalName"}, SearchOptions{FoldPunctuation: true})

	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestFilterDocsPreservesOrder(t *testing.T) {
	docs := searchDocs()

	out := FilterDocs(docs, "acme", searchFields, SearchOptions{})

	require.Len(t, out, 2)
	assert.Equal(t, "Acme", out[0]["legalName"])
	assert.Equal(t, "Acme Trading", out[1]["legalName"])
}

func TestFieldString(t *testing.T) {
	doc := map[string]interface{}{
		"legalName": "Acme",
		"address":   map[string]interface{}{"city": "Rosario"},
		"seq":       int64(42),
	}

	assert.Equal(t, "Acme", FieldString(doc, "legalName"))
	assert.Equal(t, "Rosario", FieldString(doc, "address.city"))
	assert.Equal(t, "42", FieldString(doc, "seq"))
	assert.Equal(t, "", FieldString(doc, "missing"))
	assert.Equal(t, "", FieldString(doc, "legalName.deeper"))
	assert.Equal(t, "", FieldString(doc, "address.zip"))
}

func TestSearchAnalytics(t *testing.T) {
	a := NewSearchAnalytics()
	b := NewSearchAnalytics()

	docs := searchDocs()
	SearchScored(docs, "Acme", searchFields, SearchOptions{Analytics: a})
	SearchScored(docs, "ACME", searchFields, SearchOptions{Analytics: a})
	SearchScored(docs, "garcia", searchFields, SearchOptions{Analytics: a})
	SearchScored(docs, "", searchFields, SearchOptions{Analytics: a})

	// terms are recorded normalized; empty terms are not recorded
	assert.Equal(t, 2, a.Count("acme"))
	assert.Equal(t, 1, a.Count("garcia"))
	assert.Equal(t, 0, a.Count(""))

	// instances are isolated, there is no shared package state
	assert.Equal(t, 0, b.Count("acme"))

	top := a.TopTerms(10)
	require.Len(t, top, 2)
	assert.Equal(t, TermCount{Term: "acme", Count: 2}, top[0])
	assert.Equal(t, TermCount{Term: "garcia", Count: 1}, top[1])

	assert.Len(t, a.TopTerms(1), 1)
}

func TestTopTermsTieBreak(t *testing.T) {
	a := NewSearchAnalytics()
	a.Record("zeta")
	a.Record("alfa")

	top := a.TopTerms(10)
	require.Len(t, top, 2)
	assert.Equal(t, "alfa", top[0].Term)
	assert.Equal(t, "zeta", top[1].Term)
}
