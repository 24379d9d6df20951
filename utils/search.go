// utils/search.go
package utils

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Similarity returns a fuzzy similarity score in [0,1] between a and b,
// computed as the normalized Levenshtein distance over Normalize(a) and
// Normalize(b). Identical normalized strings score 1; if either input
// normalizes to empty, the score is 0.
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	ra := []rune(na)
	rb := []rune(nb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	dist := levenshtein(ra, rb)
	return float64(maxLen-dist) / float64(maxLen)
}

// levenshtein computes the classic edit distance with a two-row DP table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// SearchOptions configures multi-field search.
type SearchOptions struct {
	// MinSimilarity is the fuzzy-tier cutoff; fields scoring below it on
	// the fuzzy tier do not match. Zero means DefaultMinSimilarity.
	MinSimilarity float64
	// FoldPunctuation switches to NormalizeFolded for comparisons.
	FoldPunctuation bool
	// Analytics, when set, records every non-empty search term.
	Analytics *SearchAnalytics
}

// DefaultMinSimilarity is the fuzzy match cutoff used when none is given.
const DefaultMinSimilarity = 0.55

// substringCap keeps substring matches strictly below an exact match.
const substringCap = 0.95

// fuzzyScale down-weights fuzzy matches relative to substring matches.
const fuzzyScale = 0.6

// SearchResult is one scored hit.
type SearchResult struct {
	Record        map[string]interface{} `json:"record"`
	Score         float64                `json:"score"`
	MatchedFields []string               `json:"matchedFields"`
}

// SearchScored matches term against the given dot-separated field paths of
// every document and returns scored hits sorted by descending score
// (stable, so input order breaks ties). Matching tiers per field: exact
// normalized equality scores 1.0, substring containment scores
// len(term)/len(field) capped at 0.95, fuzzy similarity above the cutoff
// scores similarity*0.6. A document matches when any field clears any
// tier; its score is the maximum across fields. An empty or
// whitespace-only term matches every document with score 1.
func SearchScored(docs []map[string]interface{}, term string, fieldPaths []string, opts SearchOptions) []SearchResult {
	norm := Normalize
	if opts.FoldPunctuation {
		norm = NormalizeFolded
	}
	minSim := opts.MinSimilarity
	if minSim == 0 {
		minSim = DefaultMinSimilarity
	}

	normTerm := norm(term)
	if normTerm == "" {
		results := make([]SearchResult, 0, len(docs))
		for _, doc := range docs {
			results = append(results, SearchResult{Record: doc, Score: 1})
		}
		return results
	}

	if opts.Analytics != nil {
		opts.Analytics.Record(normTerm)
	}

	results := make([]SearchResult, 0)
	for _, doc := range docs {
		best, matched := scoreDoc(doc, normTerm, fieldPaths, norm, minSim)
		if best > 0 {
			results = append(results, SearchResult{Record: doc, Score: best, MatchedFields: matched})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// FilterDocs is the unscored variant: it keeps matching documents in their
// input order and drops the rest.
func FilterDocs(docs []map[string]interface{}, term string, fieldPaths []string, opts SearchOptions) []map[string]interface{} {
	norm := Normalize
	if opts.FoldPunctuation {
		norm = NormalizeFolded
	}
	minSim := opts.MinSimilarity
	if minSim == 0 {
		minSim = DefaultMinSimilarity
	}

	normTerm := norm(term)
	if normTerm == "" {
		return docs
	}
	if opts.Analytics != nil {
		opts.Analytics.Record(normTerm)
	}

	out := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		if score, _ := scoreDoc(doc, normTerm, fieldPaths, norm, minSim); score > 0 {
			out = append(out, doc)
		}
	}
	return out
}

// scoreDoc scores one document against a normalized term: the maximum over
// all fields and tiers, plus the list of fields that matched.
func scoreDoc(doc map[string]interface{}, normTerm string, fieldPaths []string, norm func(string) string, minSim float64) (float64, []string) {
	var best float64
	var matched []string
	for _, path := range fieldPaths {
		field := norm(FieldString(doc, path))
		if field == "" {
			continue
		}

		var score float64
		switch {
		case field == normTerm:
			score = 1
		case strings.Contains(field, normTerm):
			score = float64(len(normTerm)) / float64(len(field))
			if score > substringCap {
				score = substringCap
			}
		default:
			if sim := Similarity(normTerm, field); sim >= minSim {
				score = sim * fuzzyScale
			}
		}

		if score > 0 {
			matched = append(matched, path)
			if score > best {
				best = score
			}
		}
	}
	return best, matched
}

// FieldString resolves a dot-separated path on a decoded document and
// renders the value as a string. Missing or nil intermediates yield "".
func FieldString(doc map[string]interface{}, path string) string {
	var cur interface{} = doc
	for _, part := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]interface{}:
			cur = m[part]
		case bson.M:
			cur = m[part]
		case bson.D:
			cur = lookupD(m, part)
		default:
			return ""
		}
		if cur == nil {
			return ""
		}
	}

	switch v := cur.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func lookupD(d bson.D, key string) interface{} {
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// SearchAnalytics counts how often normalized search terms are used. It is
// an explicitly-owned value injected through SearchOptions, so callers and
// tests construct isolated instances instead of sharing package state.
type SearchAnalytics struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewSearchAnalytics returns an empty analytics accumulator.
func NewSearchAnalytics() *SearchAnalytics {
	return &SearchAnalytics{counts: make(map[string]int)}
}

// Record increments the counter for a normalized term.
func (a *SearchAnalytics) Record(term string) {
	a.mu.Lock()
	a.counts[term]++
	a.mu.Unlock()
}

// Count returns how many times a normalized term was recorded.
func (a *SearchAnalytics) Count(term string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[term]
}

// TermCount is one entry of TopTerms.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TopTerms returns the n most frequent terms, most frequent first. Ties
// break alphabetically so the order is deterministic.
func (a *SearchAnalytics) TopTerms(n int) []TermCount {
	a.mu.Lock()
	all := make([]TermCount, 0, len(a.counts))
	for term, count := range a.counts {
		all = append(all, TermCount{Term: term, Count: count})
	}
	a.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Term < all[j].Term
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}
