// Package search ranks corpus documents against free-text queries using a
// weighted multi-factor scoring model. Title and identifier matches are
// curated, low-noise signals and dominate; raw content matches are
// deliberately down-weighted per distinct term, not per occurrence, so long
// documents cannot win purely on volume.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
)

// Weights holds the scoring policy. The defaults are empirically chosen
// constants carried over from production use; they are policy knobs, not
// correctness requirements, so callers may tune them via configuration.
type Weights struct {
	NumberInTitle int `koanf:"number_in_title" yaml:"number_in_title"`
	TermInTitle   int `koanf:"term_in_title" yaml:"term_in_title"`
	NumberInID    int `koanf:"number_in_id" yaml:"number_in_id"`
	TermInID      int `koanf:"term_in_id" yaml:"term_in_id"`
	ContentTerm   int `koanf:"content_term" yaml:"content_term"`
	TypeMatch     int `koanf:"type_match" yaml:"type_match"`
	MinScore      int `koanf:"min_score" yaml:"min_score"`
}

// DefaultWeights returns the production scoring policy.
func DefaultWeights() Weights {
	return Weights{
		NumberInTitle: 100,
		TermInTitle:   50,
		NumberInID:    80,
		TermInID:      30,
		ContentTerm:   5,
		TypeMatch:     60,
		MinScore:      30,
	}
}

// typeKeywords are query words that name a document type. A query carrying
// one of these earns the type-match boost when the document identifier
// carries the same word.
var typeKeywords = []string{"ley", "decreto", "circular", "resolución", "resolucion", "conpes"}

// ScoredDocument is the transient result of ranking one document against a
// query. MatchedFactors lists the human-readable reasons contributing to the
// score, for explainability; ranking uses only Score.
type ScoredDocument struct {
	Document       library.Document `json:"document"`
	Score          int              `json:"score"`
	MatchedFactors []string         `json:"matched_factors"`
}

// ContentFunc resolves a document id to its full text. Content is read
// lazily per candidate rather than preloaded.
type ContentFunc func(ctx context.Context, id string) (string, error)

// Scorer ranks documents against queries.
type Scorer struct {
	weights Weights
	content ContentFunc
}

// NewScorer creates a Scorer with the given policy. content may be nil, in
// which case the content factor is skipped entirely.
func NewScorer(weights Weights, content ContentFunc) *Scorer {
	return &Scorer{weights: weights, content: content}
}

// Score ranks the candidate documents against the query. Results are sorted
// descending by score, ties stable in candidate order, and documents below
// the minimum relevance threshold are dropped entirely rather than ranked
// last.
func (s *Scorer) Score(ctx context.Context, query string, docs []library.Document) []ScoredDocument {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	var results []ScoredDocument
	for _, doc := range docs {
		scored := s.scoreOne(ctx, terms, doc)
		if scored.Score >= s.weights.MinScore {
			results = append(results, scored)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// scoreOne computes the weighted sum of the independent match factors for a
// single document.
func (s *Scorer) scoreOne(ctx context.Context, terms []string, doc library.Document) ScoredDocument {
	title := strings.ToLower(doc.Title)
	id := strings.ToLower(doc.ID)

	scored := ScoredDocument{Document: doc}
	add := func(points int, format string, args ...any) {
		scored.Score += points
		scored.MatchedFactors = append(scored.MatchedFactors,
			fmt.Sprintf(format+" (+%d)", append(args, points)...))
	}

	for _, term := range terms {
		if isNumeric(term) {
			if strings.Contains(title, term) {
				add(s.weights.NumberInTitle, "number %q in title", term)
			}
			if strings.Contains(id, term) {
				add(s.weights.NumberInID, "number %q in filename", term)
			}
		} else {
			if strings.Contains(title, term) {
				add(s.weights.TermInTitle, "term %q in title", term)
			}
			if strings.Contains(id, term) {
				add(s.weights.TermInID, "term %q in filename", term)
			}
		}
	}

	// Content factor: once per distinct matching term, never per occurrence.
	if content := s.loadContent(ctx, doc.ID); content != "" {
		for _, term := range terms {
			if strings.Contains(content, term) {
				add(s.weights.ContentTerm, "term %q in content", term)
			}
		}
	}

	for _, keyword := range typeKeywords {
		if containsTerm(terms, keyword) && strings.Contains(id, keyword) {
			add(s.weights.TypeMatch, "type keyword %q matches document", keyword)
			break
		}
	}

	return scored
}

// loadContent fetches the lowercased full text, or "" when unavailable. A
// content read failure only suppresses the content factor; it never fails
// the query.
func (s *Scorer) loadContent(ctx context.Context, id string) string {
	if s.content == nil {
		return ""
	}
	content, err := s.content(ctx, id)
	if err != nil {
		return ""
	}
	return strings.ToLower(content)
}

// tokenize splits a query into lowercase whitespace-delimited terms. Every
// term survives, short ones included: citations like "ley 80" hinge on
// two-digit numbers, so there is no stop-word list and no minimum length.
// Duplicates collapse so repeating a term cannot inflate any factor.
func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	terms := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

func isNumeric(term string) bool {
	for _, r := range term {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(term) > 0
}

func containsTerm(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}
