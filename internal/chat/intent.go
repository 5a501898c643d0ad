// Package chat implements the question answering pipeline: query
// classification, document ranking, context assembly, and answer generation
// grounded exclusively in the indexed corpus.
package chat

import (
	"regexp"
	"strings"
)

// articleRefRe captures an article number cited in the user's question.
var articleRefRe = regexp.MustCompile(`(?i)art[íi]culo\s+(\d+)`)

// greetings are openings answered with a canned response, with no ranking
// and no generation round-trip behind them.
var greetings = []string{
	"hola",
	"buenos días",
	"buenos dias",
	"buenas tardes",
	"buenas noches",
	"buen día",
	"buen dia",
	"saludos",
	"hey",
	"hello",
	"hi",
}

// fullDocumentPhrases signal the user wants the whole instrument, not one
// cited article, so assembly switches to the larger per-document budget.
var fullDocumentPhrases = []string{
	"completo",
	"resumen",
	"resume",
	"de qué trata",
	"de que trata",
	"tema principal",
	"explica el documento",
	"todo el documento",
}

// isGreeting reports whether the query is a social opening rather than a
// legal question.
func isGreeting(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.TrimRight(q, "!¡.,?¿ ")
	for _, g := range greetings {
		if q == g || strings.HasPrefix(q, g+" ") {
			return true
		}
	}
	return false
}

// articleReference returns the article number cited in the query, or "".
func articleReference(query string) string {
	if m := articleRefRe.FindStringSubmatch(query); m != nil {
		return m[1]
	}
	return ""
}

// wantsFullDocument reports whether the query asks about a document as a
// whole.
func wantsFullDocument(query string) bool {
	q := strings.ToLower(query)
	for _, phrase := range fullDocumentPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}
