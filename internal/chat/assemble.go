package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/search"
)

const (
	// generalBudget caps the characters taken from one document in the
	// normal case.
	generalBudget = 5000
	// fullDocBudget is the larger cap used when the query asks about a
	// document as a whole. Planning documents carry their substance deep
	// in the body, so they always get this budget.
	fullDocBudget = 8000
	// articleTrailingLines is how many lines past the article boundary are
	// kept, so the model sees where the following article begins.
	articleTrailingLines = 3
)

// ContentReader resolves a document id to its full content.
type ContentReader interface {
	Content(ctx context.Context, id string) (*library.Content, error)
}

// Assembler builds the grounding context block handed to the generation
// backend from the ranked documents.
type Assembler struct {
	reader        ContentReader
	generalBudget int
	fullDocBudget int
}

// NewAssembler creates an Assembler with the default budgets.
func NewAssembler(reader ContentReader) *Assembler {
	return &Assembler{
		reader:        reader,
		generalBudget: generalBudget,
		fullDocBudget: fullDocBudget,
	}
}

// SetBudgets overrides the per-document character budgets. Zero keeps the
// current value.
func (a *Assembler) SetBudgets(general, fullDoc int) {
	if general > 0 {
		a.generalBudget = general
	}
	if fullDoc > 0 {
		a.fullDocBudget = fullDoc
	}
}

// Assemble produces one context section per ranked document, each opened by
// an attribution header. When the query cites a specific article, the
// section carries just that article plus a few trailing lines; otherwise a
// budgeted prefix of the document. A document whose content cannot be read
// is skipped, never fatal.
func (a *Assembler) Assemble(ctx context.Context, query string, docs []search.ScoredDocument) string {
	article := articleReference(query)
	fullDoc := wantsFullDocument(query)

	var b strings.Builder
	for _, sd := range docs {
		content, err := a.reader.Content(ctx, sd.Document.ID)
		if err != nil {
			continue
		}

		section := a.sectionFor(sd.Document, content.RawText, article, fullDoc)
		if section == "" {
			continue
		}

		b.WriteString(sectionHeader(sd.Document))
		b.WriteString("\n")
		b.WriteString(section)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// sectionFor picks the excerpt for one document. An article citation that
// does not resolve in this document falls back to the budgeted prefix, since
// the document still ranked as relevant.
func (a *Assembler) sectionFor(doc library.Document, raw, article string, fullDoc bool) string {
	if article != "" {
		text, err := library.ExtractArticleWindow(raw, article, articleTrailingLines)
		if err == nil {
			return text
		}
		if !errors.Is(err, library.ErrNotFound) {
			return ""
		}
	}

	budget := a.generalBudget
	if fullDoc || doc.Type == library.TypeConpes {
		budget = a.fullDocBudget
	}
	return truncate(raw, budget)
}

// sectionHeader renders the attribution line for one document.
func sectionHeader(doc library.Document) string {
	if doc.Number != "" && doc.Year != 0 {
		return fmt.Sprintf("--- %s %s de %d ---", doc.Type, doc.Number, doc.Year)
	}
	return fmt.Sprintf("--- %s: %s ---", doc.Type, doc.Title)
}

// truncate cuts at the budget without splitting a UTF-8 rune.
func truncate(text string, budget int) string {
	if len(text) <= budget {
		return text
	}
	cut := text[:budget]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
