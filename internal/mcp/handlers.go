package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/search"
)

// tipoFilters maps the lowercase tool enum values onto corpus document types.
var tipoFilters = map[string]library.DocType{
	"ley":        library.TypeLey,
	"decreto":    library.TypeDecreto,
	"resolucion": library.TypeResolucion,
	"circular":   library.TypeCircular,
	"conpes":     library.TypeConpes,
	"otros":      library.TypeOtros,
}

// handleSearchLegislation ranks corpus documents against a query.
func (s *Server) handleSearchLegislation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	filter := library.Filter{}
	if tipo := request.GetString("tipo", ""); tipo != "" {
		docType, ok := tipoFilters[strings.ToLower(tipo)]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown tipo %q", tipo)), nil
		}
		filter.Type = docType
	}

	docs, err := s.lib.List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus scan failed: %v", err)), nil
	}

	results := s.scorer.Score(ctx, query, docs)
	if len(results) == 0 {
		return mcp.NewToolResultText("No relevant documents found. Try norm numbers (e.g. '1581') or topic terms in Spanish."), nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetDocument returns the full text of one document.
func (s *Server) handleGetDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document_id"), nil
	}

	content, err := s.lib.Content(ctx, id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"No document with id %q. Use search_legislation to find valid ids.", id,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read document: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s, %d words)\n\n", content.Title, content.Type, content.WordCount))
	sb.WriteString(content.RawText)
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetArticle extracts a single article from a document.
func (s *Server) handleGetArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: document_id"), nil
	}
	article := request.GetInt("article", 0)
	if article <= 0 {
		return mcp.NewToolResultError("missing or invalid required parameter: article"), nil
	}

	content, err := s.lib.Content(ctx, id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"No document with id %q. Use search_legislation to find valid ids.", id,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to read document: %v", err)), nil
	}

	text, err := library.ExtractArticle(content.RawText, strconv.Itoa(article))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Artículo %d not found in %s.", article, content.Title,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to extract article: %v", err)), nil
	}

	header := fmt.Sprintf("Artículo %d, %s\n\n", article, content.Title)
	return mcp.NewToolResultText(header + text), nil
}

// handleGetCorpusStats summarises the indexed corpus.
func (s *Server) handleGetCorpusStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.lib.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus scan failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Corpus: %d documents\n", stats.Total))

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", t, stats.ByType[library.DocType(t)]))
	}

	years := make([]int, 0, len(stats.ByYear))
	for y := range stats.ByYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if len(years) > 0 {
		sb.WriteString("By year:\n")
		for _, y := range years {
			sb.WriteString(fmt.Sprintf("  %d: %d\n", y, stats.ByYear[y]))
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResults converts ranked documents into a rich text format
// optimized for AI agent consumption.
func formatSearchResults(results []search.ScoredDocument) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("ID: %s\n", r.Document.ID))
		sb.WriteString(fmt.Sprintf("Title: %s\n", r.Document.Title))
		sb.WriteString(fmt.Sprintf("Type: %s\n", r.Document.Type))
		if r.Document.Year > 0 {
			sb.WriteString(fmt.Sprintf("Year: %d\n", r.Document.Year))
		}
		sb.WriteString(fmt.Sprintf("Score: %d\n", r.Score))
		if len(r.MatchedFactors) > 0 {
			sb.WriteString(fmt.Sprintf("Matched: %s\n", strings.Join(r.MatchedFactors, "; ")))
		}
	}

	return sb.String()
}
