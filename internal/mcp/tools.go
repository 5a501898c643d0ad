package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchLegislationTool defines the search_legislation MCP tool.
var searchLegislationTool = mcp.NewTool("search_legislation",
	mcp.WithDescription("Search the Colombian legal corpus by relevance. Matches norm numbers, norm types, and content terms, and returns ranked documents with score breakdowns."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query, e.g. 'ley 1581 habeas data'"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("tipo",
		mcp.Description("Filter results by norm type"),
		mcp.Enum("ley", "decreto", "resolucion", "circular", "conpes", "otros"),
	),
)

// getDocumentTool defines the get_document MCP tool.
var getDocumentTool = mcp.NewTool("get_document",
	mcp.WithDescription("Get the full text of a legal document by its identifier."),
	mcp.WithString("document_id",
		mcp.Required(),
		mcp.Description("Document identifier as returned by search_legislation, e.g. 'ley_1581_2012'"),
	),
)

// getArticleTool defines the get_article MCP tool.
var getArticleTool = mcp.NewTool("get_article",
	mcp.WithDescription("Extract a single article from a legal document, bounded at the next article or section marker."),
	mcp.WithString("document_id",
		mcp.Required(),
		mcp.Description("Document identifier, e.g. 'ley_1581_2012'"),
	),
	mcp.WithNumber("article",
		mcp.Required(),
		mcp.Description("Article number to extract"),
	),
)

// getCorpusStatsTool defines the get_corpus_stats MCP tool.
var getCorpusStatsTool = mcp.NewTool("get_corpus_stats",
	mcp.WithDescription("Get corpus statistics: total documents and counts per norm type."),
)
