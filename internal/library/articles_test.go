package library

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

const habeasDataText = `LEY ESTATUTARIA 1581 DE 2012

TÍTULO V
PROCEDIMIENTOS

Artículo 15. Reclamos. El Titular o causahabiente que considere que la
información debe ser objeto de corrección presentará un reclamo ante el
Responsable del Tratamiento.

Artículo 16. Requisito de procedibilidad. El Titular solo podrá elevar
queja ante la Superintendencia una vez haya agotado el trámite de
consulta o de reclamo.

Parágrafo. Lo anterior sin perjuicio de las demás acciones.

Artículo 17. Deberes de los Responsables del Tratamiento.
`

func TestExtractArticleBoundedByNextArticle(t *testing.T) {
	text, err := ExtractArticle(habeasDataText, "15")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(text, "Artículo 15.") {
		t.Errorf("capture starts with %q", text[:min(len(text), 30)])
	}
	if !strings.Contains(text, "Reclamos") {
		t.Error("capture missing the article body")
	}
	if strings.Contains(text, "Artículo 16") {
		t.Error("capture leaked into the next article")
	}
}

func TestExtractArticleStopsAtSectionMarker(t *testing.T) {
	text, err := ExtractArticle(habeasDataText, "16")
	if err != nil {
		t.Fatal(err)
	}
	// The marker line itself is included, nothing past it.
	if !strings.Contains(text, "Parágrafo.") {
		t.Error("section marker line should close and be included")
	}
	if strings.Contains(text, "Artículo 17") {
		t.Error("capture ran past the section marker")
	}
}

func TestExtractArticleNotFound(t *testing.T) {
	if _, err := ExtractArticle(habeasDataText, "99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExtractArticleLineLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("Artículo 1. Sin estructura.\n")
	for i := 0; i < 200; i++ {
		b.WriteString("línea de contenido continuo\n")
	}

	text, err := ExtractArticle(b.String(), "1")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(strings.Split(text, "línea")) - 1; got > maxArticleLines {
		t.Errorf("capture spans %d content lines, limit is %d", got, maxArticleLines)
	}
}

func TestExtractArticleWindowTrailing(t *testing.T) {
	text, err := ExtractArticleWindow(habeasDataText, "15", 2)
	if err != nil {
		t.Fatal(err)
	}
	// Two non-empty lines past the boundary belong to Artículo 16.
	if !strings.Contains(text, "Artículo 16") {
		t.Error("trailing window should include following lines")
	}
}

func TestExtractArticleOrdinalMarks(t *testing.T) {
	content := "Artículo 3°. Principios. Texto del artículo.\n\nArtículo 4. Otro.\n"
	text, err := ExtractArticle(content, "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Principios") {
		t.Errorf("ordinal-marked heading not captured: %q", text)
	}
}

func TestExtractAllArticles(t *testing.T) {
	articles := ExtractAllArticles(habeasDataText)
	if len(articles) != 3 {
		t.Fatalf("got %d articles, want 3", len(articles))
	}

	if articles[0].Number != "15" || articles[0].AnchorID != "art-15" {
		t.Errorf("first article = %+v", articles[0])
	}
	if !strings.HasPrefix(articles[0].Title, "Artículo 15°.") {
		t.Errorf("title = %q", articles[0].Title)
	}
}

func TestExtractAllArticlesSnippetTruncation(t *testing.T) {
	long := "Artículo 1. " + strings.Repeat("palabra ", 20) + "\n"
	articles := ExtractAllArticles(long)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if !strings.HasSuffix(articles[0].Title, "...") {
		t.Errorf("long snippet not truncated: %q", articles[0].Title)
	}
}

func TestExtractAllArticlesSnippetCutsOnRuneBoundary(t *testing.T) {
	// An accented character straddling the budget must be dropped whole,
	// not split into invalid bytes.
	long := "Artículo 1. " + strings.Repeat("a", snippetBudget-1) + "ñ y más texto\n"
	articles := ExtractAllArticles(long)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if !utf8.ValidString(articles[0].Title) {
		t.Errorf("snippet carries invalid UTF-8: %q", articles[0].Title)
	}
	if !strings.HasSuffix(articles[0].Title, "...") {
		t.Errorf("long snippet not truncated: %q", articles[0].Title)
	}
}
