package library

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxArticleLines bounds how many lines a single article capture may span,
// so a pathological file without structure markers cannot balloon a result.
const maxArticleLines = 50

// snippetBudget is the character budget for article titles in navigation.
const snippetBudget = 50

var (
	articleHeadRe   = regexp.MustCompile(`(?i)^Artículo\s+(\d+)[°º]?\.?\s*`)
	sectionMarkerRe = regexp.MustCompile(`(?i)^(CAPÍTULO|TÍTULO|Parágrafo)`)
	allArticlesRe   = regexp.MustCompile(`(?i)Artículo\s+(\d+)°*\.?[ \t]*([^\n]*)`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// ExtractArticle returns the text of the article with the given number,
// captured from its heading line up to the next article heading, a
// structural section marker, or the line limit. Legal citation must be
// exact, so anything short of the precise article is ErrNotFound.
func ExtractArticle(content, number string) (string, error) {
	return ExtractArticleWindow(content, number, 0)
}

// ExtractArticleWindow behaves like ExtractArticle but additionally appends
// up to trailing non-empty lines following the capture, giving downstream
// consumers surrounding context for the citation.
func ExtractArticleWindow(content, number string, trailing int) (string, error) {
	lines := strings.Split(content, "\n")

	var captured []string
	capturing := false
	end := len(lines)

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if m := articleHeadRe.FindStringSubmatch(line); m != nil {
			if capturing {
				end = i
				break
			}
			if m[1] == number {
				capturing = true
				captured = append(captured, line)
			}
			continue
		}

		if !capturing {
			continue
		}
		if line != "" {
			captured = append(captured, line)
		}
		if sectionMarkerRe.MatchString(line) {
			end = i + 1
			break
		}
		if len(captured) > maxArticleLines {
			end = i + 1
			break
		}
	}

	if len(captured) == 0 {
		return "", ErrNotFound
	}

	for i := end; i < len(lines) && trailing > 0; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		captured = append(captured, line)
		trailing--
	}

	text := strings.Join(captured, " ")
	return whitespaceRunRe.ReplaceAllString(text, " "), nil
}

// ExtractAllArticles finds every article heading in the content and returns
// one navigation entry per heading, in document order. This is recomputed on
// each content retrieval; it is cheap relative to reading the file.
func ExtractAllArticles(content string) []Article {
	matches := allArticlesRe.FindAllStringSubmatch(content, -1)

	articles := make([]Article, 0, len(matches))
	for _, m := range matches {
		number, rest := m[1], strings.TrimSpace(m[2])

		title := fmt.Sprintf("Artículo %s°. %s", number, rest)
		if len(rest) > snippetBudget {
			// Cut on a rune boundary so accented characters at the budget
			// edge do not leave invalid UTF-8 in the snippet.
			cut := rest[:snippetBudget]
			for len(cut) > 0 && !utf8.ValidString(cut) {
				cut = cut[:len(cut)-1]
			}
			title = fmt.Sprintf("Artículo %s°. %s...", number, cut)
		}

		articles = append(articles, Article{
			Number:   number,
			Title:    title,
			AnchorID: "art-" + number,
		})
	}
	return articles
}
