package library

import (
	"regexp"
	"strings"
	"unicode"
)

// Title extraction runs through an ordered list of independent, named
// strategies and stops at the first match. Each strategy is small enough to
// unit-test on its own; the order encodes the precedence of the heuristics,
// from the most structured pattern down to the filename fallback.

type titleStrategy struct {
	Name  string
	Match func(lines []string, typ DocType) (string, bool)
}

var titleStrategies = []titleStrategy{
	{"conpes-label", matchConpesLabel},
	{"resolution-number", matchResolutionNumber},
	{"legal-heading", matchLegalHeading},
	{"number-year-line", matchNumberYearLine},
}

var (
	conpesInlineRe     = regexp.MustCompile(`^CONPES\s+\d{4}`)
	bareFourDigitsRe   = regexp.MustCompile(`^\d{4}$`)
	resolutionPhraseRe = regexp.MustCompile(`(?i)RESOLUCI[OÓ]N\s+(NÚMERO|N[ÚU]MERO|No\.?|#)?\s*\d+`)
	resolutionBareRe   = regexp.MustCompile(`^\d{3,6}\b.*\d{4}`)
	legalHeadingRe     = regexp.MustCompile(`(?i)^(LEY|DECRETO|CIRCULAR|RESOLUCI[OÓ]N|CONPES)\b.*\d{4}`)
	numberYearLineRe   = regexp.MustCompile(`\d{3,4}.*\d{4}`)
)

// extractTitle applies the strategies in order over the leading lines of the
// file. The filename fallback always succeeds.
func extractTitle(head, filename string, typ DocType) string {
	lines := nonBlankLines(head)
	for _, s := range titleStrategies {
		if title, ok := s.Match(lines, typ); ok {
			return title
		}
	}
	return titleFromFilename(filename)
}

// matchConpesLabel finds the CONPES heading of a planning document. The
// document number is a 4-digit token, sometimes printed on the line after
// the bare "CONPES" label.
func matchConpesLabel(lines []string, typ DocType) (string, bool) {
	if typ != TypeConpes {
		return "", false
	}
	limit := min(len(lines), 30)
	for i := 0; i < limit; i++ {
		line := lines[i]
		if conpesInlineRe.MatchString(line) {
			return line, true
		}
		if line == "CONPES" && i+1 < len(lines) && bareFourDigitsRe.MatchString(lines[i+1]) {
			return "CONPES " + lines[i+1], true
		}
	}
	return "", false
}

// matchResolutionNumber finds a "RESOLUCIÓN NÚMERO <n>" phrase, or a bare
// multi-digit token paired with a year on the same line. The bare form is a
// known precision trade-off: any unrelated sentence opening with a number
// and containing a year will match.
func matchResolutionNumber(lines []string, typ DocType) (string, bool) {
	if typ != TypeResolucion {
		return "", false
	}
	limit := min(len(lines), 30)
	for i := 0; i < limit; i++ {
		line := lines[i]
		if resolutionPhraseRe.MatchString(line) {
			return line, true
		}
		if resolutionBareRe.MatchString(line) {
			return "Resolución " + line, true
		}
	}
	return "", false
}

// matchLegalHeading finds a line opening with one of the instrument keywords
// followed eventually by a 4-digit year, within the first 20 non-blank lines.
func matchLegalHeading(lines []string, _ DocType) (string, bool) {
	limit := min(len(lines), 20)
	for i := 0; i < limit; i++ {
		if legalHeadingRe.MatchString(lines[i]) {
			return lines[i], true
		}
	}
	return "", false
}

// matchNumberYearLine is the last content-based heuristic: any early line
// carrying both a 3-4 digit token and a 4-digit year.
func matchNumberYearLine(lines []string, _ DocType) (string, bool) {
	limit := min(len(lines), 20)
	for i := 0; i < limit; i++ {
		if len(lines[i]) > 10 && numberYearLineRe.MatchString(lines[i]) {
			return lines[i], true
		}
	}
	return "", false
}

// titleFromFilename turns a file stem into a displayable title by replacing
// separators with spaces and capitalising each word.
func titleFromFilename(filename string) string {
	name := strings.NewReplacer("_", " ", "-", " ").Replace(filename)
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// nonBlankLines splits text into trimmed, non-empty lines.
func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
