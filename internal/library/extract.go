package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// metadataHeadBytes is how much of a file the extractor inspects for the
// title and number/year heuristics. Legal headings sit in the first page.
const metadataHeadBytes = 2000

var (
	numberYearPairRe = regexp.MustCompile(`(\d{3,4}).*?(\d{4})`)
	bareYearRe       = regexp.MustCompile(`\d{4}`)
)

// Extractor derives Document metadata from raw file content. Successful
// extractions are memoised in the injected cache; failures are not, so a
// transient read error is retried on the next access.
type Extractor struct {
	cache *MetadataCache
}

// NewExtractor creates an Extractor backed by the given cache.
func NewExtractor(cache *MetadataCache) *Extractor {
	return &Extractor{cache: cache}
}

// ExtractMetadata derives a Document from raw content. It never fails: the
// heuristics always produce some title, with the filename as last resort.
func ExtractMetadata(head, filename string, typ DocType) Document {
	title := extractTitle(head, filename, typ)
	number, year := extractNumberYear(title, filename)

	return Document{
		ID:     filename,
		Title:  title,
		Number: number,
		Year:   year,
		Type:   typ,
	}
}

// FromFile extracts metadata for the file at path, consulting the cache
// first. The declared type comes from the containing folder.
func (e *Extractor) FromFile(path string, typ DocType) Document {
	if doc, ok := e.cache.Get(path); ok {
		return doc
	}

	filename := strings.TrimSuffix(filepath.Base(path), ".txt")

	info, err := os.Stat(path)
	if err != nil {
		return errorDocument(filename, path, typ, err)
	}

	head, err := readHead(path, metadataHeadBytes)
	if err != nil {
		return errorDocument(filename, path, typ, err)
	}

	doc := ExtractMetadata(head, filename, typ)
	doc.Path = path
	doc.SizeBytes = info.Size()

	e.cache.Put(path, doc)
	return doc
}

// errorDocument is the contained-failure form: the document is still listed,
// with the error carried in the title, so one corrupt file never aborts a
// corpus scan.
func errorDocument(filename, path string, typ DocType, err error) Document {
	return Document{
		ID:           filename,
		Title:        fmt.Sprintf("Error: %v", err),
		Type:         typ,
		Path:         path,
		ExtractError: err.Error(),
	}
}

// extractNumberYear finds a (number, year) pair, searching the title before
// the filename. Titles are curated text while filenames may be arbitrary, so
// a title-derived pair wins even when the filename carries a different one.
func extractNumberYear(title, filename string) (string, int) {
	for _, source := range []string{title, filename} {
		if m := numberYearPairRe.FindStringSubmatch(source); m != nil {
			year, _ := strconv.Atoi(m[2])
			return m[1], year
		}
	}

	// No pair anywhere: settle for a bare year.
	if m := bareYearRe.FindString(title + " " + filename); m != "" {
		year, _ := strconv.Atoi(m)
		return "", year
	}

	return "", 0
}

// readHead returns up to n leading bytes of the file as text, rejecting
// content that cannot be decoded.
func readHead(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, int64(n)))
	if err != nil {
		return "", err
	}

	if !looksLikeText(buf) {
		return "", fmt.Errorf("decoding %s: content is not text", filepath.Base(path))
	}

	// Drop a trailing partial rune cut off by the byte limit.
	for len(buf) > 0 && !utf8.Valid(buf) {
		buf = buf[:len(buf)-1]
	}

	return string(buf), nil
}

// looksLikeText checks for NUL bytes, a simple but effective heuristic for
// binary content.
func looksLikeText(buf []byte) bool {
	for _, b := range buf {
		if b == 0 {
			return false
		}
	}
	return true
}
