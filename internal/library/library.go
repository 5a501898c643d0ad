package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// CanonicalRecord is an authoritative title for a document, sourced from the
// canonical metadata store rather than the extraction heuristics.
type CanonicalRecord struct {
	Title string
	Type  DocType
}

// CanonicalStore resolves a document id to curated metadata. Lookup returns
// (nil, nil) when no canonical record exists; the library then keeps its own
// extraction.
type CanonicalStore interface {
	Lookup(ctx context.Context, id string) (*CanonicalRecord, error)
}

// Config controls how a Library scans its corpus.
type Config struct {
	// RootDir is the corpus root containing the fixed type folders
	// (leyes, decretos, circulares, resoluciones, conpes, otros).
	RootDir string
	// Include/Exclude are glob patterns applied to paths relative to
	// RootDir. Empty Include means everything.
	Include []string
	Exclude []string
	// Canonical, when set, overrides extracted titles with curated ones.
	Canonical CanonicalStore
}

// Library owns the indexed set of corpus documents. The document set is
// rebuilt by scanning the file tree and republished atomically, so in-flight
// readers always see a consistent snapshot.
type Library struct {
	cfg       Config
	cache     *MetadataCache
	extractor *Extractor

	onFile func(path string) // progress hook, used by the scan command

	mu       sync.RWMutex
	snapshot []Document
}

// New creates a Library over the corpus at cfg.RootDir, memoising extraction
// in the given cache.
func New(cfg Config, cache *MetadataCache) *Library {
	return &Library{
		cfg:       cfg,
		cache:     cache,
		extractor: NewExtractor(cache),
	}
}

// SetFileHook registers a callback invoked once per file during a scan.
func (l *Library) SetFileHook(fn func(path string)) {
	l.onFile = fn
}

// CountFiles returns how many corpus files a scan would visit. Used to size
// progress reporting before scanning.
func (l *Library) CountFiles() int {
	total := 0
	for _, ft := range folderTypes {
		entries, err := os.ReadDir(filepath.Join(l.cfg.RootDir, ft.Folder))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if l.wantsFile(ft.Folder, entry) {
				total++
			}
		}
	}
	return total
}

// Scan walks the fixed folder set, extracts metadata for every text file,
// and republishes the document snapshot. Files that cannot be decoded are
// retained with an error title rather than dropped, so document counts stay
// externally verifiable. Missing folders are skipped without error.
func (l *Library) Scan(ctx context.Context) ([]Document, error) {
	var docs []Document

	for _, ft := range folderTypes {
		dir := filepath.Join(l.cfg.RootDir, ft.Folder)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !l.wantsFile(ft.Folder, entry) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if l.onFile != nil {
				l.onFile(path)
			}

			doc := l.extractor.FromFile(path, ft.Type)
			l.applyCanonical(ctx, &doc)
			docs = append(docs, doc)
		}
	}

	sortDocuments(docs)

	l.mu.Lock()
	l.snapshot = docs
	l.mu.Unlock()

	return docs, nil
}

// wantsFile applies the extension and include/exclude filters.
func (l *Library) wantsFile(folder string, entry os.DirEntry) bool {
	if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
		return false
	}
	relPath := folder + "/" + entry.Name()
	if !matchesInclude(relPath, l.cfg.Include) {
		return false
	}
	return !matchesExclude(relPath, l.cfg.Exclude)
}

// applyCanonical replaces the heuristic title with the curated one when the
// canonical store knows this document. The type always stays folder-derived.
func (l *Library) applyCanonical(ctx context.Context, doc *Document) {
	if l.cfg.Canonical == nil || doc.ExtractError != "" {
		return
	}
	rec, err := l.cfg.Canonical.Lookup(ctx, doc.ID)
	if err != nil || rec == nil || rec.Title == "" {
		return
	}
	doc.Title = rec.Title
}

// sortDocuments orders descending by year, then descending by number as a
// string. This is a display convenience, re-applied on every scan.
func sortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Year != docs[j].Year {
			return docs[i].Year > docs[j].Year
		}
		if docs[i].Number != docs[j].Number {
			return docs[i].Number > docs[j].Number
		}
		return docs[i].ID < docs[j].ID
	})
}

// Documents returns the current snapshot, scanning on first use.
func (l *Library) Documents(ctx context.Context) ([]Document, error) {
	l.mu.RLock()
	snap := l.snapshot
	l.mu.RUnlock()

	if snap != nil {
		return snap, nil
	}
	return l.Scan(ctx)
}

// List returns documents matching the filter, in snapshot order.
func (l *Library) List(ctx context.Context, f Filter) ([]Document, error) {
	docs, err := l.Documents(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if f.Type != "" && doc.Type != f.Type {
			continue
		}
		if f.Year != 0 && doc.Year != f.Year {
			continue
		}
		if f.TitleSubstring != "" &&
			!strings.Contains(strings.ToLower(doc.Title), strings.ToLower(f.TitleSubstring)) {
			continue
		}
		matched = append(matched, doc)
	}
	return matched, nil
}

// Stats summarises the corpus by type and year.
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	docs, err := l.Documents(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Total:  len(docs),
		ByType: make(map[DocType]int),
		ByYear: make(map[int]int),
	}
	for _, doc := range docs {
		stats.ByType[doc.Type]++
		if doc.Year != 0 {
			stats.ByYear[doc.Year]++
		}
	}
	return stats, nil
}

// Content resolves a document id to its full text by trying each type folder
// in the fixed order and stopping at the first match. An O(folders) probe is
// fine here: the folder set is small and never grows. Returns ErrNotFound,
// without touching the metadata cache, when no folder has the file.
func (l *Library) Content(ctx context.Context, id string) (*Content, error) {
	for _, ft := range folderTypes {
		path := filepath.Join(l.cfg.RootDir, ft.Folder, id+".txt")

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if !looksLikeText(data) {
			continue
		}

		doc := l.extractor.FromFile(path, ft.Type)
		l.applyCanonical(ctx, &doc)

		raw := string(data)
		return &Content{
			ID:        id,
			Title:     doc.Title,
			Type:      ft.Type,
			RawText:   raw,
			WordCount: len(strings.Fields(raw)),
		}, nil
	}
	return nil, ErrNotFound
}

// ContentText resolves a document id to its raw text only. This is the
// shape relevance scoring consumes.
func (l *Library) ContentText(ctx context.Context, id string) (string, error) {
	content, err := l.Content(ctx, id)
	if err != nil {
		return "", err
	}
	return content.RawText, nil
}

// ClearCache drops every memoised extraction so the next scan recomputes
// documents from scratch.
func (l *Library) ClearCache() {
	l.cache.Clear()
}
