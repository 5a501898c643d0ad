package library

import "errors"

// DocType identifies the kind of legal instrument a document is. The type is
// assigned from the folder a file lives in, never inferred from its content.
type DocType string

const (
	TypeLey        DocType = "Ley"
	TypeDecreto    DocType = "Decreto"
	TypeCircular   DocType = "Circular"
	TypeResolucion DocType = "Resolución"
	TypeConpes     DocType = "Conpes"
	TypeOtros      DocType = "Otros"
)

// folderTypes maps corpus subfolders to document types. The order is
// significant: content lookups try folders in this order and stop at the
// first match.
var folderTypes = []struct {
	Folder string
	Type   DocType
}{
	{"leyes", TypeLey},
	{"decretos", TypeDecreto},
	{"circulares", TypeCircular},
	{"resoluciones", TypeResolucion},
	{"conpes", TypeConpes},
	{"otros", TypeOtros},
}

// Types returns all document types in folder order.
func Types() []DocType {
	types := make([]DocType, 0, len(folderTypes))
	for _, ft := range folderTypes {
		types = append(types, ft.Type)
	}
	return types
}

// Document holds the identity metadata of one corpus file. Documents are
// immutable once produced by a scan; a rescan replaces them wholesale.
type Document struct {
	ID        string  `json:"document_id"`
	Title     string  `json:"titulo"`
	Number    string  `json:"numero"`
	Year      int     `json:"año"`
	Type      DocType `json:"tipo_norma"`
	Path      string  `json:"file_path"`
	SizeBytes int64   `json:"file_size"`

	// ExtractError is set when the file could not be decoded; the document
	// is still listed so corpus counts stay verifiable.
	ExtractError string `json:"error,omitempty"`
}

// Content is the result of resolving a document id to its full text.
type Content struct {
	ID        string  `json:"document_id"`
	Title     string  `json:"titulo"`
	Type      DocType `json:"tipo_norma"`
	RawText   string  `json:"raw_content"`
	WordCount int     `json:"word_count"`
}

// Article is one numbered subdivision extracted from a document's text,
// produced on demand for navigation. Never persisted.
type Article struct {
	Number   string `json:"number"`
	Title    string `json:"title"`
	AnchorID string `json:"id"`
}

// Stats summarises the indexed corpus.
type Stats struct {
	Total  int             `json:"total"`
	ByType map[DocType]int `json:"by_type"`
	ByYear map[int]int     `json:"by_year"`
}

// Filter narrows a document listing. Zero values mean "no constraint".
type Filter struct {
	Type           DocType
	Year           int
	TitleSubstring string
}

// ErrNotFound is returned when a document id or article number cannot be
// resolved. It is an expected outcome, not a system failure.
var ErrNotFound = errors.New("not found")
