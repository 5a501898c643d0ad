package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/llm"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/search"
)

var (
	// ErrEmptyQuery is returned when the question is blank or too short to
	// rank.
	ErrEmptyQuery = errors.New("query is empty or too short")
	// ErrNoRelevantDocuments is returned when no document clears the
	// relevance threshold. Callers present this as an answerable outcome,
	// not a failure.
	ErrNoRelevantDocuments = errors.New("no relevant documents for query")
)

const (
	defaultMinQueryLength = 3
	defaultMaxSources     = 3
)

const systemPrompt = `Eres un asistente jurídico especializado en la normativa colombiana de ` +
	`protección de datos personales y seguridad de la información. Responde únicamente ` +
	`con base en los extractos de normas que se te entregan como contexto. Cita siempre ` +
	`la norma y el artículo que sustentan tu respuesta. Si el contexto no contiene la ` +
	`información necesaria, dilo explícitamente y no inventes contenido. Responde en español.`

const greetingAnswer = `¡Hola! Soy el asistente de la matriz legal. Puedo ayudarte a consultar ` +
	`leyes, decretos, circulares, resoluciones y documentos CONPES sobre protección de datos ` +
	`y seguridad de la información. Pregúntame, por ejemplo, sobre la Ley 1581 de 2012 o el ` +
	`Decreto 1377 de 2013.`

// DocumentSource is the corpus surface the pipeline needs: the ranked
// listing input and content resolution.
type DocumentSource interface {
	Documents(ctx context.Context) ([]library.Document, error)
	Content(ctx context.Context, id string) (*library.Content, error)
}

// Source identifies one document that grounded an answer.
type Source struct {
	ID    string `json:"document_id"`
	Title string `json:"titulo"`
	Score int    `json:"score"`
}

// Response is the outcome of one question.
type Response struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources,omitempty"`
	Model   string   `json:"model,omitempty"`

	// Token usage of the generation call, for analytics. Zero in degraded
	// mode.
	InputTokens  int `json:"-"`
	OutputTokens int `json:"-"`
}

// Service runs the full question pipeline. The generation provider is
// optional: without one the service still ranks and assembles, returning the
// matched excerpts directly.
type Service struct {
	source    DocumentSource
	scorer    *search.Scorer
	assembler *Assembler
	provider  llm.Provider

	minQueryLength int
	maxSources     int
}

// NewService wires the pipeline. provider may be nil.
func NewService(source DocumentSource, scorer *search.Scorer, provider llm.Provider) *Service {
	return &Service{
		source:         source,
		scorer:         scorer,
		assembler:      NewAssembler(source),
		provider:       provider,
		minQueryLength: defaultMinQueryLength,
		maxSources:     defaultMaxSources,
	}
}

// SetLimits overrides the minimum query length and source count. Zero keeps
// the current value.
func (s *Service) SetLimits(minQueryLength, maxSources int) {
	if minQueryLength > 0 {
		s.minQueryLength = minQueryLength
	}
	if maxSources > 0 {
		s.maxSources = maxSources
	}
}

// Assembler exposes the context assembler for budget configuration.
func (s *Service) Assembler() *Assembler {
	return s.assembler
}

// Query answers one question against the corpus.
func (s *Service) Query(ctx context.Context, question string) (*Response, error) {
	question = strings.TrimSpace(question)
	if len([]rune(question)) < s.minQueryLength {
		return nil, ErrEmptyQuery
	}

	if isGreeting(question) {
		return &Response{Answer: greetingAnswer}, nil
	}

	docs, err := s.source.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	ranked := s.scorer.Score(ctx, question, docs)
	if len(ranked) == 0 {
		return nil, ErrNoRelevantDocuments
	}
	if len(ranked) > s.maxSources {
		ranked = ranked[:s.maxSources]
	}

	contextBlock := s.assembler.Assemble(ctx, question, ranked)
	if contextBlock == "" {
		return nil, ErrNoRelevantDocuments
	}

	sources := make([]Source, 0, len(ranked))
	for _, sd := range ranked {
		sources = append(sources, Source{
			ID:    sd.Document.ID,
			Title: sd.Document.Title,
			Score: sd.Score,
		})
	}

	if s.provider == nil {
		return &Response{Answer: basicAnswer(ranked), Sources: sources}, nil
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf("Contexto normativo:\n\n%s\n\nPregunta: %s", contextBlock, question)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		log.Printf("[chat] generation via %s failed: %v", s.provider.Name(), err)
		return &Response{Answer: basicAnswer(ranked), Sources: sources}, nil
	}

	return &Response{
		Answer:       resp.Content,
		Sources:      sources,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}, nil
}

// basicAnswer is the degraded-mode reply used when no generation backend is
// available or it fails: point the user at the matched documents.
func basicAnswer(ranked []search.ScoredDocument) string {
	var b strings.Builder
	b.WriteString("Encontré las siguientes normas relevantes para tu consulta:\n")
	for _, sd := range ranked {
		fmt.Fprintf(&b, "- %s (%s)\n", sd.Document.Title, sd.Document.Type)
	}
	b.WriteString("Consulta el texto completo de cada norma para más detalle.")
	return b.String()
}
