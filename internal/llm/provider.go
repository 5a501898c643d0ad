package llm

import "context"

// Provider is a text generation backend. The chat service hands it an
// assembled legal context plus the user's question and treats the returned
// text as opaque; grounding and source attribution happen before this
// boundary, never inside it.
//
// Implementations are selected by backend name ("groq", "qwen", "openai")
// through NewProvider. Name reports that backend for logs and the
// analytics store.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Name() string
}
