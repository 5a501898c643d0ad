package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/llm"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/search"
)

type fakeSource struct {
	docs     []library.Document
	contents map[string]string
}

func (f *fakeSource) Documents(ctx context.Context) ([]library.Document, error) {
	return f.docs, nil
}

func (f *fakeSource) Content(ctx context.Context, id string) (*library.Content, error) {
	raw, ok := f.contents[id]
	if !ok {
		return nil, library.ErrNotFound
	}
	return &library.Content{ID: id, RawText: raw, WordCount: len(strings.Fields(raw))}, nil
}

type fakeProvider struct {
	lastReq llm.CompletionRequest
	resp    *llm.CompletionResponse
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newTestSource() *fakeSource {
	return &fakeSource{
		docs: []library.Document{
			{ID: "ley_1581_2012", Title: "LEY ESTATUTARIA 1581 DE 2012", Number: "1581", Year: 2012, Type: library.TypeLey},
			{ID: "decreto_1377_2013", Title: "DECRETO 1377 DE 2013", Number: "1377", Year: 2013, Type: library.TypeDecreto},
		},
		contents: map[string]string{
			"ley_1581_2012":     "LEY ESTATUTARIA 1581 DE 2012\n\nArtículo 15. Reclamos. Texto del reclamo.\n\nArtículo 16. Requisito. Texto del requisito.\n",
			"decreto_1377_2013": "DECRETO 1377 DE 2013\n\nPor el cual se reglamenta la Ley 1581 de 2012.\n",
		},
	}
}

func newTestService(provider llm.Provider) *Service {
	source := newTestSource()
	scorer := search.NewScorer(search.DefaultWeights(), func(ctx context.Context, id string) (string, error) {
		c, err := source.Content(ctx, id)
		if err != nil {
			return "", err
		}
		return c.RawText, nil
	})
	return NewService(source, scorer, provider)
}

func TestQueryTooShort(t *testing.T) {
	svc := newTestService(nil)
	for _, q := range []string{"", "  ", "ab", " a "} {
		if _, err := svc.Query(context.Background(), q); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Query(%q) err = %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestQueryGreetingSkipsRanking(t *testing.T) {
	provider := &fakeProvider{resp: &llm.CompletionResponse{Content: "should not be called"}}
	svc := newTestService(provider)

	resp, err := svc.Query(context.Background(), "Hola!")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Answer == "" || resp.Answer == "should not be called" {
		t.Errorf("greeting answer = %q", resp.Answer)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("greeting carried %d sources", len(resp.Sources))
	}
	if provider.lastReq.Messages != nil {
		t.Error("greeting must not reach the generation backend")
	}
}

func TestQueryNoRelevantDocuments(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Query(context.Background(), "recetas cocina italiana")
	if !errors.Is(err, ErrNoRelevantDocuments) {
		t.Errorf("err = %v, want ErrNoRelevantDocuments", err)
	}
}

func TestQueryGroundsAndCallsProvider(t *testing.T) {
	provider := &fakeProvider{resp: &llm.CompletionResponse{
		Content: "La Ley 1581 de 2012 regula el habeas data.",
		Model:   "llama-3.3-70b-versatile",
	}}
	svc := newTestService(provider)

	resp, err := svc.Query(context.Background(), "ley 1581 protección de datos")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Answer != "La Ley 1581 de 2012 regula el habeas data." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if len(resp.Sources) == 0 {
		t.Fatal("no sources attached")
	}
	if resp.Sources[0].ID != "ley_1581_2012" {
		t.Errorf("top source = %q", resp.Sources[0].ID)
	}

	if len(provider.lastReq.Messages) != 2 {
		t.Fatalf("provider got %d messages, want system + user", len(provider.lastReq.Messages))
	}
	user := provider.lastReq.Messages[1].Content
	if !strings.Contains(user, "--- Ley 1581 de 2012 ---") {
		t.Errorf("context block missing attribution header:\n%s", user)
	}
	if !strings.Contains(user, "ley 1581 protección de datos") {
		t.Error("user question missing from the prompt")
	}
}

func TestQueryArticleCitationNarrowsContext(t *testing.T) {
	provider := &fakeProvider{resp: &llm.CompletionResponse{Content: "ok"}}
	svc := newTestService(provider)

	if _, err := svc.Query(context.Background(), "qué dice el artículo 15 de la ley 1581"); err != nil {
		t.Fatal(err)
	}

	user := provider.lastReq.Messages[1].Content
	if !strings.Contains(user, "Artículo 15. Reclamos.") {
		t.Errorf("cited article missing from context:\n%s", user)
	}
}

func TestQueryWithoutProviderReturnsBasicAnswer(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.Query(context.Background(), "decreto 1377")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Answer, "DECRETO 1377 DE 2013") {
		t.Errorf("basic answer missing matched document: %q", resp.Answer)
	}
	if len(resp.Sources) == 0 {
		t.Error("basic answer carries no sources")
	}
}

func TestQueryProviderFailureDegrades(t *testing.T) {
	provider := &fakeProvider{err: errors.New("backend down")}
	svc := newTestService(provider)

	resp, err := svc.Query(context.Background(), "ley 1581")
	if err != nil {
		t.Fatalf("provider failure must degrade, not fail: %v", err)
	}
	if !strings.Contains(resp.Answer, "LEY ESTATUTARIA 1581 DE 2012") {
		t.Errorf("degraded answer = %q", resp.Answer)
	}
}

func TestQuerySourceLimit(t *testing.T) {
	svc := newTestService(nil)
	svc.SetLimits(0, 1)

	resp, err := svc.Query(context.Background(), "ley decreto datos 2012 2013 1581 1377")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Sources) != 1 {
		t.Errorf("got %d sources, want 1", len(resp.Sources))
	}
}
