package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderGroq {
		t.Errorf("expected default provider %q, got %q", ProviderGroq, cfg.Provider)
	}
	if cfg.Quality != QualityNormal {
		t.Errorf("expected default quality %q, got %q", QualityNormal, cfg.Quality)
	}
	if cfg.CorpusDir != "corpus" {
		t.Errorf("expected default corpus_dir %q, got %q", "corpus", cfg.CorpusDir)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Chat.MinQueryLength != 3 {
		t.Errorf("expected default min_query_length 3, got %d", cfg.Chat.MinQueryLength)
	}
	if cfg.Scoring.MinScore != 30 {
		t.Errorf("expected default min_score 30, got %d", cfg.Scoring.MinScore)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.matrizlegal.yml")

	original := DefaultConfig()
	original.Provider = ProviderQwen
	original.Model = "qwen-max"
	original.Quality = QualityMax
	original.CorpusDir = "documentos"
	original.Include = []string{"leyes/**", "decretos/**"}
	original.Server.Port = 9000
	original.Scoring.MinScore = 50

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.CorpusDir != original.CorpusDir {
		t.Errorf("corpus_dir: got %q, want %q", loaded.CorpusDir, original.CorpusDir)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("server.port: got %d, want 9000", loaded.Server.Port)
	}
	if loaded.Scoring.MinScore != 50 {
		t.Errorf("scoring.min_score: got %d, want 50", loaded.Scoring.MinScore)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderGroq {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("MATRIZ_PROVIDER", "qwen")
	t.Setenv("MATRIZ_SERVER__PORT", "9100")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != ProviderQwen {
		t.Errorf("env override failed: got %q, want %q", loaded.Provider, ProviderQwen)
	}
	if loaded.Server.Port != 9100 {
		t.Errorf("nested env override failed: got %d, want 9100", loaded.Server.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "invalid"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}
}

func TestValidateEmptyModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty model")
	}
}

func TestValidateModelOptionalWithoutProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderNone
	cfg.Model = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("model should be optional for provider none, got: %v", err)
	}
}

func TestValidateInvalidQuality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quality = "ultra"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid quality")
	}
}

func TestValidateEmptyCorpusDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CorpusDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty corpus_dir")
	}
}

func TestValidateBadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range port")
	}
}

func TestValidateBadChatLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chat.MinQueryLength = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for min_query_length 0")
	}

	cfg = DefaultConfig()
	cfg.Chat.MaxSources = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for max_sources 0")
	}
}

func TestPresetModel(t *testing.T) {
	if m := PresetModel(ProviderGroq, QualityLite); m != "llama-3.1-8b-instant" {
		t.Errorf("expected instant model, got %q", m)
	}
	if m := PresetModel(ProviderQwen, QualityMax); m != "qwen-max" {
		t.Errorf("expected qwen-max, got %q", m)
	}
	// Unknown combination falls back.
	if m := PresetModel("unknown", QualityLite); m != "llama-3.3-70b-versatile" {
		t.Errorf("expected fallback model, got %q", m)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderGroq, "GROQ_API_KEY"},
		{ProviderQwen, "DASHSCOPE_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderNone, ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
