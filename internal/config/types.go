package config

import "github.com/DonMrMango/matriz-legal-ISO27001/internal/search"

// ProviderType identifies a text generation backend.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderQwen   ProviderType = "qwen"
	ProviderOpenAI ProviderType = "openai"
	// ProviderNone disables generation; queries return ranked excerpts.
	ProviderNone ProviderType = "none"
)

// QualityTier selects the model trade-off between speed and answer quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// Config is the top-level configuration, corresponding to .matrizlegal.yml.
type Config struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	BaseURL  string       `yaml:"base_url" koanf:"base_url"`
	Quality  QualityTier  `yaml:"quality" koanf:"quality"`
	// RequestsPerMinute throttles generation calls. Zero disables the
	// limiter.
	RequestsPerMinute int `yaml:"requests_per_minute" koanf:"requests_per_minute"`

	CorpusDir string   `yaml:"corpus_dir" koanf:"corpus_dir"`
	DataDir   string   `yaml:"data_dir" koanf:"data_dir"`
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`

	Server  ServerConfig   `yaml:"server" koanf:"server"`
	Chat    ChatConfig     `yaml:"chat" koanf:"chat"`
	Scoring search.Weights `yaml:"scoring" koanf:"scoring"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port" koanf:"port"`
	// AdminToken guards the analytics endpoints. Empty disables them.
	AdminToken     string   `yaml:"admin_token" koanf:"admin_token"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// ChatConfig holds the question pipeline settings.
type ChatConfig struct {
	MinQueryLength int `yaml:"min_query_length" koanf:"min_query_length"`
	MaxSources     int `yaml:"max_sources" koanf:"max_sources"`
	GeneralBudget  int `yaml:"general_budget" koanf:"general_budget"`
	FullDocBudget  int `yaml:"full_doc_budget" koanf:"full_doc_budget"`
}
