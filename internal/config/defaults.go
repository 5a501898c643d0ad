package config

import "github.com/DonMrMango/matriz-legal-ISO27001/internal/search"

// modelPresets maps each provider+quality combination to its model.
var modelPresets = map[ProviderType]map[QualityTier]string{
	ProviderGroq: {
		QualityLite:   "llama-3.1-8b-instant",
		QualityNormal: "llama-3.3-70b-versatile",
		QualityMax:    "llama-3.3-70b-versatile",
	},
	ProviderQwen: {
		QualityLite:   "qwen-turbo",
		QualityNormal: "qwen-plus",
		QualityMax:    "qwen-max",
	},
	ProviderOpenAI: {
		QualityLite:   "gpt-4o-mini",
		QualityNormal: "gpt-4o-mini",
		QualityMax:    "gpt-4o",
	},
}

// DefaultExcludes are corpus glob patterns skipped by default.
var DefaultExcludes = []string{
	"**/.*",
	"**/README.txt",
	"**/*_borrador.txt",
}

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGroq,
		Model:             modelPresets[ProviderGroq][QualityNormal],
		Quality:           QualityNormal,
		RequestsPerMinute: 30,
		CorpusDir:         "corpus",
		DataDir:           "data",
		Include:           []string{"**"},
		Exclude:           DefaultExcludes,
		Server: ServerConfig{
			Port:           8000,
			AllowedOrigins: []string{"*"},
		},
		Chat: ChatConfig{
			MinQueryLength: 3,
			MaxSources:     3,
			GeneralBudget:  5000,
			FullDocBudget:  8000,
		},
		Scoring: search.DefaultWeights(),
	}
}

// PresetModel returns the model for the given provider and tier. Unknown
// combinations fall back to the default groq model.
func PresetModel(provider ProviderType, tier QualityTier) string {
	if tiers, ok := modelPresets[provider]; ok {
		if model, ok := tiers[tier]; ok {
			return model
		}
	}
	return modelPresets[ProviderGroq][QualityNormal]
}
