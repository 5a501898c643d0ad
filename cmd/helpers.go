package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/canonical"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/config"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/db"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/llm"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/search"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `matrizlegal init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w\nRun `matrizlegal init` to reconfigure", err)
	}
	return cfg, nil
}

// openDatabase opens (creating if needed) the application database under the
// configured data directory.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	dbPath := filepath.Join(cfg.DataDir, "matrizlegal.db")
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// buildLibrary creates the corpus library from config. database may be nil;
// canonical title overrides are skipped in that case.
func buildLibrary(cfg *config.Config, database *db.DB) *library.Library {
	libCfg := library.Config{
		RootDir: cfg.CorpusDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	}
	if database != nil {
		libCfg.Canonical = canonical.NewStore(database)
	}
	return library.New(libCfg, library.NewMetadataCache())
}

// buildScorer creates the relevance scorer over the library's content reader.
func buildScorer(cfg *config.Config, lib *library.Library) *search.Scorer {
	return search.NewScorer(cfg.Scoring, lib.ContentText)
}

// buildProvider creates the configured generation backend, wrapped in a rate
// limiter when requests_per_minute is set. Returns nil for provider "none";
// queries then degrade to ranked source listings.
func buildProvider(cfg *config.Config) (llm.Provider, error) {
	if cfg.Provider == config.ProviderNone {
		return nil, nil
	}
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	if cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}
	return provider, nil
}
