package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// corpusFolders are the type folders the wizard offers to create.
var corpusFolders = []string{"leyes", "decretos", "circulares", "resoluciones", "conpes", "otros"}

// detectCorpusDir looks for an existing corpus layout near the working
// directory.
func detectCorpusDir() string {
	for _, candidate := range []string{"corpus", "documentos", "docs_txt"} {
		for _, folder := range corpusFolders {
			if info, err := os.Stat(filepath.Join(candidate, folder)); err == nil && info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .matrizlegal.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to matrizlegal! Let's configure your corpus.")
	fmt.Println()

	detected := detectCorpusDir()
	if detected != "" {
		fmt.Printf("Detected corpus directory: %s\n\n", detected)
	}

	// 1. Corpus directory.
	defaultCorpus := detected
	if defaultCorpus == "" {
		defaultCorpus = "corpus"
	}
	corpusPrompt := promptui.Prompt{
		Label:   "Corpus directory (contains leyes/, decretos/, ...)",
		Default: defaultCorpus,
	}
	corpusDir, err := corpusPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("corpus dir: %w", err)
	}

	// 2. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select generation backend",
		Items: []string{"groq", "qwen", "openai", "none"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 3. Quality tier.
	quality := QualityNormal
	if provider != ProviderNone {
		qualityPrompt := promptui.Select{
			Label: "Select quality tier",
			Items: []string{
				"lite   - fast answers (8b / turbo models)",
				"normal - balanced (70b / plus models)",
				"max    - highest quality",
			},
		}
		qualityIdx, _, err := qualityPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("quality selection: %w", err)
		}
		quality = []QualityTier{QualityLite, QualityNormal, QualityMax}[qualityIdx]
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: "8000",
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}

	cfg := DefaultConfig()
	cfg.CorpusDir = corpusDir
	cfg.Provider = provider
	cfg.Quality = quality
	if provider != ProviderNone {
		cfg.Model = PresetModel(provider, quality)
	} else {
		cfg.Model = ""
	}
	fmt.Sscanf(strings.TrimSpace(portStr), "%d", &cfg.Server.Port)

	// Offer to create the folder layout when it does not exist yet.
	if _, err := os.Stat(corpusDir); os.IsNotExist(err) {
		createPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Create %s with the type folders", corpusDir),
			IsConfirm: true,
		}
		if _, err := createPrompt.Run(); err == nil {
			for _, folder := range corpusFolders {
				if err := os.MkdirAll(filepath.Join(corpusDir, folder), 0o755); err != nil {
					return nil, fmt.Errorf("creating %s: %w", folder, err)
				}
			}
			fmt.Printf("Created %s/ with %d type folders\n", corpusDir, len(corpusFolders))
		}
	}

	if envVar := APIKeyEnvVar(provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment (or a .env file) before running matrizlegal serve.\n", envVar)
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}
