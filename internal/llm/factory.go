package llm

import (
	"fmt"
	"os"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	qwenBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
)

// NewProvider creates an LLM provider for the given backend and model.
// Supported backends: "groq", "qwen", "openai". An empty baseURL selects the
// backend's default endpoint.
func NewProvider(providerType, model, baseURL string) (Provider, error) {
	switch providerType {
	case "groq":
		apiKey := os.Getenv("GROQ_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
		}
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		return NewCompatibleProvider("groq", apiKey, baseURL, model), nil

	case "qwen":
		apiKey := os.Getenv("DASHSCOPE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("DASHSCOPE_API_KEY environment variable is not set")
		}
		if baseURL == "" {
			baseURL = qwenBaseURL
		}
		return NewCompatibleProvider("qwen", apiKey, baseURL, model), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		if baseURL != "" {
			return NewCompatibleProvider("openai", apiKey, baseURL, model), nil
		}
		return NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
