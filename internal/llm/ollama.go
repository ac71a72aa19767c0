package llm

const (
	defaultOllamaBaseURL = "http://localhost:11434/v1"
	// Ollama ignores the key but the OpenAI client requires one.
	ollamaPlaceholderKey = "ollama"
)

// OllamaProvider targets a local Ollama server through its OpenAI-compatible
// endpoint. Strict schema mode is disabled since local models do not all
// honour it; responses are still validated against the schema.
type OllamaProvider struct {
	*OpenAIProvider
}

// NewOllamaProvider creates a provider for a local Ollama server.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  ollamaPlaceholderKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	inner.strict = false

	return &OllamaProvider{OpenAIProvider: inner}, nil
}
