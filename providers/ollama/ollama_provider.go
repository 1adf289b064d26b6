package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/codescope/codescope/providers/contracts"
)

const (
	defaultBaseURL   = "http://localhost:11434/api"
	defaultModel     = "nomic-embed-text"
	defaultDimension = 768
)

// OllamaConfig implements the embedding provider interface against a local
// Ollama server.
type OllamaConfig struct {
	BaseURL string
	Model   string
	Dim     int
	Client  *http.Client
}

// NewOllamaEmbeddingProvider initializes a new Ollama-backed provider.
func NewOllamaEmbeddingProvider(config *OllamaConfig) contracts.IEmbeddingProvider {
	provider := &OllamaConfig{
		BaseURL: config.BaseURL,
		Model:   config.Model,
		Dim:     config.Dim,
		Client:  config.Client,
	}
	if provider.BaseURL == "" {
		provider.BaseURL = defaultBaseURL
	}
	if provider.Model == "" {
		provider.Model = defaultModel
	}
	if provider.Dim == 0 {
		provider.Dim = defaultDimension
	}
	if provider.Client == nil {
		provider.Client = http.DefaultClient
	}
	return provider
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// EmbedText requests an embedding for the given text from the Ollama
// /embed endpoint.
func (provider *OllamaConfig) EmbedText(ctx context.Context, text string) ([]float32, error) {
	reqBody := embedRequest{
		Model: provider.Model,
		Input: text,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/embed", provider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := provider.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, body)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error decoding ollama response: %w", err)
	}

	if len(parsed.Embeddings) == 0 || len(parsed.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("ollama returned no embedding")
	}

	embedding := parsed.Embeddings[0]
	if len(embedding) != provider.Dim {
		return nil, fmt.Errorf("embedding dimension mismatch: expected %d, got %d", provider.Dim, len(embedding))
	}

	return embedding, nil
}

// Dimension reports the embedding width the provider is configured for.
func (provider *OllamaConfig) Dimension() int {
	return provider.Dim
}
