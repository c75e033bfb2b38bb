package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Completer sends one prompt to a text-generation model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiCompleter calls the Gemini API.
type GeminiCompleter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiCompleter creates a client for the Gemini developer API.
func NewGeminiCompleter(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &GeminiCompleter{client: client, model: model, timeout: timeout}, nil
}

// Model is the configured model name.
func (g *GeminiCompleter) Model() string { return g.model }

// Complete makes a single non-streaming GenerateContent call.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		// first usable candidate only
		break
	}
	return sb.String(), nil
}
