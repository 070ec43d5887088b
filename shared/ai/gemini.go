package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model override is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the primary provider. baseURL is empty outside tests.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return ProviderGemini }

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](generationTemperature),
		MaxOutputTokens: maxOutputTokens,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		status := 0
		var apiErr genai.APIError
		var apiErrPtr *genai.APIError
		switch {
		case errors.As(err, &apiErr):
			status = apiErr.Code
		case errors.As(err, &apiErrPtr):
			status = apiErrPtr.Code
		}
		return "", &TransportError{Provider: ProviderGemini, Status: status, Err: err}
	}

	// An empty reply is not a transport failure; it fails validation downstream.
	return result.Text(), nil
}
