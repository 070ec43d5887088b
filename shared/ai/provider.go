package ai

import (
	"context"
	"fmt"
)

const (
	ProviderGemini = "GEMINI"
	ProviderOpenAI = "OPENAI"
	ProviderLocal  = "LOCAL"

	generationTemperature = 0.6
	maxOutputTokens       = 700
)

// Provider sends a prompt to a text generation model and returns its raw reply.
// A non-nil error always means the call itself failed and is a *TransportError.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// TransportError reports a failed provider call. Status is the upstream HTTP
// status, or 0 when no response was received.
type TransportError struct {
	Provider string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed (status %d): %v", e.Provider, e.Status, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
