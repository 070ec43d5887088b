package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when no model override is configured.
const DefaultOpenAIModel = "gpt-5-mini"

type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates the secondary provider. Extra request options are appended
// after the API key; tests use them to redirect the base URL.
func NewOpenAI(apiKey, model string, opts ...option.RequestOption) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &OpenAI{client: openai.NewClient(clientOpts...), model: model}
}

func (o *OpenAI) Name() string { return ProviderOpenAI }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:               o.model,
		Temperature:         openai.Float(generationTemperature),
		MaxCompletionTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		status := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", &TransportError{Provider: ProviderOpenAI, Status: status, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
