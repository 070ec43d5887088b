package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAnswer = `{"title":"A carta que mudou tudo","thumb_text":"CARTA","thumb_prompt":"` + validPrompt + `","keywords":["carta"]}`

type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func failing(name string, status int) *fakeProvider {
	return &fakeProvider{name: name, err: &TransportError{Provider: name, Status: status, Err: errors.New("upstream")}}
}

func TestOrchestratorNoPrimaryKey(t *testing.T) {
	secondary := &fakeProvider{name: ProviderOpenAI, reply: validAnswer}
	o := NewOrchestrator(nil, secondary, nil)

	res := o.Generate(context.Background(), "prompt", true)
	assert.Equal(t, OutcomeLocalFallback, res.Outcome)
	assert.Equal(t, ProviderLocal, res.Provider)
	assert.Zero(t, secondary.calls)
}

func TestOrchestratorPrimarySuccess(t *testing.T) {
	primary := &fakeProvider{name: ProviderGemini, reply: "Aqui:\n" + validAnswer}
	secondary := &fakeProvider{name: ProviderOpenAI, reply: validAnswer}
	o := NewOrchestrator(primary, secondary, nil)

	res := o.Generate(context.Background(), "prompt", false)
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, ProviderGemini, res.Provider)
	require.NotNil(t, res.Generated)
	assert.Equal(t, "CARTA", res.Generated.ThumbText)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls)
}

func TestOrchestratorPrimaryInvalidIsNotRetried(t *testing.T) {
	primary := &fakeProvider{name: ProviderGemini, reply: "desculpe, não sei"}
	secondary := &fakeProvider{name: ProviderOpenAI, reply: validAnswer}
	o := NewOrchestrator(primary, secondary, nil)

	res := o.Generate(context.Background(), "prompt", true)
	assert.Equal(t, OutcomeInvalidFormat, res.Outcome)
	assert.Equal(t, ProviderGemini, res.Provider)
	assert.Nil(t, res.Generated)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls)
}

func TestOrchestratorNeedsConfirmation(t *testing.T) {
	primary := failing(ProviderGemini, 429)
	secondary := &fakeProvider{name: ProviderOpenAI, reply: validAnswer}
	o := NewOrchestrator(primary, secondary, nil)

	res := o.Generate(context.Background(), "prompt", false)
	assert.Equal(t, Result{
		Outcome:           OutcomeNeedsConfirmation,
		Provider:          ProviderGemini,
		Status:            429,
		SuggestedProvider: ProviderOpenAI,
	}, res)
	assert.Zero(t, secondary.calls)
}

func TestOrchestratorFallback(t *testing.T) {
	tests := []struct {
		name      string
		secondary *fakeProvider
		want      Outcome
		status    int
	}{
		{"secondary succeeds", &fakeProvider{name: ProviderOpenAI, reply: validAnswer}, OutcomeSuccess, 0},
		{"secondary invalid", &fakeProvider{name: ProviderOpenAI, reply: `{"title":"curto"}`}, OutcomeInvalidFormat, 0},
		{"secondary transport failure", failing(ProviderOpenAI, 401), OutcomeSecondaryFailed, 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := failing(ProviderGemini, 503)
			o := NewOrchestrator(primary, tt.secondary, nil)

			res := o.Generate(context.Background(), "prompt", true)
			assert.Equal(t, tt.want, res.Outcome)
			assert.Equal(t, ProviderOpenAI, res.Provider)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, 1, primary.calls)
			assert.Equal(t, 1, tt.secondary.calls)
		})
	}
}

func TestOrchestratorMissingSecondary(t *testing.T) {
	o := NewOrchestrator(failing(ProviderGemini, 500), nil, nil)

	res := o.Generate(context.Background(), "prompt", true)
	assert.Equal(t, OutcomeMissingSecondary, res.Outcome)
}

func TestTransportStatus(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), &TransportError{Provider: ProviderGemini, Status: 418})
	assert.Equal(t, 418, transportStatus(wrapped))
	assert.Equal(t, 0, transportStatus(errors.New("plain")))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "needs_confirmation", OutcomeNeedsConfirmation.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
