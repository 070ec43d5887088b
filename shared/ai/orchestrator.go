package ai

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/models"
	"ctr-optimizer/shared/monitoring"
)

// Outcome is the terminal state of one generation attempt.
type Outcome int

const (
	// OutcomeLocalFallback: no primary provider is configured, the caller should generate locally.
	OutcomeLocalFallback Outcome = iota
	OutcomeSuccess
	// OutcomeInvalidFormat: a provider answered but the answer failed validation.
	OutcomeInvalidFormat
	// OutcomeNeedsConfirmation: the primary failed and the caller has not allowed the secondary.
	OutcomeNeedsConfirmation
	OutcomeMissingSecondary
	// OutcomeSecondaryFailed: the secondary call itself failed.
	OutcomeSecondaryFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLocalFallback:
		return "local_fallback"
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidFormat:
		return "invalid_format"
	case OutcomeNeedsConfirmation:
		return "needs_confirmation"
	case OutcomeMissingSecondary:
		return "missing_secondary"
	case OutcomeSecondaryFailed:
		return "secondary_failed"
	default:
		return "unknown"
	}
}

// Result describes how a generation attempt ended.
type Result struct {
	Outcome Outcome
	// Provider is the provider that produced Generated, or that failed.
	Provider  string
	Generated *models.GeneratedResult
	// Status is the upstream HTTP status of the failed call, when there is one.
	Status int
	// SuggestedProvider is set with OutcomeNeedsConfirmation.
	SuggestedProvider string
}

// Orchestrator calls the primary provider and, only when the caller allows it,
// the secondary one after a primary transport failure. Nothing is retried.
type Orchestrator struct {
	primary   Provider
	secondary Provider
	metrics   monitoring.Metrics
}

// NewOrchestrator takes nil for a provider whose API key is not configured.
func NewOrchestrator(primary, secondary Provider, metrics monitoring.Metrics) *Orchestrator {
	if metrics == nil {
		metrics = monitoring.NewNoopMetrics()
	}
	return &Orchestrator{primary: primary, secondary: secondary, metrics: metrics}
}

func (o *Orchestrator) Generate(ctx context.Context, prompt string, allowSecondary bool) Result {
	if o.primary == nil {
		return Result{Outcome: OutcomeLocalFallback, Provider: ProviderLocal}
	}

	text, err := o.primary.Generate(ctx, prompt)
	if err == nil {
		return o.validate(o.primary.Name(), text)
	}

	status := transportStatus(err)
	o.metrics.ProviderCall(o.primary.Name(), "transport_error")
	log.Warn().Err(err).Str("provider", o.primary.Name()).Int("status", status).Msg("primary provider failed")

	if !allowSecondary {
		log.Info().Str("suggested", ProviderOpenAI).Msg("fallback confirmation requested")
		return Result{
			Outcome:           OutcomeNeedsConfirmation,
			Provider:          o.primary.Name(),
			Status:            status,
			SuggestedProvider: ProviderOpenAI,
		}
	}

	if o.secondary == nil {
		return Result{Outcome: OutcomeMissingSecondary, Provider: ProviderOpenAI}
	}

	text, err = o.secondary.Generate(ctx, prompt)
	if err != nil {
		status := transportStatus(err)
		o.metrics.ProviderCall(o.secondary.Name(), "transport_error")
		log.Error().Err(err).Str("provider", o.secondary.Name()).Int("status", status).Msg("secondary provider failed")
		return Result{Outcome: OutcomeSecondaryFailed, Provider: o.secondary.Name(), Status: status}
	}

	return o.validate(o.secondary.Name(), text)
}

func (o *Orchestrator) validate(provider, text string) Result {
	generated, ok := ParseResult(text)
	if !ok {
		o.metrics.ProviderCall(provider, "invalid_format")
		log.Warn().Str("provider", provider).Int("chars", len(text)).Msg("provider answer failed validation")
		return Result{Outcome: OutcomeInvalidFormat, Provider: provider}
	}
	o.metrics.ProviderCall(provider, "success")
	return Result{Outcome: OutcomeSuccess, Provider: provider, Generated: generated}
}

func transportStatus(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}
