package api

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/models"
	"ctr-optimizer/shared/ai"
)

const minIdeaLength = 10

const (
	msgIdeaTooShort       = "Texto/ideia muito curta."
	msgMissingNiche       = "Selecione nicho e especificidade."
	msgMissingGeminiKey   = "GEMINI_API_KEY não configurada. Usando modo local no front."
	msgMissingOpenAIKey   = "OPENAI_API_KEY não configurada nas variáveis de ambiente."
	msgGeminiInvalid      = "Gemini respondeu em formato inválido. Tente novamente com um texto mais específico."
	msgOpenAIInvalid      = "OpenAI respondeu em formato inválido. Tente novamente."
	msgOpenAIFailedFormat = "OpenAI falhou (status %d)."
	msgConfirmFormat      = "Gemini indisponível/limitado (status %d). Posso usar OpenAI (isso pode consumir créditos)?"

	modeMissingGeminiKey = "missing_gemini_key"
)

type localModeResponse struct {
	OK       bool   `json:"ok"`
	Provider string `json:"provider"`
	Mode     string `json:"mode"`
	Message  string `json:"message"`
}

type generatedResponse struct {
	OK       bool   `json:"ok"`
	Provider string `json:"provider"`
	models.GeneratedResult
}

type confirmationResponse struct {
	OK                bool   `json:"ok"`
	NeedsConfirmation bool   `json:"needsConfirmation"`
	SuggestedProvider string `json:"suggestedProvider"`
	Message           string `json:"message"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		writeError(c, http.StatusMethodNotAllowed, methodNotAllowedMessage)
		return
	}

	req := decodeGenerateRequest(readLooseBody(c))

	if utf8.RuneCountInString(strings.TrimSpace(req.FormData.Idea)) < minIdeaLength {
		writeError(c, http.StatusBadRequest, msgIdeaTooShort)
		return
	}
	if req.FormData.Niche == "" || req.FormData.Subniche == "" {
		writeError(c, http.StatusBadRequest, msgMissingNiche)
		return
	}

	snap, err := s.cache.Get(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load snapshot for prompt")
		writeError(c, http.StatusInternalServerError, errorMessage(err))
		return
	}

	prompt := ai.BuildPrompt(req.FormData, req.Extracted, snap)
	res := s.generator.Generate(c.Request.Context(), prompt, req.AllowOpenAI)

	switch res.Outcome {
	case ai.OutcomeLocalFallback:
		c.JSON(http.StatusOK, localModeResponse{
			OK:       true,
			Provider: ai.ProviderLocal,
			Mode:     modeMissingGeminiKey,
			Message:  msgMissingGeminiKey,
		})
	case ai.OutcomeSuccess:
		c.JSON(http.StatusOK, generatedResponse{OK: true, Provider: res.Provider, GeneratedResult: *res.Generated})
	case ai.OutcomeInvalidFormat:
		msg := msgGeminiInvalid
		if res.Provider == ai.ProviderOpenAI {
			msg = msgOpenAIInvalid
		}
		writeError(c, http.StatusBadGateway, msg)
	case ai.OutcomeNeedsConfirmation:
		c.JSON(http.StatusConflict, confirmationResponse{
			OK:                false,
			NeedsConfirmation: true,
			SuggestedProvider: res.SuggestedProvider,
			Message:           fmt.Sprintf(msgConfirmFormat, res.Status),
		})
	case ai.OutcomeMissingSecondary:
		writeError(c, http.StatusBadRequest, msgMissingOpenAIKey)
	case ai.OutcomeSecondaryFailed:
		writeError(c, http.StatusInternalServerError, fmt.Sprintf(msgOpenAIFailedFormat, res.Status))
	default:
		writeError(c, http.StatusInternalServerError, internalErrorMessage)
	}
}
