package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/models"
	"ctr-optimizer/shared/snapshot"
)

const msgMissingYouTubeKey = "YOUTUBE_API_KEY não configurada nas variáveis de ambiente."

type refreshRequest struct {
	Force       bool `json:"force"`
	RefreshDays int  `json:"refreshDays"`
	WindowDays  int  `json:"windowDays"`
}

type snapshotResponse struct {
	OK       bool             `json:"ok"`
	Status   snapshot.Status  `json:"status"`
	Snapshot *models.Snapshot `json:"snapshot"`
}

func (s *Server) handleSnapshot(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		s.getSnapshot(c)
	case http.MethodPost:
		s.refreshSnapshot(c)
	default:
		writeError(c, http.StatusMethodNotAllowed, methodNotAllowedMessage)
	}
}

func (s *Server) getSnapshot(c *gin.Context) {
	snap, err := s.cache.Get(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read snapshot")
		writeError(c, http.StatusInternalServerError, errorMessage(err))
		return
	}

	status := snapshot.StatusReady
	if snap == nil {
		status = snapshot.StatusEmpty
	}
	c.JSON(http.StatusOK, snapshotResponse{OK: true, Status: status, Snapshot: snap})
}

func (s *Server) refreshSnapshot(c *gin.Context) {
	if !s.youtubeConfigured {
		writeError(c, http.StatusBadRequest, msgMissingYouTubeKey)
		return
	}

	req := decodeRefreshRequest(readLooseBody(c))

	snap, status, err := s.cache.Refresh(c.Request.Context(), req.Force, req.RefreshDays, req.WindowDays)
	if err != nil {
		log.Error().Err(err).Bool("force", req.Force).Msg("snapshot refresh failed")
		writeError(c, http.StatusInternalServerError, errorMessage(err))
		return
	}

	c.JSON(http.StatusOK, snapshotResponse{OK: true, Status: status, Snapshot: snap})
}
