package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/models"
	"github.com/imleoo/aigc-check/internal/repository"
	"github.com/imleoo/aigc-check/internal/service"
)

// DetectionHandler serves the /detect endpoints.
type DetectionHandler struct {
	detection service.DetectionService
	logger    *zap.Logger
}

// NewDetectionHandler creates a detection handler.
func NewDetectionHandler(detection service.DetectionService, logger *zap.Logger) *DetectionHandler {
	return &DetectionHandler{
		detection: detection,
		logger:    logger.Named("detection_handler"),
	}
}

// Detect runs a detection on the submitted text.
func (h *DetectionHandler) Detect(c *gin.Context) {
	var req models.DetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request payload", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := models.ValidateRequest(req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.detection.Detect(c.Request.Context(), req.Text, req.Options)
	if err != nil {
		h.logger.Error("detection failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "detection failed: "+err.Error())
		return
	}
	respondOK(c, result)
}

// GetByID returns a stored detection result.
func (h *DetectionHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	result, err := h.detection.GetResult(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "result not found: "+id)
			return
		}
		h.logger.Error("failed to load result", zap.String("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load result")
		return
	}
	respondOK(c, result)
}
