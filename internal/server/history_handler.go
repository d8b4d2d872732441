package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/repository"
	"github.com/imleoo/aigc-check/internal/service"
)

// DefaultMaxPageSize caps page_size when no cap is configured.
const DefaultMaxPageSize = 100

// Sort parameters are whitelisted before reaching the repository, which
// interpolates them into the ORDER BY clause.
var allowedSortColumns = map[string]bool{
	"created_at": true,
	"score":      true,
	"risk_level": true,
}

var allowedOrders = map[string]bool{
	"asc":  true,
	"desc": true,
}

// HistoryHandler serves the /history endpoints.
type HistoryHandler struct {
	history     service.HistoryService
	maxPageSize int
	logger      *zap.Logger
}

// NewHistoryHandler creates a history handler. maxPageSize caps the
// page_size query parameter; non-positive values keep the default.
func NewHistoryHandler(history service.HistoryService, maxPageSize int, logger *zap.Logger) *HistoryHandler {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &HistoryHandler{
		history:     history,
		maxPageSize: maxPageSize,
		logger:      logger.Named("history_handler"),
	}
}

// List returns one page of the detection history. Out-of-range or
// unrecognized parameters fall back to defaults instead of failing.
func (h *HistoryHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	sortBy := c.DefaultQuery("sort", "created_at")
	if !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := c.DefaultQuery("order", "desc")
	if !allowedOrders[order] {
		order = "desc"
	}

	result, err := h.history.List(c.Request.Context(), page, pageSize, sortBy, order)
	if err != nil {
		h.logger.Error("failed to list history", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list history")
		return
	}
	respondOK(c, result)
}

// GetByID returns one history entry as a full detection result.
func (h *HistoryHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	result, err := h.history.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "history entry not found: "+id)
			return
		}
		h.logger.Error("failed to load history entry", zap.String("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load history entry")
		return
	}
	respondOK(c, result)
}

// Delete removes one history entry. Deleting a missing id succeeds.
func (h *HistoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.history.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("failed to delete history entry", zap.String("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete history entry")
		return
	}
	respondOK(c, nil)
}

// DeleteAll clears the entire detection history.
func (h *HistoryHandler) DeleteAll(c *gin.Context) {
	if err := h.history.DeleteAll(c.Request.Context()); err != nil {
		h.logger.Error("failed to delete history", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete history")
		return
	}
	respondOK(c, nil)
}
