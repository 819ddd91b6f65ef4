package handler

import (
	"strconv"

	"payzoll-audit/internal/adapter/http/dto"
	"payzoll-audit/internal/core/ports"
	"payzoll-audit/pkg/apperror"
	"payzoll-audit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PointerHandler serves the audit index pointer slot to remote devices.
type PointerHandler struct {
	pointerSvc ports.PointerService
	log        zerolog.Logger
}

// NewPointerHandler creates a new pointer handler.
func NewPointerHandler(pointerSvc ports.PointerService, log zerolog.Logger) *PointerHandler {
	return &PointerHandler{pointerSvc: pointerSvc, log: log}
}

// Get handles GET /api/v1/blobs/audit-index. An empty slot is a 404.
func (h *PointerHandler) Get(c *gin.Context) {
	p, err := h.pointerSvc.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

// Update handles POST /api/v1/blobs/audit-index. A stale expectedBlobId is a 409
// whose details carry the slot's current blobId.
func (h *PointerHandler) Update(c *gin.Context) {
	var req dto.PointerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	p, err := h.pointerSvc.Update(c.Request.Context(), req.BlobID, req.ExpectedBlobID)
	if err != nil {
		if apperror.HasCode(err, apperror.CodePointerConflict) {
			response.ErrorWithDetails(c, err, h.conflictDetails(c))
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *PointerHandler) conflictDetails(c *gin.Context) map[string]interface{} {
	current, err := h.pointerSvc.Get(c.Request.Context())
	switch {
	case err == nil:
		return map[string]interface{}{"blobId": current.BlobID}
	case apperror.HasCode(err, apperror.CodeNotFound):
		return map[string]interface{}{"blobId": ""}
	default:
		h.log.Warn().Err(err).Msg("could not read pointer after conflict")
		return nil
	}
}

// History handles GET /api/v1/blobs/audit-index/history?limit=50.
func (h *PointerHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	moves, err := h.pointerSvc.History(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.PointerHistoryResponse{Moves: moves, Count: len(moves)})
}
