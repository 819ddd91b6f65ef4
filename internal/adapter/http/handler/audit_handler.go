package handler

import (
	"encoding/json"
	"time"

	"payzoll-audit/internal/adapter/http/dto"
	"payzoll-audit/internal/adapter/http/middleware"
	"payzoll-audit/internal/core/domain"
	"payzoll-audit/internal/core/ports"
	"payzoll-audit/pkg/apperror"
	"payzoll-audit/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 128
)

// AuditHandler handles the audit record endpoints.
type AuditHandler struct {
	auditSvc       ports.AuditIndexService
	idempotency    ports.IdempotencyCache // nil = Idempotency-Key ignored
	idempotencyTTL time.Duration
	log            zerolog.Logger
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditSvc ports.AuditIndexService, cache ports.IdempotencyCache, ttl time.Duration, log zerolog.Logger) *AuditHandler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuditHandler{
		auditSvc:       auditSvc,
		idempotency:    cache,
		idempotencyTTL: ttl,
		log:            log,
	}
}

// StoreRecord handles POST /api/v1/audit/records.
func (h *AuditHandler) StoreRecord(c *gin.Context) {
	var req dto.AuditRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	h.storeOnce(c, func() (*ports.StoreReceipt, error) {
		return h.auditSvc.StoreAuditRecord(c.Request.Context(), req.ToDomain())
	})
}

// StorePayment handles POST /api/v1/audit/payments.
func (h *AuditHandler) StorePayment(c *gin.Context) {
	var req dto.PaymentRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	h.storeOnce(c, func() (*ports.StoreReceipt, error) {
		return h.auditSvc.StorePaymentRecord(c.Request.Context(), req.ToInput())
	})
}

// storeOnce runs store unless the request's Idempotency-Key already has a
// receipt, in which case that receipt is replayed.
func (h *AuditHandler) storeOnce(c *gin.Context, store func() (*ports.StoreReceipt, error)) {
	key := c.GetHeader(HeaderIdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		response.Error(c, apperror.Validation("Idempotency-Key is too long"))
		return
	}
	if key != "" && h.idempotency != nil {
		key = middleware.Subject(c) + ":" + c.FullPath() + ":" + key
		if receipt := h.cachedReceipt(c, key); receipt != nil {
			c.Header(HeaderReplayed, "true")
			response.Created(c, receipt)
			return
		}
	}

	receipt, err := store()
	if err != nil {
		response.Error(c, err)
		return
	}

	if key != "" && h.idempotency != nil {
		if data, err := json.Marshal(receipt); err == nil {
			if err := h.idempotency.Set(c.Request.Context(), key, data, h.idempotencyTTL); err != nil {
				h.log.Warn().Err(err).Msg("failed to cache receipt")
			}
		}
	}
	response.Created(c, receipt)
}

func (h *AuditHandler) cachedReceipt(c *gin.Context, key string) *ports.StoreReceipt {
	data, err := h.idempotency.Get(c.Request.Context(), key)
	if err != nil {
		h.log.Warn().Err(err).Msg("idempotency cache unavailable, processing request")
		return nil
	}
	if data == nil {
		return nil
	}
	var receipt ports.StoreReceipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		h.log.Warn().Err(err).Msg("discarding unreadable cached receipt")
		return nil
	}
	return &receipt
}

// ListRecords handles GET /api/v1/audit/records?type=payment.
func (h *AuditHandler) ListRecords(c *gin.Context) {
	recordType := domain.RecordType(c.Query("type"))
	if recordType != "" && !recordType.Valid() {
		response.Error(c, apperror.Validation("unknown record type: "+string(recordType)))
		return
	}

	records, err := h.auditSvc.GetAllAuditRecords(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	domain.SortRecordsNewestFirst(records)

	out := make([]dto.AuditRecord, 0, len(records))
	for _, r := range records {
		if recordType != "" && r.Type() != recordType {
			continue
		}
		out = append(out, dto.FromDomain(r))
	}
	response.OK(c, dto.RecordListResponse{Records: out, Count: len(out)})
}

// GetRecord handles GET /api/v1/audit/records/:blobId.
func (h *AuditHandler) GetRecord(c *gin.Context) {
	record, err := h.auditSvc.GetAuditRecord(c.Request.Context(), c.Param("blobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromDomain(*record))
}

// ListIndex handles GET /api/v1/audit/index?type=payment.
func (h *AuditHandler) ListIndex(c *gin.Context) {
	entries, err := h.auditSvc.ListIndexEntries(c.Request.Context(), domain.RecordType(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	if entries == nil {
		entries = []domain.IndexEntry{}
	}
	response.OK(c, dto.IndexResponse{Entries: entries, Count: len(entries)})
}

// UpdatePaymentObject handles PUT /api/v1/audit/payments/:paymentId/object.
func (h *AuditHandler) UpdatePaymentObject(c *gin.Context) {
	var req dto.PaymentObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	paymentID := c.Param("paymentId")
	updated, err := h.auditSvc.UpdatePaymentObjectID(c.Request.Context(), paymentID, req.PaymentObjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !updated {
		response.Error(c, apperror.ErrNotFound("Send record for payment "+paymentID))
		return
	}
	response.OK(c, dto.PaymentObjectResponse{PaymentID: paymentID, Updated: true})
}

// Recover handles POST /api/v1/audit/recover. The body must confirm the reset.
func (h *AuditHandler) Recover(c *gin.Context) {
	var req dto.RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Confirm != dto.RecoverConfirmation {
		response.Error(c, apperror.ErrConfirmationRequired("recover the audit index"))
		return
	}

	indexBlobID, err := h.auditSvc.RecoverAuditIndex(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.log.Warn().
		Str("subject", middleware.Subject(c)).
		Str("index_blob_id", indexBlobID).
		Msg("audit index reset by operator")
	response.OK(c, dto.RecoverResponse{IndexBlobID: indexBlobID})
}
