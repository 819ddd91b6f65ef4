package ports

import (
	"context"
	"time"

	"payzoll-audit/internal/core/domain"
)

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
	Issuer  string
}

// IdempotencyCache remembers responses by client-supplied idempotency key.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil when absent
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// StoreReceipt describes the outcome of a record write.
type StoreReceipt struct {
	RecordBlobID   string `json:"recordBlobId"`
	IndexBlobID    string `json:"indexBlobId"`
	PointerUpdated bool   `json:"pointerUpdated"`
	PointerTier    string `json:"pointerTier,omitempty"`
}

// PaymentRecordInput holds the fields of one P2P payment step.
type PaymentRecordInput struct {
	Action          domain.PaymentAction
	PaymentID       string
	PaymentObjectID string
	From            string
	To              string
	Amount          float64
	TxHash          string
	Chain           string // empty = configured default
}

// AuditIndexService is the audit index manager.
type AuditIndexService interface {
	StoreAuditRecord(ctx context.Context, record domain.AuditRecord) (*StoreReceipt, error)
	GetAuditRecord(ctx context.Context, blobID string) (*domain.AuditRecord, error)
	GetAllAuditRecords(ctx context.Context) ([]domain.AuditRecord, error)
	ListIndexEntries(ctx context.Context, recordType domain.RecordType) ([]domain.IndexEntry, error)
	RecoverAuditIndex(ctx context.Context) (string, error)
	StorePaymentRecord(ctx context.Context, in PaymentRecordInput) (*StoreReceipt, error)
	UpdatePaymentObjectID(ctx context.Context, paymentID, paymentObjectID string) (bool, error)
}

// PointerService serves the pointer slot to remote clients.
type PointerService interface {
	Get(ctx context.Context) (*domain.IndexPointer, error)
	Update(ctx context.Context, blobID string, expected *string) (*domain.IndexPointer, error)
	History(ctx context.Context, limit int) ([]domain.PointerMove, error)
}
