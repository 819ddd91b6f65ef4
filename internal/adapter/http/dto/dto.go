package dto

import (
	"payzoll-audit/internal/core/domain"
	"payzoll-audit/internal/core/ports"
)

// AuditRecord is the JSON shape of an audit record on the API. It mirrors the
// flat layout stored inside record blobs.
type AuditRecord struct {
	RecordType      string    `json:"recordType" binding:"required,record_type"`
	RecordID        string    `json:"recordId" binding:"required,max=200"`
	Timestamp       int64     `json:"timestamp" binding:"required,gt=0"`
	WalletAddresses []string  `json:"walletAddresses"`
	Amounts         []float64 `json:"amounts,omitempty"`
	TotalAmount     float64   `json:"totalAmount" binding:"gte=0"`
	Chain           string    `json:"chain" binding:"required,max=32"`
	Status          string    `json:"status" binding:"required,max=32"`
	TransactionHash string    `json:"transactionHash,omitempty"`
	PaymentID       string    `json:"paymentId,omitempty"`
	PaymentObjectID string    `json:"paymentObjectId,omitempty"`
	PaymentAction   string    `json:"paymentAction,omitempty" binding:"omitempty,payment_action"`
}

// ToDomain converts the request body into a domain record.
func (r AuditRecord) ToDomain() domain.AuditRecord {
	rec := domain.AuditRecord{
		RecordID:        r.RecordID,
		Timestamp:       r.Timestamp,
		TotalAmount:     r.TotalAmount,
		Chain:           r.Chain,
		Status:          r.Status,
		TransactionHash: r.TransactionHash,
	}

	parties := domain.Parties{WalletAddresses: r.WalletAddresses, Amounts: r.Amounts}
	if parties.WalletAddresses == nil {
		parties.WalletAddresses = []string{}
	}

	switch domain.RecordType(r.RecordType) {
	case domain.RecordTypeInvoice:
		rec.Payload = domain.InvoicePayload{Parties: parties}
	case domain.RecordTypePayroll:
		rec.Payload = domain.PayrollPayload{Parties: parties}
	case domain.RecordTypeSplitBill:
		rec.Payload = domain.SplitBillPayload{Parties: parties}
	case domain.RecordTypePayment:
		p := domain.PaymentPayload{
			PaymentID:       r.PaymentID,
			PaymentObjectID: r.PaymentObjectID,
			Action:          domain.PaymentAction(r.PaymentAction),
		}
		if len(r.WalletAddresses) > 0 {
			p.From = r.WalletAddresses[0]
		}
		if len(r.WalletAddresses) > 1 {
			p.To = r.WalletAddresses[1]
		}
		rec.Payload = p
	}
	return rec
}

// FromDomain renders a domain record for a response.
func FromDomain(rec domain.AuditRecord) AuditRecord {
	out := AuditRecord{
		RecordType:      string(rec.Type()),
		RecordID:        rec.RecordID,
		Timestamp:       rec.Timestamp,
		WalletAddresses: rec.WalletAddresses(),
		TotalAmount:     rec.TotalAmount,
		Chain:           rec.Chain,
		Status:          rec.Status,
		TransactionHash: rec.TransactionHash,
	}

	switch p := rec.Payload.(type) {
	case domain.InvoicePayload:
		out.Amounts = p.Amounts
	case domain.PayrollPayload:
		out.Amounts = p.Amounts
	case domain.SplitBillPayload:
		out.Amounts = p.Amounts
	case domain.PaymentPayload:
		out.PaymentID = p.PaymentID
		out.PaymentObjectID = p.PaymentObjectID
		out.PaymentAction = string(p.Action)
	}
	if out.WalletAddresses == nil {
		out.WalletAddresses = []string{}
	}
	return out
}

// RecordListResponse wraps a full fetch of the audit trail.
type RecordListResponse struct {
	Records []AuditRecord `json:"records"`
	Count   int           `json:"count"`
}

// IndexResponse lists index entries without fetching the records.
type IndexResponse struct {
	Entries []domain.IndexEntry `json:"entries"`
	Count   int                 `json:"count"`
}

// PaymentRecordRequest is the request body for recording one P2P payment step.
type PaymentRecordRequest struct {
	Action          string  `json:"action" binding:"required,payment_action"`
	PaymentID       string  `json:"paymentId" binding:"required,safe_id"`
	PaymentObjectID string  `json:"paymentObjectId,omitempty"`
	From            string  `json:"from" binding:"required"`
	To              string  `json:"to" binding:"required"`
	Amount          float64 `json:"amount" binding:"gte=0"`
	TxHash          string  `json:"txHash,omitempty"`
	Chain           string  `json:"chain,omitempty" binding:"max=32"`
}

// ToInput converts the request body into the service input.
func (r PaymentRecordRequest) ToInput() ports.PaymentRecordInput {
	return ports.PaymentRecordInput{
		Action:          domain.PaymentAction(r.Action),
		PaymentID:       r.PaymentID,
		PaymentObjectID: r.PaymentObjectID,
		From:            r.From,
		To:              r.To,
		Amount:          r.Amount,
		TxHash:          r.TxHash,
		Chain:           r.Chain,
	}
}

// PaymentObjectRequest attaches an on-chain object id to a sent payment.
type PaymentObjectRequest struct {
	PaymentObjectID string `json:"paymentObjectId" binding:"required"`
}

// PaymentObjectResponse reports whether a send record was found and copied.
type PaymentObjectResponse struct {
	PaymentID string `json:"paymentId"`
	Updated   bool   `json:"updated"`
}

// RecoverRequest must carry Confirm == RecoverConfirmation.
type RecoverRequest struct {
	Confirm string `json:"confirm"`
}

// RecoverConfirmation is the literal a caller types to rebuild the index from scratch.
const RecoverConfirmation = "RECOVER"

// RecoverResponse carries the blob id of the fresh empty index.
type RecoverResponse struct {
	IndexBlobID string `json:"indexBlobId"`
}

// PointerUpdateRequest moves the pointer slot. ExpectedBlobID makes the move
// conditional; "" expects an empty slot, absent means unconditional.
type PointerUpdateRequest struct {
	BlobID         string  `json:"blobId" binding:"required"`
	ExpectedBlobID *string `json:"expectedBlobId,omitempty"`
}

// PointerHistoryResponse lists recent pointer moves, newest first.
type PointerHistoryResponse struct {
	Moves []domain.PointerMove `json:"moves"`
	Count int                  `json:"count"`
}
