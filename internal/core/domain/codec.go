package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedBlob is wrapped by every decode failure.
var ErrMalformedBlob = errors.New("malformed blob")

// wireRecord is the flat JSON stored inside record blobs. Blobs cannot be
// migrated, so fields may be added here but never renamed or removed.
type wireRecord struct {
	RecordType      RecordType    `json:"recordType"`
	RecordID        string        `json:"recordId"`
	Timestamp       int64         `json:"timestamp"`
	WalletAddresses []string      `json:"walletAddresses"`
	Amounts         []float64     `json:"amounts,omitempty"`
	TotalAmount     float64       `json:"totalAmount"`
	Chain           string        `json:"chain"`
	Status          string        `json:"status"`
	TransactionHash string        `json:"transactionHash,omitempty"`
	PaymentID       string        `json:"paymentId,omitempty"`
	PaymentObjectID string        `json:"paymentObjectId,omitempty"`
	PaymentAction   PaymentAction `json:"paymentAction,omitempty"`
}

// EncodeRecord serializes r into its blob representation.
func EncodeRecord(r AuditRecord) ([]byte, error) {
	if r.Payload == nil {
		return nil, fmt.Errorf("encode record %q: no payload", r.RecordID)
	}

	w := wireRecord{
		RecordType:      r.Payload.Type(),
		RecordID:        r.RecordID,
		Timestamp:       r.Timestamp,
		TotalAmount:     r.TotalAmount,
		Chain:           r.Chain,
		Status:          r.Status,
		TransactionHash: r.TransactionHash,
	}

	switch p := r.Payload.(type) {
	case InvoicePayload:
		w.WalletAddresses, w.Amounts = p.WalletAddresses, p.Amounts
	case PayrollPayload:
		w.WalletAddresses, w.Amounts = p.WalletAddresses, p.Amounts
	case SplitBillPayload:
		w.WalletAddresses, w.Amounts = p.WalletAddresses, p.Amounts
	case PaymentPayload:
		w.WalletAddresses = []string{p.From, p.To}
		w.PaymentID = p.PaymentID
		w.PaymentObjectID = p.PaymentObjectID
		w.PaymentAction = p.Action
	default:
		return nil, fmt.Errorf("encode record %q: unsupported payload %T", r.RecordID, r.Payload)
	}

	return json.Marshal(w)
}

// DecodeRecord parses a record blob. Absent optional fields decode to their zero value.
func DecodeRecord(data []byte) (AuditRecord, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return AuditRecord{}, fmt.Errorf("%w: record: %v", ErrMalformedBlob, err)
	}

	r := AuditRecord{
		RecordID:        w.RecordID,
		Timestamp:       w.Timestamp,
		TotalAmount:     w.TotalAmount,
		Chain:           w.Chain,
		Status:          w.Status,
		TransactionHash: w.TransactionHash,
	}

	parties := Parties{WalletAddresses: w.WalletAddresses, Amounts: w.Amounts}
	switch w.RecordType {
	case RecordTypeInvoice:
		r.Payload = InvoicePayload{Parties: parties}
	case RecordTypePayroll:
		r.Payload = PayrollPayload{Parties: parties}
	case RecordTypeSplitBill:
		r.Payload = SplitBillPayload{Parties: parties}
	case RecordTypePayment:
		p := PaymentPayload{
			PaymentID:       w.PaymentID,
			PaymentObjectID: w.PaymentObjectID,
			Action:          w.PaymentAction,
		}
		if len(w.WalletAddresses) > 0 {
			p.From = w.WalletAddresses[0]
		}
		if len(w.WalletAddresses) > 1 {
			p.To = w.WalletAddresses[1]
		}
		r.Payload = p
	default:
		return AuditRecord{}, fmt.Errorf("%w: unknown recordType %q", ErrMalformedBlob, w.RecordType)
	}

	return r, nil
}

// EncodeIndex serializes an index document.
func EncodeIndex(d *IndexDocument) ([]byte, error) {
	if d.Records == nil {
		d = &IndexDocument{Records: []IndexEntry{}, LastUpdated: d.LastUpdated}
	}
	return json.Marshal(d)
}

// DecodeIndex parses an index document blob.
func DecodeIndex(data []byte) (*IndexDocument, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrMalformedBlob, err)
	}
	if _, ok := fields["records"]; !ok {
		return nil, fmt.Errorf("%w: index has no records field", ErrMalformedBlob)
	}

	var d IndexDocument
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrMalformedBlob, err)
	}
	if d.Records == nil {
		d.Records = []IndexEntry{}
	}
	for i, e := range d.Records {
		if e.BlobID == "" {
			return nil, fmt.Errorf("%w: index entry %d has no blobId", ErrMalformedBlob, i)
		}
	}
	return &d, nil
}
