package domain

import (
	"fmt"
	"math"
	"sort"
)

// RecordType discriminates how an audit record's parties are interpreted.
type RecordType string

const (
	RecordTypeInvoice   RecordType = "invoice"
	RecordTypePayroll   RecordType = "payroll"
	RecordTypeSplitBill RecordType = "splitBill"
	RecordTypePayment   RecordType = "payment"
)

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	switch t {
	case RecordTypeInvoice, RecordTypePayroll, RecordTypeSplitBill, RecordTypePayment:
		return true
	}
	return false
}

// PaymentAction is the P2P escrow step a payment record describes.
type PaymentAction string

const (
	PaymentActionSend      PaymentAction = "send"
	PaymentActionClaim     PaymentAction = "claim"
	PaymentActionReimburse PaymentAction = "reimburse"
)

// Valid reports whether a is a known payment action.
func (a PaymentAction) Valid() bool {
	switch a {
	case PaymentActionSend, PaymentActionClaim, PaymentActionReimburse:
		return true
	}
	return false
}

// Status returns the record status written for this action.
func (a PaymentAction) Status() string {
	switch a {
	case PaymentActionSend:
		return "sent"
	case PaymentActionClaim:
		return "claimed"
	case PaymentActionReimburse:
		return "reimbursed"
	}
	return string(a)
}

// AuditRecord is one immutable financial event. The envelope is shared by every
// record type; Payload carries the type-specific fields.
type AuditRecord struct {
	RecordID        string
	Timestamp       int64 // milliseconds since epoch
	TotalAmount     float64
	Chain           string
	Status          string
	TransactionHash string // empty = no on-chain reference yet
	Payload         RecordPayload
}

// RecordPayload is implemented by InvoicePayload, PayrollPayload,
// SplitBillPayload and PaymentPayload.
type RecordPayload interface {
	Type() RecordType
	validate() error
}

// Parties lists wallet addresses with optional per-address amounts.
// Amounts is nil for single-party records.
type Parties struct {
	WalletAddresses []string
	Amounts         []float64
}

func (p Parties) validate() error {
	if p.Amounts != nil && len(p.Amounts) != len(p.WalletAddresses) {
		return fmt.Errorf("amounts has %d entries for %d wallet addresses", len(p.Amounts), len(p.WalletAddresses))
	}
	for i, a := range p.Amounts {
		if !validAmount(a) {
			return fmt.Errorf("amounts[%d] must be a finite non-negative number", i)
		}
	}
	return nil
}

// InvoicePayload describes an invoice being issued or settled.
type InvoicePayload struct {
	Parties
}

func (InvoicePayload) Type() RecordType { return RecordTypeInvoice }

// PayrollPayload describes a bulk disbursement; WalletAddresses are the recipients.
type PayrollPayload struct {
	Parties
}

func (PayrollPayload) Type() RecordType { return RecordTypePayroll }

// SplitBillPayload describes a split bill or one participant's share of it.
type SplitBillPayload struct {
	Parties
}

func (SplitBillPayload) Type() RecordType { return RecordTypeSplitBill }

// PaymentPayload describes one step of a P2P escrow payment.
type PaymentPayload struct {
	From            string
	To              string
	PaymentID       string
	PaymentObjectID string
	Action          PaymentAction
}

func (PaymentPayload) Type() RecordType { return RecordTypePayment }

func (p PaymentPayload) validate() error {
	if p.From == "" || p.To == "" {
		return fmt.Errorf("payment records need both from and to addresses")
	}
	if !p.Action.Valid() {
		return fmt.Errorf("unknown payment action %q", p.Action)
	}
	return nil
}

// Type returns the record's type, or "" when it has no payload.
func (r AuditRecord) Type() RecordType {
	if r.Payload == nil {
		return ""
	}
	return r.Payload.Type()
}

// Validate checks the invariants every stored record must hold.
func (r AuditRecord) Validate() error {
	if r.Payload == nil {
		return fmt.Errorf("record has no payload")
	}
	if r.RecordID == "" {
		return fmt.Errorf("recordId is required")
	}
	if r.Timestamp <= 0 {
		return fmt.Errorf("timestamp must be positive milliseconds")
	}
	if !validAmount(r.TotalAmount) {
		return fmt.Errorf("totalAmount must be a finite non-negative number")
	}
	if r.Chain == "" {
		return fmt.Errorf("chain is required")
	}
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	return r.Payload.validate()
}

// Payment returns the payment payload when r is a payment record.
func (r AuditRecord) Payment() (PaymentPayload, bool) {
	p, ok := r.Payload.(PaymentPayload)
	return p, ok
}

// WalletAddresses returns the record's parties in wire order.
func (r AuditRecord) WalletAddresses() []string {
	switch p := r.Payload.(type) {
	case InvoicePayload:
		return p.WalletAddresses
	case PayrollPayload:
		return p.WalletAddresses
	case SplitBillPayload:
		return p.WalletAddresses
	case PaymentPayload:
		return []string{p.From, p.To}
	}
	return nil
}

// SortRecordsNewestFirst orders records by descending timestamp; ties keep index order.
func SortRecordsNewestFirst(records []AuditRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
