package domain

import (
	"fmt"
	"strconv"
)

// Status values written by the record builders.
const (
	StatusCreated         = "created"
	StatusCompleted       = "completed"
	StatusFailed          = "failed"
	StatusParticipantPaid = "participant_paid"
)

// NewInvoiceRecord records an invoice being created or changing payment status
// (pending, paid, cancelled).
func NewInvoiceRecord(invoiceID, payee string, amount float64, chain, status, txHash string, ts int64) AuditRecord {
	return AuditRecord{
		RecordID:        invoiceID,
		Timestamp:       ts,
		TotalAmount:     amount,
		Chain:           chain,
		Status:          status,
		TransactionHash: txHash,
		Payload: InvoicePayload{Parties: Parties{
			WalletAddresses: []string{payee},
			Amounts:         []float64{amount},
		}},
	}
}

// PayrollRun is one batch disbursement to employees.
type PayrollRun struct {
	RunID   string // empty for a run the backend never acknowledged
	Wallets []string
	Amounts []float64
	Total   float64
	Chain   string
	TxHash  string
}

// NewPayrollRecord records a payroll run. A failed run without a backend ID
// is keyed "failed-{ts}".
func NewPayrollRecord(run PayrollRun, failed bool, ts int64) AuditRecord {
	status := StatusCompleted
	if failed {
		status = StatusFailed
	}
	id := run.RunID
	if id == "" && failed {
		id = "failed-" + strconv.FormatInt(ts, 10)
	}
	return AuditRecord{
		RecordID:        id,
		Timestamp:       ts,
		TotalAmount:     run.Total,
		Chain:           run.Chain,
		Status:          status,
		TransactionHash: run.TxHash,
		Payload: PayrollPayload{Parties: Parties{
			WalletAddresses: run.Wallets,
			Amounts:         run.Amounts,
		}},
	}
}

// NewSplitBillCreatedRecord records a split bill being opened. The initiator
// comes first in the address list; per-party shares are not known yet.
func NewSplitBillCreatedRecord(billID, initiator string, participants []string, total float64, chain string, ts int64) AuditRecord {
	wallets := make([]string, 0, len(participants)+1)
	wallets = append(wallets, initiator)
	wallets = append(wallets, participants...)
	return AuditRecord{
		RecordID:    billID,
		Timestamp:   ts,
		TotalAmount: total,
		Chain:       chain,
		Status:      StatusCreated,
		Payload:     SplitBillPayload{Parties: Parties{WalletAddresses: wallets}},
	}
}

// NewSplitBillPaymentRecord records one participant settling their share.
func NewSplitBillPaymentRecord(billID, participant string, amount float64, chain, txHash string, ts int64) AuditRecord {
	return AuditRecord{
		RecordID:        billID,
		Timestamp:       ts,
		TotalAmount:     amount,
		Chain:           chain,
		Status:          StatusParticipantPaid,
		TransactionHash: txHash,
		Payload: SplitBillPayload{Parties: Parties{
			WalletAddresses: []string{participant},
			Amounts:         []float64{amount},
		}},
	}
}

// PaymentRecordID is the record ID of one payment step.
func PaymentRecordID(paymentID string, action PaymentAction, ts int64) string {
	return fmt.Sprintf("payment-%s-%s-%d", paymentID, action, ts)
}

// NewPaymentRecord records one step of a P2P payment. Status follows the action.
func NewPaymentRecord(p PaymentPayload, amount float64, chain, txHash string, ts int64) AuditRecord {
	return AuditRecord{
		RecordID:        PaymentRecordID(p.PaymentID, p.Action, ts),
		Timestamp:       ts,
		TotalAmount:     amount,
		Chain:           chain,
		Status:          p.Action.Status(),
		TransactionHash: txHash,
		Payload:         p,
	}
}

// WithPaymentObjectID returns a copy of a payment record carrying objectID,
// keyed as an update of the original. ok is false for non-payment records.
func (r AuditRecord) WithPaymentObjectID(objectID string, ts int64) (AuditRecord, bool) {
	p, ok := r.Payment()
	if !ok {
		return AuditRecord{}, false
	}
	p.PaymentObjectID = objectID
	r.Payload = p
	r.RecordID += "_updated"
	r.Timestamp = ts
	return r, true
}
