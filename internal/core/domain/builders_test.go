package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoiceRecord(t *testing.T) {
	r := NewInvoiceRecord("inv-1", "0xpayee", 120, "SUI", "paid", "0xtx", 1000)

	require.NoError(t, r.Validate())
	assert.Equal(t, RecordTypeInvoice, r.Type())
	assert.Equal(t, "paid", r.Status)
	assert.Equal(t, []string{"0xpayee"}, r.WalletAddresses())
	assert.Equal(t, []float64{120}, r.Payload.(InvoicePayload).Amounts)
}

func TestNewPayrollRecord(t *testing.T) {
	run := PayrollRun{
		RunID:   "run-1",
		Wallets: []string{"0x1", "0x2"},
		Amounts: []float64{10, 20},
		Total:   30,
		Chain:   "8453",
		TxHash:  "0xtx",
	}

	ok := NewPayrollRecord(run, false, 5000)
	require.NoError(t, ok.Validate())
	assert.Equal(t, "run-1", ok.RecordID)
	assert.Equal(t, StatusCompleted, ok.Status)

	run.RunID = ""
	failed := NewPayrollRecord(run, true, 5000)
	require.NoError(t, failed.Validate())
	assert.Equal(t, "failed-5000", failed.RecordID)
	assert.Equal(t, StatusFailed, failed.Status)
}

func TestNewSplitBillRecords(t *testing.T) {
	created := NewSplitBillCreatedRecord("bill-1", "0xinit", []string{"0xa", "0xb"}, 90, "SUI", 10)
	require.NoError(t, created.Validate())
	assert.Equal(t, []string{"0xinit", "0xa", "0xb"}, created.WalletAddresses())
	assert.Nil(t, created.Payload.(SplitBillPayload).Amounts)

	paid := NewSplitBillPaymentRecord("bill-1", "0xa", 30, "SUI", "0xtx", 11)
	require.NoError(t, paid.Validate())
	assert.Equal(t, StatusParticipantPaid, paid.Status)
	assert.Equal(t, "0xtx", paid.TransactionHash)
}

func TestNewPaymentRecord(t *testing.T) {
	r := NewPaymentRecord(PaymentPayload{
		From: "0xA", To: "0xB", PaymentID: "42", Action: PaymentActionReimburse,
	}, 7.5, "SUI", "", 1700)

	require.NoError(t, r.Validate())
	assert.Equal(t, "payment-42-reimburse-1700", r.RecordID)
	assert.Equal(t, "reimbursed", r.Status)
}

func TestWithPaymentObjectID(t *testing.T) {
	orig := validPayment()

	updated, ok := orig.WithPaymentObjectID("0xObj123", 2000)
	require.True(t, ok)

	assert.Equal(t, "p1_updated", updated.RecordID)
	assert.Equal(t, int64(2000), updated.Timestamp)
	p, _ := updated.Payment()
	assert.Equal(t, "0xObj123", p.PaymentObjectID)

	op, _ := orig.Payment()
	assert.Empty(t, op.PaymentObjectID, "original is untouched")
	assert.Equal(t, "p1", orig.RecordID)

	_, ok = validPayroll().WithPaymentObjectID("x", 1)
	assert.False(t, ok)
}
