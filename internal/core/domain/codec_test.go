package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		record AuditRecord
	}{
		{"payment without optional fields", validPayment()},
		{"payment with object and tx hash", AuditRecord{
			RecordID: "payment-9-claim-1700", Timestamp: 1700, TotalAmount: 2.5, Chain: "SUI", Status: "claimed",
			TransactionHash: "9xTx",
			Payload: PaymentPayload{From: "0xA", To: "0xB", PaymentID: "9", PaymentObjectID: "0xObj", Action: PaymentActionClaim},
		}},
		{"payroll with amounts", validPayroll()},
		{"invoice single party", AuditRecord{
			RecordID: "inv-1", Timestamp: 42, TotalAmount: 99.99, Chain: "SUI", Status: "created",
			Payload: InvoicePayload{Parties: Parties{WalletAddresses: []string{"0xpayee"}}},
		}},
		{"split bill empty parties", AuditRecord{
			RecordID: "split-1", Timestamp: 43, TotalAmount: 0, Chain: "SUI", Status: "created",
			Payload: SplitBillPayload{Parties: Parties{WalletAddresses: []string{}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeRecord(tt.record)
			require.NoError(t, err)

			decoded, err := DecodeRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record, decoded)
		})
	}
}

func TestEncodeRecord_WireShape(t *testing.T) {
	data, err := EncodeRecord(validPayment())
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, "payment", wire["recordType"])
	assert.Equal(t, "p1", wire["recordId"])
	assert.Equal(t, float64(1000), wire["timestamp"])
	assert.Equal(t, []interface{}{"0xA", "0xB"}, wire["walletAddresses"])
	assert.Equal(t, float64(5), wire["totalAmount"])
	assert.Equal(t, "send", wire["paymentAction"])
	assert.Equal(t, "p1", wire["paymentId"])
	assert.NotContains(t, wire, "amounts")
	assert.NotContains(t, wire, "transactionHash")
	assert.NotContains(t, wire, "paymentObjectId")
}

func TestDecodeRecord_LegacyPayrollBlob(t *testing.T) {
	blob := []byte(`{"recordType":"payroll","recordId":"failed-1712","timestamp":1712000000000,
		"walletAddresses":["0x1","0x2"],"amounts":[1.5,2.5],"totalAmount":4,"chain":"8453","status":"failed"}`)

	r, err := DecodeRecord(blob)
	require.NoError(t, err)

	assert.Equal(t, RecordTypePayroll, r.Type())
	assert.Equal(t, "failed", r.Status)
	assert.Empty(t, r.TransactionHash)
	p := r.Payload.(PayrollPayload)
	assert.Equal(t, []float64{1.5, 2.5}, p.Amounts)
	assert.NoError(t, r.Validate())
}

func TestEncodeRecord_NoPayload(t *testing.T) {
	_, err := EncodeRecord(AuditRecord{RecordID: "x"})
	assert.Error(t, err)
}

func TestDecodeRecord_Malformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", `<html>gateway timeout</html>`},
		{"unknown type", `{"recordType":"refund","recordId":"r"}`},
		{"missing type", `{"recordId":"r"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(tt.blob))
			assert.ErrorIs(t, err, ErrMalformedBlob)
		})
	}
}

func TestIndexCodec_RoundTrip(t *testing.T) {
	d := NewIndexDocument(1234)
	d.Merge(entries("a", "b"))

	data, err := EncodeIndex(d)
	require.NoError(t, err)

	decoded, err := DecodeIndex(data)
	require.NoError(t, err)
	assert.Equal(t, d.Records, decoded.Records)
	assert.Equal(t, d.LastUpdated, decoded.LastUpdated)
}

func TestEncodeIndex_EmptyDocumentHasRecordsArray(t *testing.T) {
	data, err := EncodeIndex(&IndexDocument{LastUpdated: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[],"lastUpdated":7}`, string(data))
}

func TestDecodeIndex(t *testing.T) {
	d, err := DecodeIndex([]byte(`{"records":null,"lastUpdated":5}`))
	require.NoError(t, err)
	assert.NotNil(t, d.Records)
	assert.Empty(t, d.Records)

	_, err = DecodeIndex([]byte(`{"records":[{"recordId":"x"}]}`))
	assert.ErrorIs(t, err, ErrMalformedBlob)

	_, err = DecodeIndex([]byte(`[]`))
	assert.ErrorIs(t, err, ErrMalformedBlob)

	_, err = DecodeIndex([]byte(`{"recordType":"invoice","recordId":"i1","timestamp":5}`))
	assert.ErrorIs(t, err, ErrMalformedBlob, "a record blob is not an index")
}
