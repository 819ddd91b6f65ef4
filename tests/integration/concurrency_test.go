package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	redisStorage "payzoll-audit/internal/adapter/storage/redis"
	"payzoll-audit/internal/core/domain"
	"payzoll-audit/internal/core/ports"
	"payzoll-audit/internal/service"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentDevicesLoseNoEntries has several devices write through the
// backend pointer at once. A writer can only lose a compare-and-swap to a
// commit made after it resolved, so with as many attempts as writers every
// write lands and the final index lists all of them.
func TestConcurrentDevicesLoseNoEntries(t *testing.T) {
	const (
		devices   = 3
		perDevice = 6
		writers   = devices * perDevice
	)

	app := newTestApp(t)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		receipts []*ports.StoreReceipt
		errs     []error
	)
	for d := 0; d < devices; d++ {
		device := app.newDevice(fmt.Sprintf("device-%d", d), service.WithMaxPointerAttempts(writers))
		for i := 0; i < perDevice; i++ {
			wg.Add(1)
			go func(d, i int) {
				defer wg.Done()
				receipt, err := device.StorePaymentRecord(ctx, ports.PaymentRecordInput{
					Action:    domain.PaymentActionSend,
					PaymentID: fmt.Sprintf("%d-%d", d, i),
					From:      "0xSender",
					To:        "0xReceiver",
					Amount:    float64(i + 1),
				})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				receipts = append(receipts, receipt)
			}(d, i)
		}
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Len(t, receipts, writers)
	for _, r := range receipts {
		assert.True(t, r.PointerUpdated)
		assert.Equal(t, "backend", r.PointerTier)
	}

	resp := app.call(t, http.MethodGet, "/api/v1/audit/index?type=payment", app.token(t, "auditor"), "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, float64(writers), resp.data()["count"])

	indexed := map[string]bool{}
	for _, e := range resp.data()["entries"].([]interface{}) {
		indexed[e.(map[string]interface{})["blobId"].(string)] = true
	}
	for _, r := range receipts {
		assert.True(t, indexed[r.RecordBlobID], "record %s missing from index", r.RecordBlobID)
	}

	// Every successful write moved the pointer exactly once.
	moves, err := app.pointer.History(ctx, domain.AuditIndexSlot, 100)
	require.NoError(t, err)
	assert.Len(t, moves, writers)
}

// TestConcurrentRedisPointerOnly runs two managers that share nothing but the
// blob store and a Redis pointer. The Lua compare-and-swap serialises them.
func TestConcurrentRedisPointerOnly(t *testing.T) {
	const writers = 10

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	fw := newFakeWalrus()
	defer fw.Close()

	log := zerolog.New(io.Discard)
	newManager := func() *service.AuditIndexService {
		tiered := service.NewTieredPointer(nil, redisStorage.NewPointerStore(rdb, ""), log)
		return service.NewAuditIndexService(newWalrusClient(fw), tiered, log, service.WithMaxPointerAttempts(writers))
	}
	managers := []*service.AuditIndexService{newManager(), newManager()}

	ctx := context.Background()
	var wg sync.WaitGroup
	errCh := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := managers[i%len(managers)]
			record := domain.NewInvoiceRecord(fmt.Sprintf("INV-%d", i), "0xPayee", float64(i+1), "SUI", "paid", "", 1700000000000+int64(i))
			if _, err := m.StoreAuditRecord(ctx, record); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("store failed: %v", err)
	}

	for _, m := range managers {
		records, err := m.GetAllAuditRecords(ctx)
		require.NoError(t, err)
		assert.Len(t, records, writers)
	}
}
