package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotencyRepo(t *testing.T) (*IdempotencyRepo, pgxmock.PgxPoolIface, time.Time) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewIdempotencyRepo(mock)
	repo.now = func() time.Time { return now }
	return repo, mock, now
}

func TestIdempotencyRepo_Set(t *testing.T) {
	repo, mock, now := newIdempotencyRepo(t)
	body := []byte(`{"recordBlobId":"r1"}`)

	mock.ExpectExec("INSERT INTO idempotency_keys").
		WithArgs("device-1:/api/v1/audit/records:k1", body, now, now.Add(24*time.Hour)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Set(context.Background(), "device-1:/api/v1/audit/records:k1", body, 24*time.Hour)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Get(t *testing.T) {
	repo, mock, now := newIdempotencyRepo(t)

	mock.ExpectQuery("SELECT response_json FROM idempotency_keys WHERE key").
		WithArgs("device-1:/api/v1/audit/records:k1", now).
		WillReturnRows(pgxmock.NewRows([]string{"response_json"}).
			AddRow([]byte(`{"recordBlobId":"r1"}`)))

	result, err := repo.Get(context.Background(), "device-1:/api/v1/audit/records:k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"recordBlobId":"r1"}`), result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Get_NotFoundOrExpired(t *testing.T) {
	repo, mock, now := newIdempotencyRepo(t)

	mock.ExpectQuery("SELECT response_json FROM idempotency_keys WHERE key").
		WithArgs("nonexistent-key", now).
		WillReturnRows(pgxmock.NewRows([]string{"response_json"}))

	result, err := repo.Get(context.Background(), "nonexistent-key")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepo_Get_Error(t *testing.T) {
	repo, mock, now := newIdempotencyRepo(t)

	mock.ExpectQuery("SELECT response_json FROM idempotency_keys WHERE key").
		WithArgs("k", now).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "k")
	assert.ErrorContains(t, err, "get idempotency key")
}

func TestIdempotencyRepo_PurgeExpired(t *testing.T) {
	repo, mock, now := newIdempotencyRepo(t)

	mock.ExpectExec("DELETE FROM idempotency_keys WHERE expires_at").
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
