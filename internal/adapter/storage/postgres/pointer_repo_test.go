package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"payzoll-audit/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPointerRepo(t *testing.T) (*PointerRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewPointerRepo(mock)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func TestPointerRepo_Get(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectQuery("SELECT .+ FROM index_pointers WHERE slot").
		WithArgs("audit-index").
		WillReturnRows(pgxmock.NewRows([]string{"slot", "blob_id", "version", "updated_at"}).
			AddRow("audit-index", "idx-3", int64(3), fixedNow))

	p, err := repo.Get(context.Background(), "audit-index")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "idx-3", p.BlobID)
	assert.Equal(t, int64(3), p.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointerRepo_GetEmptySlot(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectQuery("SELECT .+ FROM index_pointers WHERE slot").
		WithArgs("audit-index").
		WillReturnError(pgx.ErrNoRows)

	p, err := repo.Get(context.Background(), "audit-index")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestPointerRepo_GetError(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectQuery("SELECT .+ FROM index_pointers").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "audit-index")
	assert.ErrorContains(t, err, "get index pointer")
}

func TestPointerRepo_CompareAndSwap_Advances(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT blob_id, version FROM index_pointers WHERE slot = .+ FOR UPDATE").
		WithArgs("audit-index").
		WillReturnRows(pgxmock.NewRows([]string{"blob_id", "version"}).AddRow("idx-1", int64(1)))
	mock.ExpectExec("UPDATE index_pointers SET").
		WithArgs("audit-index", "idx-2", int64(2), fixedNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO index_pointer_moves").
		WithArgs(pgxmock.AnyArg(), "audit-index", "idx-1", "idx-2", false, fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	p, err := repo.CompareAndSwap(context.Background(), "audit-index", "idx-1", "idx-2")
	require.NoError(t, err)
	assert.Equal(t, "idx-2", p.BlobID)
	assert.Equal(t, int64(2), p.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointerRepo_CompareAndSwap_FirstWrite(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT blob_id, version FROM index_pointers").
		WithArgs("audit-index").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("INSERT INTO index_pointers .+ ON CONFLICT").
		WithArgs("audit-index", "idx-1", int64(1), fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO index_pointer_moves").
		WithArgs(pgxmock.AnyArg(), "audit-index", "", "idx-1", false, fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	p, err := repo.CompareAndSwap(context.Background(), "audit-index", "", "idx-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointerRepo_CompareAndSwap_Conflict(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT blob_id, version FROM index_pointers").
		WithArgs("audit-index").
		WillReturnRows(pgxmock.NewRows([]string{"blob_id", "version"}).AddRow("idx-9", int64(9)))
	mock.ExpectRollback()

	_, err := repo.CompareAndSwap(context.Background(), "audit-index", "idx-1", "idx-2")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodePointerConflict))
	assert.Contains(t, err.Error(), "idx-9")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointerRepo_CompareAndSwap_ConcurrentFirstWriter(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT blob_id, version FROM index_pointers").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("INSERT INTO index_pointers").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectRollback()

	_, err := repo.CompareAndSwap(context.Background(), "audit-index", "", "idx-1")
	assert.True(t, apperror.HasCode(err, apperror.CodePointerConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointerRepo_SetIsForced(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT blob_id, version FROM index_pointers").
		WithArgs("audit-index").
		WillReturnRows(pgxmock.NewRows([]string{"blob_id", "version"}).AddRow("idx-old", int64(4)))
	mock.ExpectExec("UPDATE index_pointers SET").
		WithArgs("audit-index", "idx-recovered", int64(5), fixedNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO index_pointer_moves").
		WithArgs(pgxmock.AnyArg(), "audit-index", "idx-old", "idx-recovered", true, fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	p, err := repo.Set(context.Background(), "audit-index", "idx-recovered")
	require.NoError(t, err)
	assert.Equal(t, "idx-recovered", p.BlobID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointerRepo_BeginFails(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := repo.Set(context.Background(), "audit-index", "idx")
	assert.ErrorContains(t, err, "begin pointer move")
}

func TestPointerRepo_History(t *testing.T) {
	repo, mock := newTestPointerRepo(t)
	id1, id2 := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT .+ FROM index_pointer_moves WHERE slot .+ ORDER BY created_at DESC LIMIT").
		WithArgs("audit-index", 10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "slot", "prev_blob_id", "blob_id", "forced", "created_at"}).
			AddRow(id2, "audit-index", "idx-1", "idx-2", true, fixedNow).
			AddRow(id1, "audit-index", "", "idx-1", false, fixedNow.Add(-time.Hour)))

	moves, err := repo.History(context.Background(), "audit-index", 10)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, id2, moves[0].ID)
	assert.True(t, moves[0].Forced)
	assert.Equal(t, "idx-1", moves[1].BlobID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointerRepo_HistoryDefaultLimit(t *testing.T) {
	repo, mock := newTestPointerRepo(t)

	mock.ExpectQuery("SELECT .+ FROM index_pointer_moves").
		WithArgs("audit-index", 50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "slot", "prev_blob_id", "blob_id", "forced", "created_at"}))

	moves, err := repo.History(context.Background(), "audit-index", 0)
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS index_pointers").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, Migrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheck(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))

	hc := NewHealthCheck(mock)
	assert.Equal(t, "postgresql", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))
}
