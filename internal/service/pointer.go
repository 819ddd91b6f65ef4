package service

import (
	"context"
	"errors"
	"fmt"

	"payzoll-audit/internal/core/domain"
	"payzoll-audit/internal/core/ports"
	"payzoll-audit/pkg/apperror"

	"github.com/rs/zerolog"
)

// TieredPointer reads and moves the index pointer across a primary tier and a
// local fallback tier. The fallback is only consulted when the primary fails,
// never when it answers "empty".
type TieredPointer struct {
	primary  ports.PointerStore // nil when no backend is configured
	fallback ports.PointerStore
	log      zerolog.Logger
}

// NewTieredPointer creates a TieredPointer. primary may be nil, in which case
// fallback is the only tier and is updated by compare-and-swap.
func NewTieredPointer(primary, fallback ports.PointerStore, log zerolog.Logger) *TieredPointer {
	return &TieredPointer{primary: primary, fallback: fallback, log: log}
}

// Resolve returns the current index blob ID ("" when none exists yet) and the
// tier that answered.
func (p *TieredPointer) Resolve(ctx context.Context) (string, string, error) {
	if p.primary == nil {
		id, err := p.fallback.Resolve(ctx)
		if err != nil {
			return "", "", unavailable(err)
		}
		return id, p.fallback.Name(), nil
	}

	id, primaryErr := p.primary.Resolve(ctx)
	if primaryErr == nil {
		return id, p.primary.Name(), nil
	}
	p.log.Warn().Err(primaryErr).Str("tier", p.primary.Name()).Msg("pointer: primary resolve failed, trying fallback")

	id, err := p.fallback.Resolve(ctx)
	if err != nil {
		return "", "", unavailable(errors.Join(primaryErr, err))
	}
	if id != "" {
		if err := p.primary.Store(ctx, id); err != nil {
			p.log.Debug().Err(err).Str("blob_id", id).Msg("pointer: could not propagate fallback value to primary")
		} else {
			p.log.Info().Str("blob_id", id).Msg("pointer: propagated fallback value to primary")
		}
	}
	return id, p.fallback.Name(), nil
}

// Update moves the pointer from expected to next. A PTR_002 conflict from the
// primary is returned as is so the caller can re-merge and retry; any other
// primary failure falls back to an unconditional local write.
func (p *TieredPointer) Update(ctx context.Context, expected, next string) (string, error) {
	if p.primary == nil {
		if err := p.fallback.CompareAndSwap(ctx, expected, next); err != nil {
			if apperror.HasCode(err, apperror.CodePointerConflict) {
				return "", err
			}
			return "", unavailable(err)
		}
		return p.fallback.Name(), nil
	}

	primaryErr := p.primary.CompareAndSwap(ctx, expected, next)
	switch {
	case primaryErr == nil:
		p.mirror(ctx, next)
		return p.primary.Name(), nil
	case apperror.HasCode(primaryErr, apperror.CodePointerConflict):
		return "", primaryErr
	}
	p.log.Warn().Err(primaryErr).Str("blob_id", next).Msg("pointer: primary update failed, writing fallback")

	if err := p.fallback.Store(ctx, next); err != nil {
		return "", unavailable(errors.Join(primaryErr, err))
	}
	return p.fallback.Name(), nil
}

// Force points both tiers at next regardless of their current value.
func (p *TieredPointer) Force(ctx context.Context, next string) (string, error) {
	if p.primary != nil {
		primaryErr := p.primary.Store(ctx, next)
		if primaryErr == nil {
			p.mirror(ctx, next)
			return p.primary.Name(), nil
		}
		p.log.Warn().Err(primaryErr).Msg("pointer: primary forced write failed, writing fallback")
		if err := p.fallback.Store(ctx, next); err != nil {
			return "", unavailable(errors.Join(primaryErr, err))
		}
		return p.fallback.Name(), nil
	}

	if err := p.fallback.Store(ctx, next); err != nil {
		return "", unavailable(err)
	}
	return p.fallback.Name(), nil
}

// mirror keeps the fallback close to the primary so degraded mode starts from
// a recent index.
func (p *TieredPointer) mirror(ctx context.Context, blobID string) {
	if err := p.fallback.Store(ctx, blobID); err != nil {
		p.log.Debug().Err(err).Str("tier", p.fallback.Name()).Msg("pointer: fallback mirror failed")
	}
}

func unavailable(err error) error {
	if appErr, ok := err.(*apperror.AppError); ok && appErr.Code == apperror.CodePointerUnavailable {
		return err
	}
	return apperror.ErrPointerUnavailable(err)
}

// PointerServiceImpl implements ports.PointerService: the server side of the
// primary tier, backed by a durable repository.
type PointerServiceImpl struct {
	repo ports.PointerRepository
	slot string
	log  zerolog.Logger
}

// NewPointerService creates a pointer service for the audit index slot.
func NewPointerService(repo ports.PointerRepository, log zerolog.Logger) *PointerServiceImpl {
	return &PointerServiceImpl{repo: repo, slot: domain.AuditIndexSlot, log: log}
}

// Get returns the current pointer; STO_002 when it has never been set.
func (s *PointerServiceImpl) Get(ctx context.Context) (*domain.IndexPointer, error) {
	p, err := s.repo.Get(ctx, s.slot)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get pointer: %w", err))
	}
	if p == nil {
		return nil, apperror.ErrNotFound("Audit index pointer")
	}
	return p, nil
}

// Update moves the pointer to blobID. With expected set the move is a
// compare-and-swap; without it the write is forced.
func (s *PointerServiceImpl) Update(ctx context.Context, blobID string, expected *string) (*domain.IndexPointer, error) {
	if blobID == "" {
		return nil, apperror.Validation("blobId is required")
	}

	var (
		p   *domain.IndexPointer
		err error
	)
	if expected != nil {
		p, err = s.repo.CompareAndSwap(ctx, s.slot, *expected, blobID)
	} else {
		p, err = s.repo.Set(ctx, s.slot, blobID)
	}
	if err != nil {
		if apperror.HasCode(err, apperror.CodePointerConflict) {
			return nil, err
		}
		return nil, apperror.InternalError(fmt.Errorf("update pointer: %w", err))
	}

	s.log.Info().
		Str("blob_id", p.BlobID).
		Int64("version", p.Version).
		Bool("forced", expected == nil).
		Msg("index pointer moved")
	return p, nil
}

// History returns recent pointer moves, newest first.
func (s *PointerServiceImpl) History(ctx context.Context, limit int) ([]domain.PointerMove, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	moves, err := s.repo.History(ctx, s.slot, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("pointer history: %w", err))
	}
	if moves == nil {
		moves = []domain.PointerMove{}
	}
	return moves, nil
}

// RepoPointerStore exposes one repository slot as a pointer tier, for a
// process that owns the database instead of reaching it over REST.
type RepoPointerStore struct {
	repo ports.PointerRepository
	slot string
}

// NewRepoPointerStore creates a pointer tier over the audit index slot of repo.
func NewRepoPointerStore(repo ports.PointerRepository) *RepoPointerStore {
	return &RepoPointerStore{repo: repo, slot: domain.AuditIndexSlot}
}

func (s *RepoPointerStore) Name() string {
	return "postgres"
}

func (s *RepoPointerStore) Resolve(ctx context.Context) (string, error) {
	p, err := s.repo.Get(ctx, s.slot)
	if err != nil {
		return "", unavailable(err)
	}
	if p == nil {
		return "", nil
	}
	return p.BlobID, nil
}

func (s *RepoPointerStore) CompareAndSwap(ctx context.Context, expected, next string) error {
	_, err := s.repo.CompareAndSwap(ctx, s.slot, expected, next)
	if err != nil && !apperror.HasCode(err, apperror.CodePointerConflict) {
		return unavailable(err)
	}
	return err
}

func (s *RepoPointerStore) Store(ctx context.Context, blobID string) error {
	if _, err := s.repo.Set(ctx, s.slot, blobID); err != nil {
		return unavailable(err)
	}
	return nil
}
