package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"payzoll-audit/internal/core/domain"
	"payzoll-audit/internal/core/ports"
	"payzoll-audit/pkg/apperror"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Pointer is the index pointer as the manager sees it. TieredPointer
// implements it.
type Pointer interface {
	Resolve(ctx context.Context) (blobID, tier string, err error)
	Update(ctx context.Context, expected, next string) (tier string, err error)
	Force(ctx context.Context, next string) (tier string, err error)
}

// MetricsRecorder receives audit index events. Optional.
type MetricsRecorder interface {
	RecordStored(recordType domain.RecordType)
	RecordPointerUpdate(tier, outcome string)
	RecordFetchFailure()
	SetIndexSize(n int)
}

// Pointer update outcomes reported to MetricsRecorder.
const (
	OutcomeUpdated     = "updated"
	OutcomeConflict    = "conflict"
	OutcomeUnavailable = "unavailable"
)

// AuditIndexService implements ports.AuditIndexService: it writes immutable
// record blobs, keeps an index document listing them and moves the pointer
// to each new index version.
type AuditIndexService struct {
	blobs   ports.BlobStore
	pointer Pointer
	log     zerolog.Logger
	metrics MetricsRecorder

	recordEpochs     int
	indexEpochs      int
	maxAttempts      int
	fetchConcurrency int
	defaultChain     string
	now              func() time.Time

	mu    sync.Mutex
	cache *domain.IndexDocument // last index this process wrote; never authoritative
}

// Option configures an AuditIndexService.
type Option func(*AuditIndexService)

// WithEpochs sets how long record and index blobs are retained.
func WithEpochs(record, index int) Option {
	return func(s *AuditIndexService) {
		s.recordEpochs = record
		s.indexEpochs = index
	}
}

// WithMaxPointerAttempts bounds the re-merge loop on pointer conflicts.
func WithMaxPointerAttempts(n int) Option {
	return func(s *AuditIndexService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithFetchConcurrency bounds parallel record fetches.
func WithFetchConcurrency(n int) Option {
	return func(s *AuditIndexService) {
		if n > 0 {
			s.fetchConcurrency = n
		}
	}
}

// WithDefaultChain sets the chain used when a payment input names none.
func WithDefaultChain(chain string) Option {
	return func(s *AuditIndexService) { s.defaultChain = chain }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *AuditIndexService) { s.now = now }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *AuditIndexService) { s.metrics = m }
}

// NewAuditIndexService creates the audit index manager with an empty cache.
func NewAuditIndexService(blobs ports.BlobStore, pointer Pointer, log zerolog.Logger, opts ...Option) *AuditIndexService {
	s := &AuditIndexService{
		blobs:            blobs,
		pointer:          pointer,
		log:              log,
		recordEpochs:     10,
		indexEpochs:      20,
		maxAttempts:      3,
		fetchConcurrency: 8,
		defaultChain:     "SUI",
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = domain.NewIndexDocument(0)
	return s
}

// StoreAuditRecord writes record and links it into the index. The record blob
// is written first; a failure after that leaves it orphaned. A pointer that
// cannot be moved is reported in the receipt, not as an error.
func (s *AuditIndexService) StoreAuditRecord(ctx context.Context, record domain.AuditRecord) (*ports.StoreReceipt, error) {
	if err := record.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	data, err := domain.EncodeRecord(record)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode record: %w", err))
	}

	recordBlobID, err := s.blobs.Put(ctx, data, s.recordEpochs)
	if err != nil {
		return nil, err
	}
	log := s.log.With().
		Str("record_id", record.RecordID).
		Str("record_type", string(record.Type())).
		Str("record_blob_id", recordBlobID).
		Logger()

	entry := domain.EntryFor(recordBlobID, record)
	receipt := &ports.StoreReceipt{RecordBlobID: recordBlobID}

	for attempt := 1; ; attempt++ {
		current, _, resolveErr := s.pointer.Resolve(ctx)
		if resolveErr != nil {
			log.Warn().Err(resolveErr).Msg("index pointer unresolved, indexing from local copy")
		}

		doc, err := s.reconcile(ctx, current, log)
		if err != nil {
			log.Error().Err(err).Str("index_blob_id", current).Msg("remote index is not a readable index, refusing to replace it; record blob is orphaned")
			return nil, err
		}
		doc.Append(entry)
		doc.LastUpdated = s.now().UnixMilli()

		indexBlobID, err := s.putIndex(ctx, doc)
		if err != nil {
			log.Error().Err(err).Msg("index write failed, record blob is orphaned")
			return nil, err
		}
		s.setCache(doc)
		receipt.IndexBlobID = indexBlobID

		if resolveErr != nil {
			s.recordPointer("", OutcomeUnavailable)
			break
		}

		tier, err := s.pointer.Update(ctx, current, indexBlobID)
		if err == nil {
			receipt.PointerUpdated = true
			receipt.PointerTier = tier
			s.recordPointer(tier, OutcomeUpdated)
			break
		}
		if apperror.HasCode(err, apperror.CodePointerConflict) {
			s.recordPointer("", OutcomeConflict)
			if attempt < s.maxAttempts {
				log.Info().Int("attempt", attempt).Msg("index pointer moved concurrently, re-merging")
				continue
			}
			log.Warn().Int("attempts", attempt).Str("index_blob_id", indexBlobID).Msg("index pointer kept moving, leaving it for the next write")
			break
		}
		log.Warn().Err(err).Str("index_blob_id", indexBlobID).Msg("index pointer not updated")
		s.recordPointer("", OutcomeUnavailable)
		break
	}

	if s.metrics != nil {
		s.metrics.RecordStored(record.Type())
	}
	log.Info().
		Str("index_blob_id", receipt.IndexBlobID).
		Bool("pointer_updated", receipt.PointerUpdated).
		Msg("audit record stored")
	return receipt, nil
}

// reconcile returns a private copy of the cache with the remote index at
// current merged in. A remote index that cannot be fetched right now is
// skipped. One that was fetched but is oversized or undecodable is an
// error: writing over it would drop every entry it holds.
func (s *AuditIndexService) reconcile(ctx context.Context, current string, log zerolog.Logger) (*domain.IndexDocument, error) {
	doc := s.cachedCopy()
	if current == "" {
		return doc, nil
	}
	remote, err := s.fetchIndex(ctx, current)
	if apperror.HasCode(err, apperror.CodeProtocol) {
		return nil, err
	}
	if err != nil {
		log.Warn().Err(err).Str("index_blob_id", current).Msg("remote index unreadable, continuing with local records only")
		return doc, nil
	}
	if added := doc.Merge(remote.Records); added > 0 {
		log.Debug().Int("added", added).Msg("merged remote index entries")
	}
	return doc, nil
}

// GetAuditRecord fetches and decodes one record blob.
func (s *AuditIndexService) GetAuditRecord(ctx context.Context, blobID string) (*domain.AuditRecord, error) {
	if blobID == "" {
		return nil, apperror.Validation("blobId is required")
	}
	data, err := s.blobs.Get(ctx, blobID)
	if err != nil {
		return nil, err
	}
	record, err := domain.DecodeRecord(data)
	if err != nil {
		return nil, apperror.ErrProtocol(fmt.Sprintf("blob %s is not an audit record: %v", blobID, err))
	}
	return &record, nil
}

// GetAllAuditRecords returns every indexed record in index order. No pointer
// yet means no records. Any record that cannot be fetched fails the call.
func (s *AuditIndexService) GetAllAuditRecords(ctx context.Context) ([]domain.AuditRecord, error) {
	doc, err := s.currentIndex(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.Records) == 0 {
		return []domain.AuditRecord{}, nil
	}

	records := make([]domain.AuditRecord, len(doc.Records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchConcurrency)
	for i, entry := range doc.Records {
		g.Go(func() error {
			r, err := s.GetAuditRecord(gctx, entry.BlobID)
			if err != nil {
				return fmt.Errorf("fetch record blob %s: %w", entry.BlobID, err)
			}
			records[i] = *r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if s.metrics != nil {
			s.metrics.RecordFetchFailure()
		}
		s.log.Error().Err(err).Int("indexed", len(doc.Records)).Msg("audit record fetch failed")
		return nil, err
	}
	return records, nil
}

// ListIndexEntries returns index entries, optionally of one type, newest first,
// without fetching the records themselves.
func (s *AuditIndexService) ListIndexEntries(ctx context.Context, recordType domain.RecordType) ([]domain.IndexEntry, error) {
	if recordType != "" && !recordType.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown record type %q", recordType))
	}
	doc, err := s.currentIndex(ctx)
	if err != nil {
		return nil, err
	}
	entries := doc.Filter(recordType)
	domain.SortEntriesNewestFirst(entries)
	return entries, nil
}

// RecoverAuditIndex replaces the index with an empty one and forces the
// pointer to it. Previously indexed records stay in the blob store but are no
// longer listed.
func (s *AuditIndexService) RecoverAuditIndex(ctx context.Context) (string, error) {
	doc := domain.NewIndexDocument(s.now().UnixMilli())
	indexBlobID, err := s.putIndex(ctx, doc)
	if err != nil {
		return "", err
	}

	tier, err := s.pointer.Force(ctx, indexBlobID)
	if err != nil {
		return "", err
	}
	s.setCache(doc)

	s.log.Warn().
		Str("index_blob_id", indexBlobID).
		Str("tier", tier).
		Msg("audit index recovered, prior entries are no longer indexed")
	return indexBlobID, nil
}

// StorePaymentRecord builds and stores the record of one P2P payment step.
func (s *AuditIndexService) StorePaymentRecord(ctx context.Context, in ports.PaymentRecordInput) (*ports.StoreReceipt, error) {
	if in.PaymentID == "" {
		return nil, apperror.Validation("paymentId is required")
	}
	if !in.Action.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown payment action %q", in.Action))
	}
	chain := in.Chain
	if chain == "" {
		chain = s.defaultChain
	}

	record := domain.NewPaymentRecord(domain.PaymentPayload{
		From:            in.From,
		To:              in.To,
		PaymentID:       in.PaymentID,
		PaymentObjectID: in.PaymentObjectID,
		Action:          in.Action,
	}, in.Amount, chain, in.TxHash, s.now().UnixMilli())

	return s.StoreAuditRecord(ctx, record)
}

// UpdatePaymentObjectID stores a copy of the newest send record of paymentID
// with the on-chain object ID filled in. It reports false, writing nothing,
// when no such record exists.
func (s *AuditIndexService) UpdatePaymentObjectID(ctx context.Context, paymentID, paymentObjectID string) (bool, error) {
	if paymentID == "" || paymentObjectID == "" {
		return false, apperror.Validation("paymentId and paymentObjectId are required")
	}

	entries, err := s.ListIndexEntries(ctx, domain.RecordTypePayment)
	if err != nil {
		return false, err
	}

	// Entries are newest first; the first matching send record wins.
	for _, e := range entries {
		record, err := s.GetAuditRecord(ctx, e.BlobID)
		if err != nil {
			return false, err
		}
		p, ok := record.Payment()
		if !ok || p.PaymentID != paymentID || p.Action != domain.PaymentActionSend {
			continue
		}

		updated, _ := record.WithPaymentObjectID(paymentObjectID, s.now().UnixMilli())
		if _, err := s.StoreAuditRecord(ctx, updated); err != nil {
			return false, err
		}
		s.log.Info().
			Str("payment_id", paymentID).
			Str("source_blob_id", e.BlobID).
			Msg("payment object ID recorded")
		return true, nil
	}
	return false, nil
}

// currentIndex resolves the pointer and reads the index it names, deduplicated.
func (s *AuditIndexService) currentIndex(ctx context.Context) (*domain.IndexDocument, error) {
	current, _, err := s.pointer.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if current == "" {
		return domain.NewIndexDocument(0), nil
	}
	doc, err := s.fetchIndex(ctx, current)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SetIndexSize(len(doc.Records))
	}
	return doc, nil
}

// ReadIndex fetches the index document stored at blobID, whether or not the
// pointer names it.
func (s *AuditIndexService) ReadIndex(ctx context.Context, blobID string) (*domain.IndexDocument, error) {
	if blobID == "" {
		return nil, apperror.Validation("blobId is required")
	}
	return s.fetchIndex(ctx, blobID)
}

func (s *AuditIndexService) fetchIndex(ctx context.Context, blobID string) (*domain.IndexDocument, error) {
	data, err := s.blobs.Get(ctx, blobID)
	if err != nil {
		return nil, err
	}
	doc, err := domain.DecodeIndex(data)
	if err != nil {
		return nil, apperror.ErrProtocol(fmt.Sprintf("blob %s is not an index document: %v", blobID, err))
	}
	doc.Dedup()
	return doc, nil
}

func (s *AuditIndexService) putIndex(ctx context.Context, doc *domain.IndexDocument) (string, error) {
	data, err := domain.EncodeIndex(doc)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("encode index: %w", err))
	}
	return s.blobs.Put(ctx, data, s.indexEpochs)
}

func (s *AuditIndexService) cachedCopy() *domain.IndexDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Clone()
}

func (s *AuditIndexService) setCache(doc *domain.IndexDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = doc.Clone()
}

func (s *AuditIndexService) recordPointer(tier, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordPointerUpdate(tier, outcome)
	}
}
