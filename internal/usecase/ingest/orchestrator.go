package ingest

import (
	"context"
	"sync"

	"file-ingest/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// Batch owns the queue of pending files and drives one upload run at a time:
// credential fetch, object-store transfer, and source assembly per file, in
// queued order.
type Batch struct {
	broker    credentialBroker
	uploader  objectUploader
	validator *Validator
	logger    *zlog.Zerolog

	mu      sync.Mutex
	files   []domain.PendingFile
	lastErr error
	running bool
}

func NewBatch(broker credentialBroker, uploader objectUploader, limits Limits, logger *zlog.Zerolog) *Batch {
	return &Batch{
		broker:    broker,
		uploader:  uploader,
		validator: NewValidator(limits),
		logger:    logger,
	}
}

// Add screens one selection event. On rejection nothing from the event is
// queued and the error slot is set; on acceptance all proposed files are
// appended in their given order and the slot is cleared. Either way the
// event overwrites whatever error was displayed before.
func (b *Batch) Add(event SelectionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if verr := b.validator.Screen(event, len(b.files)); verr != nil {
		b.logger.Warn().Str("code", string(verr.Code)).Msg("Selection rejected")
		b.lastErr = verr
		return verr
	}

	b.files = append(b.files, event.Proposed...)
	b.lastErr = nil
	return nil
}

// Remove drops the queued file at position i, preserving the relative order
// of the remainder, and clears the displayed error. Out-of-range positions
// are ignored.
func (b *Batch) Remove(i int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i < 0 || i >= len(b.files) {
		return
	}
	b.files = append(b.files[:i], b.files[i+1:]...)
	b.lastErr = nil
}

func (b *Batch) Files() []domain.PendingFile {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.PendingFile, len(b.files))
	copy(out, b.files)
	return out
}

func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.files)
}

// LastError returns the currently displayed error: a *ValidationError,
// *CredentialError, *TransferError, the context error that interrupted a
// run, or nil when nothing is displayed.
func (b *Batch) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Run uploads every queued file strictly in order. Delivery is all or
// nothing: on full success it returns the ordered sources and empties the
// queue; on the first per-file failure it stops, returns that error, keeps
// the failed and not-yet-attempted files queued, and reports none of the
// uploads that already went through (their stored objects are not rolled
// back). A second invocation while a run is in progress returns
// ErrRunInProgress and touches nothing. Cancellation is honored between
// files, never mid-transfer.
func (b *Batch) Run(ctx context.Context) ([]domain.InputSource, error) {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil, ErrRunInProgress
	}
	b.running = true
	snapshot := make([]domain.PendingFile, len(b.files))
	copy(snapshot, b.files)
	b.mu.Unlock()

	sources := make([]domain.InputSource, 0, len(snapshot))
	for i, file := range snapshot {
		if err := ctx.Err(); err != nil {
			return nil, b.fail(snapshot, i, err)
		}

		cred, err := b.broker.Issue(ctx, file.Name, file.ContentType)
		if err != nil {
			b.logger.Error().Err(err).Str("filename", file.Name).Msg("Credential request failed")
			return nil, b.fail(snapshot, i, &CredentialError{Filename: file.Name, Err: err})
		}

		if err := ctx.Err(); err != nil {
			return nil, b.fail(snapshot, i, err)
		}

		if err := b.uploader.Upload(ctx, cred, file); err != nil {
			b.logger.Error().Err(err).Str("filename", file.Name).Msg("Transfer failed")
			return nil, b.fail(snapshot, i, &TransferError{Filename: file.Name, Err: err})
		}

		sources = append(sources, assembleSource(cred.PublicURL, file))
		b.logger.Info().
			Str("filename", file.Name).
			Str("url", cred.PublicURL).
			Msg("File uploaded")
	}

	b.mu.Lock()
	if n := len(snapshot); n <= len(b.files) {
		b.files = b.files[n:]
	} else {
		b.files = nil
	}
	b.lastErr = nil
	b.running = false
	b.mu.Unlock()

	b.logger.Info().Int("sources", len(sources)).Msg("Batch completed")
	return sources, nil
}

// fail retains the failed file and everything after it for a later retry,
// drops the already-uploaded prefix, and surfaces err in the slot.
func (b *Batch) fail(snapshot []domain.PendingFile, i int, err error) error {
	b.mu.Lock()
	var appended []domain.PendingFile
	if n := len(snapshot); n < len(b.files) {
		appended = b.files[n:]
	}
	b.files = append(snapshot[i:], appended...)
	b.lastErr = err
	b.running = false
	b.mu.Unlock()
	return err
}
