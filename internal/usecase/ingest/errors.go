package ingest

import (
	"errors"
	"fmt"

	"file-ingest/internal/domain"
)

var (
	ErrRunInProgress = errors.New("batch run already in progress")
)

// ValidationError rejects a whole selection event before anything is queued.
type ValidationError struct {
	Code    domain.ViolationCode
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CredentialError marks a failed credential request for one file.
type CredentialError struct {
	Filename string
	Err      error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credential request for %q failed: %v", e.Filename, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// TransferError marks a failed object-store transfer for one file, either a
// non-2xx response or a transport failure.
type TransferError struct {
	Filename string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %q failed: %v", e.Filename, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
