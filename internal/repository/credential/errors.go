package credential

import "errors"

var (
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrPresignFailed      = errors.New("presign failed")
)
