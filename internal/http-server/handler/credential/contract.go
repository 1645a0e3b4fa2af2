package credential

import (
	"context"

	"file-ingest/internal/domain"
)

type credentialPresigner interface {
	PresignUpload(ctx context.Context, filename, contentType string) (*domain.UploadCredential, error)
}
