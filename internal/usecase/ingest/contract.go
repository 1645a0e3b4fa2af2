package ingest

import (
	"context"

	"file-ingest/internal/domain"
)

type credentialBroker interface {
	Issue(ctx context.Context, filename, contentType string) (*domain.UploadCredential, error)
}

type objectUploader interface {
	Upload(ctx context.Context, cred *domain.UploadCredential, file domain.PendingFile) error
}
