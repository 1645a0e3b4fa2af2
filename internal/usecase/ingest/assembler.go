package ingest

import "file-ingest/internal/domain"

// assembleSource maps a confirmed upload into its persisted descriptor.
// Pure; the source type is always the backend-managed object store.
func assembleSource(publicURL string, file domain.PendingFile) domain.InputSource {
	return domain.InputSource{
		URL:         publicURL,
		SourceType:  domain.SourceTypeObjectStore,
		Filename:    file.Name,
		Size:        file.Size,
		ContentType: file.ContentType,
	}
}
