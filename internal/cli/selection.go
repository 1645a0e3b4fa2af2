package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"file-ingest/internal/domain"
	"file-ingest/internal/usecase/ingest"
)

// loadSelection materializes local paths into one selection event, playing
// the role of the file picker: files that break the size or type limits end
// up in Rejected with their violation, everything else in Proposed.
func loadSelection(paths []string, limits ingest.Limits) (ingest.SelectionEvent, error) {
	var event ingest.SelectionEvent

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return ingest.SelectionEvent{}, fmt.Errorf("stat %s: %w", path, err)
		}

		name := filepath.Base(path)
		contentType := contentTypeFor(name)

		if info.Size() > limits.MaxSizeBytes {
			event.Rejected = append(event.Rejected, domain.RejectedFile{
				Name:       name,
				Violations: []domain.ViolationCode{domain.ViolationSizeExceeded},
			})
			continue
		}
		if !limits.Allows(name, contentType) {
			event.Rejected = append(event.Rejected, domain.RejectedFile{
				Name:       name,
				Violations: []domain.ViolationCode{domain.ViolationTypeUnsupported},
			})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return ingest.SelectionEvent{}, fmt.Errorf("read %s: %w", path, err)
		}

		event.Proposed = append(event.Proposed, domain.PendingFile{
			Name:        name,
			Size:        info.Size(),
			ContentType: contentType,
			Data:        data,
		})
	}

	return event, nil
}

func contentTypeFor(name string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		return domain.ContentTypeBinary
	}
	if base, _, found := strings.Cut(contentType, ";"); found {
		return strings.TrimSpace(base)
	}
	return contentType
}
