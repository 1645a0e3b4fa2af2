package cli

import (
	"os"
	"path/filepath"
	"testing"

	"file-ingest/internal/domain"
	"file-ingest/internal/usecase/ingest"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestLoadSelectionSplitsAcceptedAndRejected(t *testing.T) {
	dir := t.TempDir()
	limits := ingest.DefaultLimits()
	limits.MaxSizeBytes = 1024

	good := writeFile(t, dir, "a.pdf", 512)
	big := writeFile(t, dir, "big.pdf", 2048)
	wrong := writeFile(t, dir, "movie.mp4", 10)

	event, err := loadSelection([]string{good, big, wrong}, limits)
	require.NoError(t, err)

	require.Len(t, event.Proposed, 1)
	require.Equal(t, "a.pdf", event.Proposed[0].Name)
	require.Equal(t, "application/pdf", event.Proposed[0].ContentType)
	require.Equal(t, int64(512), event.Proposed[0].Size)

	require.Len(t, event.Rejected, 2)
	require.Equal(t, "big.pdf", event.Rejected[0].Name)
	require.Equal(t, []domain.ViolationCode{domain.ViolationSizeExceeded}, event.Rejected[0].Violations)
	require.Equal(t, "movie.mp4", event.Rejected[1].Name)
	require.Equal(t, []domain.ViolationCode{domain.ViolationTypeUnsupported}, event.Rejected[1].Violations)
}

func TestLoadSelectionMissingFile(t *testing.T) {
	_, err := loadSelection([]string{filepath.Join(t.TempDir(), "nope.pdf")}, ingest.DefaultLimits())
	require.Error(t, err)
}

func TestContentTypeFor(t *testing.T) {
	require.Equal(t, "application/pdf", contentTypeFor("a.pdf"))
	require.Equal(t, "image/png", contentTypeFor("photo.PNG"))
	require.Equal(t, domain.ContentTypeBinary, contentTypeFor("mystery"))
}
