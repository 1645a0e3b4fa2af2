package ingest

import (
	"fmt"
	"testing"

	"file-ingest/internal/domain"

	"github.com/stretchr/testify/require"
)

func pending(name string, size int64) domain.PendingFile {
	return domain.PendingFile{
		Name:        name,
		Size:        size,
		ContentType: "application/pdf",
		Data:        []byte("payload"),
	}
}

func TestScreenAcceptsValidEvent(t *testing.T) {
	v := NewValidator(DefaultLimits())

	event := SelectionEvent{
		Proposed: []domain.PendingFile{pending("a.pdf", 2<<20), pending("b.pdf", 1<<20)},
	}

	require.Nil(t, v.Screen(event, 0))
	require.Nil(t, v.Screen(event, 3))
}

func TestScreenRejectsWholeEventOnFirstViolation(t *testing.T) {
	tests := []struct {
		name       string
		violations []domain.ViolationCode
		wantCode   domain.ViolationCode
	}{
		{"oversized", []domain.ViolationCode{domain.ViolationSizeExceeded}, domain.ViolationSizeExceeded},
		{"bad type", []domain.ViolationCode{domain.ViolationTypeUnsupported}, domain.ViolationTypeUnsupported},
		{"only first violation counts", []domain.ViolationCode{domain.ViolationSizeExceeded, domain.ViolationTypeUnsupported}, domain.ViolationSizeExceeded},
		{"unknown violation", []domain.ViolationCode{"SOMETHING_ELSE"}, domain.ViolationRejectedOther},
		{"no violation reported", nil, domain.ViolationRejectedOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(DefaultLimits())

			event := SelectionEvent{
				Proposed: []domain.PendingFile{pending("fine.pdf", 1024)},
				Rejected: []domain.RejectedFile{{Name: "bad.bin", Violations: tt.violations}},
			}

			verr := v.Screen(event, 0)
			require.NotNil(t, verr)
			require.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

func TestScreenRejectsCountOverflow(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxFiles = 3
	v := NewValidator(limits)

	event := SelectionEvent{
		Proposed: []domain.PendingFile{pending("a.pdf", 1), pending("b.pdf", 1)},
	}

	require.Nil(t, v.Screen(event, 1))

	verr := v.Screen(event, 2)
	require.NotNil(t, verr)
	require.Equal(t, domain.ViolationCountExceeded, verr.Code)
}

func TestLimitsAllows(t *testing.T) {
	limits := DefaultLimits()

	require.True(t, limits.Allows("photo.png", "image/png"))
	require.True(t, limits.Allows("doc.pdf", "application/pdf"))
	require.True(t, limits.Allows("notes.md", "text/markdown"))
	require.False(t, limits.Allows("movie.mp4", "video/mp4"))

	limits.AllowedTypes = []string{".log"}
	require.True(t, limits.Allows("server.LOG", "text/plain"))
	require.False(t, limits.Allows("server.txt", "text/plain"))
}

func TestScreenErrorMessageNamesTheFile(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxSizeBytes = 10 << 20
	v := NewValidator(limits)

	event := SelectionEvent{
		Rejected: []domain.RejectedFile{{Name: "huge.pdf", Violations: []domain.ViolationCode{domain.ViolationSizeExceeded}}},
	}

	verr := v.Screen(event, 0)
	require.NotNil(t, verr)
	require.Equal(t, fmt.Sprintf("File %q is too large (max 10 MB)", "huge.pdf"), verr.Message)
}
