package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"file-ingest/internal/domain"
)

type Limits struct {
	MaxFiles     int
	MaxSizeBytes int64
	AllowedTypes []string
}

func DefaultLimits() Limits {
	return Limits{
		MaxFiles:     domain.DefaultMaxFiles,
		MaxSizeBytes: domain.DefaultMaxSizeMB << 20,
		AllowedTypes: domain.DefaultAllowedTypes,
	}
}

// Allows reports whether a file with the given name and declared content
// type fits the allowed set. Entries like "image/*" match by major type,
// exact entries match the full content type, and entries starting with a
// dot match the filename extension.
func (l Limits) Allows(name, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range l.AllowedTypes {
		switch {
		case strings.HasPrefix(allowed, "."):
			if ext == strings.ToLower(allowed) {
				return true
			}
		case strings.HasSuffix(allowed, "/*"):
			if strings.HasPrefix(contentType, strings.TrimSuffix(allowed, "*")) {
				return true
			}
		default:
			if contentType == allowed {
				return true
			}
		}
	}
	return false
}

// SelectionEvent is one selection or drop: the files the selection
// mechanism materialized plus the entries it already refused.
type SelectionEvent struct {
	Proposed []domain.PendingFile
	Rejected []domain.RejectedFile
}

type Validator struct {
	limits Limits
}

func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Screen checks one selection event against the limits. A non-nil result
// rejects the whole event: none of its files may be queued, valid ones
// included. Only the first violation of the first rejected entry is
// classified.
func (v *Validator) Screen(event SelectionEvent, queued int) *ValidationError {
	if len(event.Rejected) > 0 {
		return v.classify(event.Rejected[0])
	}

	if queued+len(event.Proposed) > v.limits.MaxFiles {
		return &ValidationError{
			Code:    domain.ViolationCountExceeded,
			Message: fmt.Sprintf("Too many files (max %d)", v.limits.MaxFiles),
		}
	}

	return nil
}

func (v *Validator) classify(rejected domain.RejectedFile) *ValidationError {
	var code domain.ViolationCode
	if len(rejected.Violations) > 0 {
		code = rejected.Violations[0]
	}

	switch code {
	case domain.ViolationSizeExceeded:
		return &ValidationError{
			Code:    domain.ViolationSizeExceeded,
			Message: fmt.Sprintf("File %q is too large (max %d MB)", rejected.Name, v.limits.MaxSizeBytes>>20),
		}
	case domain.ViolationTypeUnsupported:
		return &ValidationError{
			Code:    domain.ViolationTypeUnsupported,
			Message: fmt.Sprintf("File %q has an unsupported type", rejected.Name),
		}
	default:
		return &ValidationError{
			Code:    domain.ViolationRejectedOther,
			Message: fmt.Sprintf("File %q was rejected", rejected.Name),
		}
	}
}
