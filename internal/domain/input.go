package domain

type PendingFile struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

type SourceType string

const (
	SourceTypeObjectStore SourceType = "object_store"
)

// InputSource is created only after a confirmed successful upload and is
// immutable afterwards.
type InputSource struct {
	URL         string     `json:"url" validate:"required,url"`
	SourceType  SourceType `json:"sourceType" validate:"required"`
	Filename    string     `json:"filename" validate:"required"`
	Size        int64      `json:"size" validate:"gte=0"`
	ContentType string     `json:"contentType"`
}

// UploadCredential is single-use: consumed by exactly one transfer, never
// stored.
type UploadCredential struct {
	UploadURL string
	Fields    FormFields
	PublicURL string
}

type ViolationCode string

const (
	ViolationSizeExceeded    ViolationCode = "SIZE_EXCEEDED"
	ViolationTypeUnsupported ViolationCode = "TYPE_UNSUPPORTED"
	ViolationCountExceeded   ViolationCode = "COUNT_EXCEEDED"
	ViolationRejectedOther   ViolationCode = "REJECTED_OTHER"
)

// RejectedFile carries the violations reported by the selection mechanism
// for a file it refused to materialize.
type RejectedFile struct {
	Name       string
	Violations []ViolationCode
}

const (
	DefaultMaxFiles  = 5
	DefaultMaxSizeMB = 50
)

var DefaultAllowedTypes = []string{
	"image/*",
	"application/pdf",
	"text/plain",
	"text/markdown",
	"application/json",
	"text/csv",
}

const (
	ContentTypeBinary = "application/octet-stream"
)

const (
	KafkaTopicSources = "input-sources"
	KafkaGroupID      = "input-source-consumers"
)

const (
	PathPrefixUploads = "uploads/"
)
