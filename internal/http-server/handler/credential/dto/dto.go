package dto

import "file-ingest/internal/domain"

type CredentialRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType"`
}

type PresignedUpload struct {
	URL    string            `json:"url"`
	Fields domain.FormFields `json:"fields"`
}

type CredentialResponse struct {
	PresignedUpload PresignedUpload `json:"presignedUpload"`
	PublicURL       string          `json:"publicUrl"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
