package dto

import "file-ingest/internal/domain"

type CompleteRequest struct {
	Sources []domain.InputSource `json:"sources" validate:"required,min=1,dive"`
}

type CompleteResponse struct {
	Accepted int `json:"accepted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
