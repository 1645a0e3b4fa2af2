package credential

import (
	"encoding/json"
	"errors"
	"net/http"

	"file-ingest/internal/domain"
	"file-ingest/internal/http-server/handler/credential/dto"
	credential_repo "file-ingest/internal/repository/credential"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

type CredentialHandler struct {
	presigner credentialPresigner
	validate  *validator.Validate
	logger    *zlog.Zerolog
}

func NewCredentialHandler(presigner credentialPresigner, logger *zlog.Zerolog) *CredentialHandler {
	return &CredentialHandler{
		presigner: presigner,
		validate:  validator.New(),
		logger:    logger,
	}
}

// IssueCredential handles POST /api/v1/credentials. Each call issues a
// fresh single-use presigned POST for one file.
func (h *CredentialHandler) IssueCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode credential request")
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Filename is required", nil)
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = domain.ContentTypeBinary
	}

	cred, err := h.presigner.PresignUpload(ctx, req.Filename, contentType)
	if err != nil {
		h.handlePresignError(w, err, req.Filename)
		return
	}

	response := dto.CredentialResponse{
		PresignedUpload: dto.PresignedUpload{
			URL:    cred.UploadURL,
			Fields: cred.Fields,
		},
		PublicURL: cred.PublicURL,
	}

	h.logger.Info().
		Str("filename", req.Filename).
		Str("content_type", contentType).
		Msg("Credential issued")

	h.respondJSON(w, http.StatusOK, response)
}

func (h *CredentialHandler) handlePresignError(w http.ResponseWriter, err error, filename string) {
	switch {
	case errors.Is(err, credential_repo.ErrStorageUnavailable):
		h.logger.Error().Err(err).Str("filename", filename).Msg("Storage unavailable")
		h.respondError(w, http.StatusBadGateway, "Storage unavailable", nil)
	default:
		h.logger.Error().Err(err).Str("filename", filename).Msg("Presign failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to issue credential", err)
	}
}

func (h *CredentialHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *CredentialHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	h.respondJSON(w, status, response)
}
