package source

import (
	"encoding/json"
	"net/http"

	"file-ingest/internal/http-server/handler/source/dto"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type SourceHandler struct {
	publisher sourcePublisher
	retries   retry.Strategy
	validate  *validator.Validate
	logger    *zlog.Zerolog
}

func NewSourceHandler(publisher sourcePublisher, retries retry.Strategy, logger *zlog.Zerolog) *SourceHandler {
	return &SourceHandler{
		publisher: publisher,
		retries:   retries,
		validate:  validator.New(),
		logger:    logger,
	}
}

// CompleteBatch handles POST /api/v1/sources/complete. The client reports
// a fully delivered batch; every source is published to the sources topic
// for downstream consumers. Publishing is all or nothing to match the
// batch contract: the first publish failure fails the whole report.
func (h *SourceHandler) CompleteBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode completion request")
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "At least one valid source is required", nil)
		return
	}

	for _, src := range req.Sources {
		value, err := json.Marshal(src)
		if err != nil {
			h.logger.Error().Err(err).Str("url", src.URL).Msg("Failed to marshal source")
			h.respondError(w, http.StatusInternalServerError, "Failed to publish sources", err)
			return
		}

		if err := h.publisher.Send(ctx, h.retries, []byte(src.URL), value); err != nil {
			h.logger.Error().Err(err).Str("url", src.URL).Msg("Failed to publish source")
			h.respondError(w, http.StatusBadGateway, "Failed to publish sources", nil)
			return
		}
	}

	h.logger.Info().Int("sources", len(req.Sources)).Msg("Batch completion published")
	h.respondJSON(w, http.StatusAccepted, dto.CompleteResponse{Accepted: len(req.Sources)})
}

func (h *SourceHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *SourceHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if err != nil {
		response.Details = err.Error()
	}
	h.respondJSON(w, status, response)
}
