package credbroker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"file-ingest/internal/domain"
	credential_dto "file-ingest/internal/http-server/handler/credential/dto"
	source_dto "file-ingest/internal/http-server/handler/source/dto"
)

const (
	credentialsPath = "/api/v1/credentials"
	completePath    = "/api/v1/sources/complete"
)

// Client talks to the ingest backend: one credential per file, plus the
// completion report after a fully delivered batch.
type Client struct {
	baseURL string
	c       *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		c:       &http.Client{},
	}
}

// Issue requests a single-use upload credential. An unknown content type
// falls back to application/octet-stream. Any backend or network error is
// a hard failure; no retry happens here.
func (c *Client) Issue(ctx context.Context, filename, contentType string) (*domain.UploadCredential, error) {
	if contentType == "" {
		contentType = domain.ContentTypeBinary
	}

	reqBody := credential_dto.CredentialRequest{
		Filename:    filename,
		ContentType: contentType,
	}

	var respBody credential_dto.CredentialResponse
	if err := c.post(ctx, credentialsPath, reqBody, &respBody); err != nil {
		return nil, err
	}

	return &domain.UploadCredential{
		UploadURL: respBody.PresignedUpload.URL,
		Fields:    respBody.PresignedUpload.Fields,
		PublicURL: respBody.PublicURL,
	}, nil
}

// Complete reports a fully delivered batch so the backend can hand the
// sources to downstream consumers.
func (c *Client) Complete(ctx context.Context, sources []domain.InputSource) error {
	reqBody := source_dto.CompleteRequest{Sources: sources}
	var respBody source_dto.CompleteResponse
	if err := c.post(ctx, completePath, reqBody, &respBody); err != nil {
		return err
	}
	if respBody.Accepted != len(sources) {
		return fmt.Errorf("backend accepted %d of %d sources", respBody.Accepted, len(sources))
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errBody credential_dto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			return fmt.Errorf("backend responded %s: %s", resp.Status, errBody.Message)
		}
		return fmt.Errorf("backend responded %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
