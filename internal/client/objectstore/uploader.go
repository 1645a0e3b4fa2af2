package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"file-ingest/internal/domain"
)

// Uploader POSTs file bytes straight to the credentialed storage endpoint.
// One call per credential; nothing here retries.
type Uploader struct {
	c *http.Client
}

func New() *Uploader {
	return &Uploader{
		c: &http.Client{},
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload builds a multipart form with every credential field in issue
// order, the file payload as the final part, and POSTs it to the
// credential's URL. Success is any 2xx status.
func (u *Uploader) Upload(ctx context.Context, cred *domain.UploadCredential, file domain.PendingFile) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for _, field := range cred.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return fmt.Errorf("write field %q: %w", field.Name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	if file.ContentType != "" {
		header.Set("Content-Type", file.ContentType)
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cred.UploadURL, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.c.Do(req)
	if err != nil {
		return fmt.Errorf("post to object store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("object store responded %s", resp.Status)
	}
	return nil
}
