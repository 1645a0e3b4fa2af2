package credential

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"file-ingest/internal/domain"
	credential_repo "file-ingest/internal/repository/credential"

	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

type fakePresigner struct {
	gotFilename    string
	gotContentType string
	err            error
}

func (f *fakePresigner) PresignUpload(_ context.Context, filename, contentType string) (*domain.UploadCredential, error) {
	f.gotFilename = filename
	f.gotContentType = contentType
	if f.err != nil {
		return nil, f.err
	}
	return &domain.UploadCredential{
		UploadURL: "http://store.local/input-files",
		Fields: domain.FormFields{
			{Name: "key", Value: "uploads/abc.pdf"},
			{Name: "policy", Value: "p"},
		},
		PublicURL: "http://cdn.local/input-files/uploads/abc.pdf",
	}, nil
}

func newHandler(presigner *fakePresigner) *CredentialHandler {
	zlog.Init()
	return NewCredentialHandler(presigner, &zlog.Logger)
}

func issue(t *testing.T, h *CredentialHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/credentials", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.IssueCredential(rec, req)
	return rec
}

func TestIssueCredentialSuccess(t *testing.T) {
	presigner := &fakePresigner{}
	rec := issue(t, newHandler(presigner), `{"filename":"a.pdf","contentType":"application/pdf"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a.pdf", presigner.gotFilename)
	require.Equal(t, "application/pdf", presigner.gotContentType)

	body := rec.Body.String()
	require.Contains(t, body, `"publicUrl":"http://cdn.local/input-files/uploads/abc.pdf"`)
	// Ordered object: key must come before policy.
	require.Less(t, strings.Index(body, `"key"`), strings.Index(body, `"policy"`))
}

func TestIssueCredentialFallsBackToBinary(t *testing.T) {
	presigner := &fakePresigner{}
	rec := issue(t, newHandler(presigner), `{"filename":"mystery"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.ContentTypeBinary, presigner.gotContentType)
}

func TestIssueCredentialRequiresFilename(t *testing.T) {
	rec := issue(t, newHandler(&fakePresigner{}), `{"contentType":"application/pdf"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueCredentialBadJSON(t *testing.T) {
	rec := issue(t, newHandler(&fakePresigner{}), `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueCredentialStorageUnavailable(t *testing.T) {
	presigner := &fakePresigner{err: credential_repo.ErrStorageUnavailable}
	rec := issue(t, newHandler(presigner), `{"filename":"a.pdf"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestIssueCredentialPresignFailure(t *testing.T) {
	presigner := &fakePresigner{err: errors.New("boom")}
	rec := issue(t, newHandler(presigner), `{"filename":"a.pdf"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
