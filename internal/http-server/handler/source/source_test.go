package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"file-ingest/internal/domain"

	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type fakePublisher struct {
	published [][]byte
	keys      []string
	failAfter int
}

func (f *fakePublisher) Send(_ context.Context, _ retry.Strategy, key, value []byte) error {
	if f.failAfter > 0 && len(f.published) >= f.failAfter {
		return errors.New("broker down")
	}
	f.keys = append(f.keys, string(key))
	f.published = append(f.published, value)
	return nil
}

func newHandler(publisher *fakePublisher) *SourceHandler {
	zlog.Init()
	return NewSourceHandler(publisher, retry.Strategy{Attempts: 1}, &zlog.Logger)
}

func complete(t *testing.T, h *SourceHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sources/complete", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CompleteBatch(rec, req)
	return rec
}

func validBody(t *testing.T, sources ...domain.InputSource) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{"sources": sources})
	require.NoError(t, err)
	return string(data)
}

func src(name string) domain.InputSource {
	return domain.InputSource{
		URL:         "http://cdn.local/uploads/" + name,
		SourceType:  domain.SourceTypeObjectStore,
		Filename:    name,
		Size:        42,
		ContentType: "application/pdf",
	}
}

func TestCompleteBatchPublishesEverySource(t *testing.T) {
	publisher := &fakePublisher{}
	rec := complete(t, newHandler(publisher), validBody(t, src("a.pdf"), src("b.png")))

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, []string{"http://cdn.local/uploads/a.pdf", "http://cdn.local/uploads/b.png"}, publisher.keys)

	var resp struct {
		Accepted int `json:"accepted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Accepted)

	var published domain.InputSource
	require.NoError(t, json.Unmarshal(publisher.published[0], &published))
	require.Equal(t, "a.pdf", published.Filename)
	require.Equal(t, domain.SourceTypeObjectStore, published.SourceType)
}

func TestCompleteBatchRejectsEmptySources(t *testing.T) {
	rec := complete(t, newHandler(&fakePublisher{}), `{"sources":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteBatchRejectsInvalidSource(t *testing.T) {
	rec := complete(t, newHandler(&fakePublisher{}), `{"sources":[{"url":"","filename":"a.pdf"}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteBatchPublishFailure(t *testing.T) {
	publisher := &fakePublisher{failAfter: 1}
	rec := complete(t, newHandler(publisher), validBody(t, src("a.pdf"), src("b.png")))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Len(t, publisher.published, 1)
}
