package minio

import (
	"strings"
	"testing"

	"file-ingest/internal/config"
	"file-ingest/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestOrderedFieldsPutsKeyFirst(t *testing.T) {
	form := map[string]string{
		"x-amz-signature":  "sig",
		"key":              "uploads/abc.pdf",
		"policy":           "p",
		"x-amz-credential": "cred",
	}

	fields := orderedFields(form)

	require.Equal(t, domain.FormFields{
		{Name: "key", Value: "uploads/abc.pdf"},
		{Name: "policy", Value: "p"},
		{Name: "x-amz-credential", Value: "cred"},
		{Name: "x-amz-signature", Value: "sig"},
	}, fields)
}

func TestPublicURL(t *testing.T) {
	r := &CredentialRepository{cfg: &config.Config{
		Storage: config.StorageConfig{
			PublicBaseURL: "http://cdn.local/input-files/",
		},
	}}

	got := r.publicURL("uploads/abc.pdf")
	require.Equal(t, "http://cdn.local/input-files/uploads/abc.pdf", got)
}

func TestPublicURLDerivedFromEndpoint(t *testing.T) {
	r := &CredentialRepository{cfg: &config.Config{
		Storage: config.StorageConfig{
			Endpoint: "localhost:9000",
			Bucket:   "input-files",
		},
	}}

	got := r.publicURL("uploads/abc.pdf")
	require.Equal(t, "http://localhost:9000/input-files/uploads/abc.pdf", got)
	require.True(t, strings.HasPrefix(got, "http://"))
}
