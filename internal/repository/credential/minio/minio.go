package minio

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"file-ingest/internal/config"
	"file-ingest/internal/domain"
	"file-ingest/internal/repository/credential"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// CredentialRepository issues presigned POST credentials against a MinIO
// or S3-compatible endpoint.
type CredentialRepository struct {
	client  *minio.Client
	cfg     *config.Config
	retries retry.Strategy
	logger  *zlog.Zerolog
}

func NewCredentialRepository(cfg *config.Config, retries retry.Strategy, logger *zlog.Zerolog) (*CredentialRepository, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CredentialRepository{
		client:  client,
		cfg:     cfg,
		retries: retries,
		logger:  logger,
	}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
// Runs once at startup, with the infrastructure retry strategy.
func (r *CredentialRepository) EnsureBucket(ctx context.Context) error {
	err := retry.Do(func() error {
		exists, err := r.client.BucketExists(ctx, r.cfg.Storage.Bucket)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return r.client.MakeBucket(ctx, r.cfg.Storage.Bucket, minio.MakeBucketOptions{})
	}, r.retries)
	if err != nil {
		return fmt.Errorf("%w: %v", credential.ErrStorageUnavailable, err)
	}

	r.logger.Info().Str("bucket", r.cfg.Storage.Bucket).Msg("Bucket ready")
	return nil
}

// PresignUpload issues a single-use POST policy for one object. The key is
// unique per credential, so a credential can never overwrite an earlier
// upload.
func (r *CredentialRepository) PresignUpload(ctx context.Context, filename, contentType string) (*domain.UploadCredential, error) {
	key := domain.PathPrefixUploads + uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(r.cfg.Storage.Bucket); err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrPresignFailed, err)
	}
	if err := policy.SetKey(key); err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrPresignFailed, err)
	}
	if err := policy.SetExpires(time.Now().UTC().Add(r.cfg.Storage.CredentialTTL)); err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrPresignFailed, err)
	}
	if err := policy.SetContentType(contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrPresignFailed, err)
	}
	if err := policy.SetContentLengthRange(1, r.cfg.MaxSizeBytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrPresignFailed, err)
	}

	uploadURL, form, err := r.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", credential.ErrPresignFailed, err)
	}

	r.logger.Info().
		Str("key", key).
		Str("content_type", contentType).
		Msg("Upload credential issued")

	return &domain.UploadCredential{
		UploadURL: uploadURL.String(),
		Fields:    orderedFields(form),
		PublicURL: r.publicURL(key),
	}, nil
}

// orderedFields pins the policy map to a stable order: object key first,
// then the remaining fields sorted by name. Clients replay this order
// verbatim in the multipart body.
func orderedFields(form map[string]string) domain.FormFields {
	fields := make(domain.FormFields, 0, len(form))
	if key, ok := form["key"]; ok {
		fields = append(fields, domain.FormField{Name: "key", Value: key})
	}

	names := make([]string, 0, len(form))
	for name := range form {
		if name != "key" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fields = append(fields, domain.FormField{Name: name, Value: form[name]})
	}
	return fields
}

func (r *CredentialRepository) publicURL(key string) string {
	base := r.cfg.Storage.PublicBaseURL
	if base == "" {
		scheme := "http"
		if r.cfg.Storage.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, r.cfg.Storage.Endpoint, r.cfg.Storage.Bucket)
	}
	return strings.TrimRight(base, "/") + "/" + key
}
