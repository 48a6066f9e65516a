// Package s3preview stores uploaded content in an S3-compatible bucket and
// hands out preview references and presigned URLs for it.
package s3preview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// referenceScheme prefixes every preview reference.
const referenceScheme = "s3://"

// previewable lists the extensions a browser can render inline.
var previewable = map[string]bool{
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Config holds the bucket connection settings.
type Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	// TTL is how long presigned URLs stay valid.
	TTL time.Duration
}

// Store implements the preview generator over an S3 bucket. Content
// handles are object keys inside the bucket.
type Store struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a preview store
func New(cfg Config, logger *slog.Logger) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}
	return &Store{cfg: cfg, logger: logger}
}

func (s *Store) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.cfg.Region)}
	if s.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.AccessKey, s.cfg.SecretKey, ""),
		))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return newS3PresignClient(client), nil
}

// Generate returns the preview reference for an uploaded object. Content
// that a browser cannot render gets no reference.
func (s *Store) Generate(ctx context.Context, contentHandle, extension string) (string, error) {
	key := strings.TrimPrefix(strings.TrimSpace(contentHandle), "/")
	if key == "" {
		return "", nil
	}
	if !previewable[strings.ToLower(strings.TrimPrefix(extension, "."))] {
		s.logger.Debug("no preview for extension", "extension", extension)
		return "", nil
	}
	return referenceScheme + s.cfg.Bucket + "/" + key, nil
}

// PreviewURL turns a preview reference into a short-lived GET URL.
func (s *Store) PreviewURL(ctx context.Context, reference string) (string, error) {
	bucket, key, err := s.parseReference(reference)
	if err != nil {
		return "", err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.TTL))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// PresignUpload reserves a fresh object key and returns it with a
// short-lived PUT URL. The key is the content handle of the upload.
func (s *Store) PresignUpload(ctx context.Context, workspaceID string) (string, string, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	key := storageKey(workspaceID, time.Now().UTC())
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.TTL))
	if err != nil {
		return "", "", fmt.Errorf("presign put: %w", err)
	}
	return key, req.URL, nil
}

func (s *Store) parseReference(reference string) (string, string, error) {
	rest, ok := strings.CutPrefix(reference, referenceScheme)
	if !ok {
		return "", "", fmt.Errorf("not a preview reference: %q", reference)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed preview reference: %q", reference)
	}
	return bucket, key, nil
}

func storageKey(workspaceID string, d time.Time) string {
	return fmt.Sprintf("workspaces/%s/%d/%02d/%02d/%s", workspaceID, d.Year(), d.Month(), d.Day(), uuid.New())
}
