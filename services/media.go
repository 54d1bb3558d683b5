package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rs/zerolog/log"
)

// MaxMediaSize bounds a single uploaded image.
const MaxMediaSize = 10 << 20

// AllowedMediaTypes maps accepted image content types to file extensions.
var AllowedMediaTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaStore uploads images for content sections and projects to an
// S3-compatible bucket and returns their public URLs.
type MediaStore struct {
	client    objectPutter
	bucket    string
	publicURL string
}

// NewMediaStore reads STORAGE_* settings from c. STORAGE_ENDPOINT points the
// client at an S3-compatible service such as Supabase Storage.
func NewMediaStore(ctx context.Context, c map[string]string) (*MediaStore, error) {
	bucket := config.GetString(c, "STORAGE_BUCKET", "")
	if bucket == "" {
		return nil, errs.NewConfigMissingError("STORAGE_BUCKET")
	}
	publicURL := config.GetString(c, "STORAGE_PUBLIC_URL", "")
	if publicURL == "" {
		return nil, errs.NewConfigMissingError("STORAGE_PUBLIC_URL")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.GetString(c, "STORAGE_REGION", "us-east-1")),
	}
	if key := config.GetString(c, "STORAGE_ACCESS_KEY_ID", ""); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, config.GetString(c, "STORAGE_SECRET_ACCESS_KEY", ""), ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	endpoint := config.GetString(c, "STORAGE_ENDPOINT", "")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return newMediaStore(client, bucket, publicURL), nil
}

func newMediaStore(client objectPutter, bucket, publicURL string) *MediaStore {
	return &MediaStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload stores body under folder with a generated name and returns its public URL.
func (m *MediaStore) Upload(ctx context.Context, folder, contentType string, body io.Reader, size int64) (string, error) {
	ext, ok := AllowedMediaTypes[contentType]
	if !ok {
		return "", errs.NewUnsupportedMediaTypeError(contentType, allowedTypes())
	}
	if size > MaxMediaSize {
		return "", errs.NewMaxBodySizeExceededError(MaxMediaSize)
	}

	key := path.Join(sanitizeFolder(folder), uuid.NewString()+ext)
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", errs.NewStorageUploadError(key, err)
	}

	log.Info().Str("bucket", m.bucket).Str("key", key).Int64("size", size).Msg("Uploaded media")
	return m.publicURL + "/" + key, nil
}

func sanitizeFolder(folder string) string {
	folder = strings.ToLower(strings.Trim(path.Clean("/"+folder), "/"))
	if folder == "" || folder == "." {
		return "uploads"
	}
	return folder
}

func allowedTypes() []string {
	types := make([]string, 0, len(AllowedMediaTypes))
	for t := range AllowedMediaTypes {
		types = append(types, t)
	}
	return types
}
