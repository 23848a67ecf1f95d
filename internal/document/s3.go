package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/Paintersrp/dictcheck/internal/config"
)

// GetObjectAPI is the slice of the S3 client the reader needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Reader reads reference documents addressed as s3://bucket/key.
type S3Reader struct {
	client GetObjectAPI
}

func NewS3Reader(client GetObjectAPI) *S3Reader {
	return &S3Reader{client: client}
}

// NewS3Client builds a client from the storage settings, falling back to
// the default AWS credential chain when no static keys are configured.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// ParseS3Path splits s3://bucket/key into its parts.
func ParseS3Path(path string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(path), "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 path: %q", path)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 path must look like s3://bucket/key: %q", path)
	}
	return bucket, key, nil
}

func (r *S3Reader) Read(ctx context.Context, path string) (string, error) {
	bucket, key, err := ParseS3Path(path)
	if err != nil {
		return "", err
	}

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isMissingObject(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}

func isMissingObject(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}

// LazyS3Reader builds its client on first use so that vault-only setups
// never touch the AWS credential chain.
type LazyS3Reader struct {
	cfg config.S3Config

	once   sync.Once
	reader *S3Reader
	err    error
}

func NewLazyS3Reader(cfg config.S3Config) *LazyS3Reader {
	return &LazyS3Reader{cfg: cfg}
}

func (l *LazyS3Reader) Read(ctx context.Context, path string) (string, error) {
	l.once.Do(func() {
		client, err := NewS3Client(ctx, l.cfg)
		if err != nil {
			l.err = err
			return
		}
		l.reader = NewS3Reader(client)
	})
	if l.err != nil {
		return "", l.err
	}
	return l.reader.Read(ctx, path)
}
