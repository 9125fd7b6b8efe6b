package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/go-logr/logr"

	"github.com/stratum-mining/sv2-wizard/internal/util/retry"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvEndpoint  = "SV2WIZARD_S3_ENDPOINT"
	EnvRegion    = "SV2WIZARD_S3_REGION"
	EnvAccessKey = "SV2WIZARD_S3_ACCESS_KEY"
	EnvSecretKey = "SV2WIZARD_S3_SECRET_KEY"
)

var (
	ErrInvalidURL     = errors.New("invalid s3 url")
	ErrBucketNotFound = errors.New("bucket not found")
)

// Target is where bundles are uploaded.
type Target struct {
	Bucket string
	Prefix string
}

// Key returns the object key for name below the target prefix.
func (t Target) Key(name string) string {
	if t.Prefix == "" {
		return name
	}
	return path.Join(t.Prefix, name)
}

// URL returns the s3:// location of name.
func (t Target) URL(name string) string {
	return "s3://" + t.Bucket + "/" + t.Key(name)
}

// ParseURL parses s3://bucket[/prefix].
func ParseURL(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return Target{}, fmt.Errorf("%w: %q, expected s3://bucket/prefix", ErrInvalidURL, raw)
	}
	return Target{Bucket: u.Host, Prefix: strings.Trim(u.Path, "/")}, nil
}

// Config holds the connection settings of the object storage.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// ConfigFromEnv reads the SV2WIZARD_S3_* variables.
func ConfigFromEnv() Config {
	return Config{
		Endpoint:  os.Getenv(EnvEndpoint),
		Region:    os.Getenv(EnvRegion),
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
	}
}

// Publisher uploads bundles to one target.
type Publisher struct {
	s3       *s3.Client
	target   Target
	attempts int
	delay    time.Duration
	log      logr.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithRetry sets the number of upload attempts and the initial delay
// between them. The delay doubles after every failed attempt.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(p *Publisher) {
		p.attempts = attempts
		p.delay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

// NewPublisher creates a publisher for target.
func NewPublisher(ctx context.Context, cfg Config, target Target, opts ...Option) (*Publisher, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Self-hosted S3 compatible stores rarely support virtual hosts.
			o.UsePathStyle = true
		}
	})
	return newPublisher(client, target, opts...), nil
}

func newPublisher(client *s3.Client, target Target, opts ...Option) *Publisher {
	p := &Publisher{
		s3:       client,
		target:   target,
		attempts: 3,
		delay:    time.Second,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish uploads data as name below the target prefix and returns its
// s3:// location.
func (p *Publisher) Publish(ctx context.Context, name string, data []byte) (string, error) {
	if err := p.checkBucket(ctx); err != nil {
		return "", err
	}

	key := p.target.Key(name)
	err := retry.Do(ctx, func() error {
		_, err := p.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(p.target.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String(contentType(name)),
		})
		if isPermanent(err) {
			return retry.Permanent(err)
		}
		return err
	},
		retry.WithAttempts(p.attempts),
		retry.WithDelay(p.delay),
		retry.OnRetry(func(attempt int, delay time.Duration, err error) {
			p.log.V(1).Info("upload failed, retrying", "attempt", attempt, "delay", delay.String(), "error", err.Error())
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to put object %s in bucket %s: %w", key, p.target.Bucket, err)
	}
	return p.target.URL(name), nil
}

func (p *Publisher) checkBucket(ctx context.Context) error {
	_, err := p.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(p.target.Bucket)})
	if err == nil {
		return nil
	}
	if isNotFoundError(err) {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, p.target.Bucket)
	}
	return fmt.Errorf("failed to check bucket %s: %w", p.target.Bucket, err)
}

func contentType(name string) string {
	if strings.HasSuffix(name, ".zip") {
		return "application/zip"
	}
	return "application/octet-stream"
}

// isNotFoundError checks if the error reports a missing bucket.
func isNotFoundError(err error) bool {
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// S3 compatible services do not always return the typed errors.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}
	return false
}

// isPermanent reports errors that retrying cannot fix.
func isPermanent(err error) bool {
	if isNotFoundError(err) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidBucketName":
			return true
		}
	}
	return false
}
