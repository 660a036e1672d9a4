package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Document is the JSON body served for one issuance token.
type Document struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// objectPutter is the subset of the S3 API the publisher needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads metadata documents to an S3-compatible bucket.
type Publisher struct {
	client objectPutter
	bucket string
	prefix string
	cfg    Config
}

// NewPublisher connects to the bucket described by cfg.
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, "")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("metadata: load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.S3.Endpoint != "" {
		endpoint := normaliseEndpoint(cfg.S3.Endpoint, cfg.S3.UseSSL)
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	if cfg.S3.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return newPublisher(s3.NewFromConfig(awsCfg, s3Opts...), cfg), nil
}

func newPublisher(client objectPutter, cfg Config) *Publisher {
	return &Publisher{
		client: client,
		bucket: cfg.S3.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		cfg:    cfg,
	}
}

// ObjectKey maps a document key to its object key in the bucket.
func (p *Publisher) ObjectKey(key string) string {
	return path.Join(p.prefix, key+".json")
}

// Put uploads doc under key. Re-uploading the same key overwrites it.
func (p *Publisher) Put(ctx context.Context, key string, doc Document) error {
	if key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("metadata: invalid key %q", key)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("metadata: encode %s: %w", key, err)
	}

	if p.cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout.Duration)
		defer cancel()
	}

	objectKey := p.ObjectKey(key)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("metadata: put object %s: %w", objectKey, err)
	}
	return nil
}

// normaliseEndpoint ensures the endpoint has a scheme.
func normaliseEndpoint(endpoint string, useSSL bool) string {
	// url.Parse reads "host:port" as a scheme, so require "://" as well.
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Scheme != "" && strings.Contains(endpoint, "://") {
		return endpoint
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return scheme + "://" + endpoint
}
