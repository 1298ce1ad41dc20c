package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// PutObjectAPI is the subset of the S3 client used by S3Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store implements Store on an AWS S3 bucket.
type s3Store struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
	logger    zerolog.Logger
}

// NewS3Store creates an S3-backed store. publicURL is the base objects are
// served from; empty uses the virtual-hosted bucket URL.
func NewS3Store(ctx context.Context, bucket, region, publicURL string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 image store initialised")

	return NewS3StoreWithClient(s3.NewFromConfig(cfg), bucket, region, publicURL, logger), nil
}

// NewS3StoreWithClient creates an S3-backed store on an existing client.
func NewS3StoreWithClient(client PutObjectAPI, bucket, region, publicURL string, logger zerolog.Logger) Store {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &s3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// Put uploads data under the key name.
func (s *s3Store) Put(ctx context.Context, name string, data []byte, contentType string) (*Object, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", name).
			Msg("failed to put object to S3")
		return nil, fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, name, err)
	}

	s.logger.Debug().
		Str("bucket", s.bucket).
		Str("key", name).
		Int("bytes", len(data)).
		Msg("image uploaded to S3")

	return &Object{
		Key:         name,
		URL:         s.publicURL + "/" + name,
		ContentType: contentType,
	}, nil
}
