package imagestore

import (
	"context"

	"github.com/rs/zerolog"
)

// fallbackStore tries S3 first, then falls back to the local store.
type fallbackStore struct {
	s3Store    Store
	localStore Store
	s3Prefix   string
	s3Enabled  bool
	logger     zerolog.Logger
}

// NewFallbackStore creates a store that tries S3 first, then falls back to the
// local store. If s3Store is nil only the local store is used.
func NewFallbackStore(s3Store, localStore Store, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:    s3Store,
		localStore: localStore,
		s3Prefix:   s3Prefix,
		s3Enabled:  s3Enabled,
		logger:     logger.With().Str("component", "fallback-image-store").Logger(),
	}
}

// Put stores name under s3Prefix on S3, or as-is locally.
func (s *fallbackStore) Put(ctx context.Context, name string, data []byte, contentType string) (*Object, error) {
	if s.s3Enabled && s.s3Store != nil {
		key := s.s3Prefix + name

		obj, err := s.s3Store.Put(ctx, key, data, contentType)
		if err == nil {
			return obj, nil
		}

		s.logger.Warn().
			Err(err).
			Str("s3_key", key).
			Msg("failed to store image on S3, falling back to local directory")
	} else {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_store", s.s3Store != nil).
			Msg("S3 disabled or not configured, using local directory")
	}

	return s.localStore.Put(ctx, name, data, contentType)
}
