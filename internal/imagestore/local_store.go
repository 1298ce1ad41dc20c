package imagestore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalURLPrefix is the path local images are served under.
const LocalURLPrefix = "/images/"

// localStore implements Store on a local directory.
type localStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates a store writing into dir.
func NewLocalStore(dir string, logger zerolog.Logger) Store {
	return &localStore{
		dir:    dir,
		logger: logger.With().Str("component", "local-image-store").Logger(),
	}
}

// Put writes data to dir/name.
func (s *localStore) Put(ctx context.Context, name string, data []byte, contentType string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = path.Base(filepath.ToSlash(name))
	if name == "." || name == "/" {
		return nil, fmt.Errorf("invalid image name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create image directory")
		return nil, fmt.Errorf("failed to create image directory %s: %w", s.dir, err)
	}

	file := filepath.Join(s.dir, name)
	if err := os.WriteFile(file, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", file).Msg("failed to write image")
		return nil, fmt.Errorf("failed to write image %s: %w", file, err)
	}

	s.logger.Debug().Str("file", file).Int("bytes", len(data)).Msg("image stored locally")

	return &Object{
		Key:         name,
		URL:         LocalURLPrefix + name,
		ContentType: contentType,
	}, nil
}
