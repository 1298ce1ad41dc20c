// Package imagestore persists uploaded meal photos and returns the URL they
// are served from.
package imagestore

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"infinium/internal/model"
)

// Object is a stored image.
type Object struct {
	Key         string
	URL         string
	ContentType string
	Data        []byte
}

// Store writes image bytes under name.
type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (*Object, error)
}

// Decode parses a base64 image, optionally wrapped in a data URI, and returns
// its bytes with the detected content type.
func Decode(buffer string) ([]byte, string, error) {
	buffer = strings.TrimSpace(buffer)

	declared := ""
	if strings.HasPrefix(buffer, "data:") {
		meta, payload, ok := strings.Cut(buffer, ",")
		if !ok {
			return nil, "", model.ErrInvalidImage
		}
		declared, _, _ = strings.Cut(strings.TrimPrefix(meta, "data:"), ";")
		buffer = payload
	}

	data, err := base64.StdEncoding.DecodeString(buffer)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(buffer); err != nil {
			return nil, "", fmt.Errorf("%w: %v", model.ErrInvalidImage, err)
		}
	}
	if len(data) == 0 {
		return nil, "", model.ErrInvalidImage
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		if !strings.HasPrefix(declared, "image/") {
			return nil, "", model.ErrInvalidImage
		}
		contentType = declared
	}

	return data, contentType, nil
}

// Extension returns the file extension used for contentType.
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" {
		return "." + sub
	}
	return ".img"
}

// Name returns the object name of a food image uploaded at t.
func Name(t time.Time, contentType string) string {
	return fmt.Sprintf("food-%d%s", t.UnixMilli(), Extension(contentType))
}

// Upload decodes a base64 image buffer and stores it in s.
func Upload(ctx context.Context, s Store, buffer string, now time.Time) (*Object, error) {
	data, contentType, err := Decode(buffer)
	if err != nil {
		return nil, err
	}

	obj, err := s.Put(ctx, Name(now, contentType), data, contentType)
	if err != nil {
		return nil, err
	}
	obj.Data = data

	return obj, nil
}
