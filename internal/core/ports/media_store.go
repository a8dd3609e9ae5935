package ports

import (
	"context"
	"io"
)

// MediaStore persists uploaded images and returns their public URL.
type MediaStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
