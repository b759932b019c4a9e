package ports

import (
	"context"
	"io"
)

// ImageStore saves an uploaded product image and returns the path under
// which it can be served.
type ImageStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}
