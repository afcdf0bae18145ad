package ports

import (
	"context"
	"io"
)

// ImageService turns an uploaded file into an embeddable payload.
type ImageService interface {
	Process(ctx context.Context, r io.Reader, size int64) (string, error)
}
