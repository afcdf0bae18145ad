package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

const (
	jpegQuality = 85
	// maxPixels bounds the decoded canvas; compressed formats can expand far
	// beyond the byte limit.
	maxPixels = 40_000_000
)

// ImageService re-encodes uploads as JPEG, which drops any embedded metadata,
// and returns them as data URLs.
type ImageService struct {
	maxMB    float64
	maxBytes int64
}

var _ ports.ImageService = (*ImageService)(nil)

func NewImageService(maxMB float64) *ImageService {
	return &ImageService{maxMB: maxMB, maxBytes: int64(maxMB * 1024 * 1024)}
}

// Process reads at most the configured size from r. size is the declared
// length, or a negative value when unknown.
func (s *ImageService) Process(ctx context.Context, r io.Reader, size int64) (string, error) {
	if size > s.maxBytes {
		return "", s.tooLarge()
	}

	raw, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", &domain.ImageError{Reason: "failed to read image file", Err: err}
	}
	if int64(len(raw)) > s.maxBytes {
		return "", s.tooLarge()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", &domain.ImageError{Reason: "invalid image", Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", &domain.ImageError{Reason: "invalid image"}
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return "", &domain.ImageError{Reason: "image dimensions too large", TooLarge: true}
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", &domain.ImageError{Reason: "invalid image", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Paletted and gray sources are copied onto an RGBA canvas before encoding.
	canvas := image.NewRGBA(src.Bounds())
	draw.Draw(canvas, canvas.Bounds(), src, src.Bounds().Min, draw.Src)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", &domain.ImageError{Reason: "failed to encode image", Err: err}
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

func (s *ImageService) tooLarge() error {
	return &domain.ImageError{Reason: fmt.Sprintf("image must be %gMB or smaller", s.maxMB), TooLarge: true}
}
