package files

import (
	"bytes"
	"image"
	"image/jpeg"
	"log/slog"

	"github.com/nfnt/resize"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// CoverProcessor bounds cover images to a maximum edge and re-encodes them as
// JPEG. Blobs that do not decode as images are stored untouched.
type CoverProcessor struct {
	maxSize uint
	quality int
}

// NewCoverProcessor creates a processor with the given bound and JPEG quality.
func NewCoverProcessor(maxSize uint, quality int) *CoverProcessor {
	return &CoverProcessor{maxSize: maxSize, quality: quality}
}

func (p *CoverProcessor) Process(data []byte) []byte {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Debug("Upload is not a decodable image, storing as-is", "error", err)
		return data
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) > p.maxSize || uint(bounds.Dy()) > p.maxSize {
		img = resize.Thumbnail(p.maxSize, p.maxSize, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		slog.Warn("Failed to re-encode cover image, storing original", "format", format, "error", err)
		return data
	}
	return buf.Bytes()
}
