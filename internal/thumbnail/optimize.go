package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Encoding defaults for catalog thumbnails.
const (
	DefaultWidth   = 300
	DefaultQuality = 75
)

// Optimize decodes a screenshot, scales it to width keeping the aspect
// ratio and re-encodes it as JPEG. Images narrower than width are not
// enlarged.
func Optimize(data []byte, width, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if width <= 0 {
		width = DefaultWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
