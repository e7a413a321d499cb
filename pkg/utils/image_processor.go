package utils

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"tabreed-backend/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	maxImageWidth = 1800
	webpQuality   = 85
)

// ProcessImage resizes oversized product photos and re-encodes them as
// WebP, falling back to JPEG when WebP encoding fails.
func ProcessImage(r io.Reader, filename string) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	logger.Debug().Str("file", filename).Str("format", format).Msg("processing upload")

	bounds := img.Bounds()
	if bounds.Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  webpQuality,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("webp encoding failed, falling back to jpeg")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: webpQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}
