package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const ContentType = "image/jpeg"

var ErrNotAnImage = errors.New("file is not an image")

// Sniff detects the content type from the file's leading bytes and returns it
// together with the canonical extension (".jpg", ".png", ...).
func Sniff(data []byte) (contentType, ext string, err error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "", fmt.Errorf("%w: detected %s", ErrNotAnImage, mt.String())
	}
	return mt.String(), mt.Extension(), nil
}

// Generate renders a JPEG preview that fits in a size x size box, keeping the
// aspect ratio and honoring EXIF orientation.
func Generate(data []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
