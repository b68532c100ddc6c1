package platform

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned by ReadImage for files that do not sniff as images.
var ErrNotImage = errors.New("not an image")

// ReadImage loads the image at path and returns it base64-encoded, the form
// the host hands to addCardWithImage, together with the detected MIME type.
func ReadImage(path string) ([]byte, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	mime := mimetype.Detect(raw)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, mime.String(), fmt.Errorf("%s: %w (detected %s)", path, ErrNotImage, mime.String())
	}
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(encoded, raw)
	return encoded, mime.String(), nil
}
