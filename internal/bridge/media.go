package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	pictureFilenamePrefix = "pdf-anki-"
	pictureFilenameExt    = ".jpg"
	utf8BOM               = "\ufeff"
)

// PictureFilename derives the media filename for an image note from the
// submission time. The hash covers the millisecond timestamp only, so two
// submissions within the same millisecond share a filename.
func PictureFilename(at time.Time) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(at.UnixMilli(), 10)))
	return pictureFilenamePrefix + hex.EncodeToString(sum[:]) + pictureFilenameExt
}

// imageText decodes the host's image bytes as UTF-8 text. AnkiConnect expects
// a text (base64) payload, which the host supplies as raw bytes. Each maximal
// invalid subpart becomes one U+FFFD, so a truncated sequence is replaced once
// and every stray byte on its own.
func imageText(image []byte) string {
	var b strings.Builder
	b.Grow(len(image))
	for len(image) > 0 {
		r, size := utf8.DecodeRune(image)
		if r == utf8.RuneError && size <= 1 {
			size = invalidSubpartLen(image)
		}
		b.WriteRune(r)
		image = image[size:]
	}
	return strings.TrimPrefix(b.String(), utf8BOM)
}

// invalidSubpartLen reports how many bytes at the start of p form the longest
// prefix of a well-formed sequence. It is always at least one.
func invalidSubpartLen(p []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch c := p[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}
	n := 1
	for n <= need && n < len(p) && p[n] >= lo && p[n] <= hi {
		lo, hi = 0x80, 0xBF
		n++
	}
	return n
}
