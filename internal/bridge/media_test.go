package bridge

import (
	"strings"
	"testing"
	"time"
)

func TestPictureFilename_Format(t *testing.T) {
	at := time.UnixMilli(1709294400000)
	got := PictureFilename(at)
	if !strings.HasPrefix(got, "pdf-anki-") || !strings.HasSuffix(got, ".jpg") {
		t.Fatalf("PictureFilename = %q, want pdf-anki-<hash>.jpg", got)
	}
	hash := strings.TrimSuffix(strings.TrimPrefix(got, "pdf-anki-"), ".jpg")
	if len(hash) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(hash))
	}
	if strings.ToLower(hash) != hash {
		t.Fatalf("hash %q should be lowercase hex", hash)
	}
}

func TestPictureFilename_SameMillisecondCollides(t *testing.T) {
	base := time.UnixMilli(1709294400000)
	// Sub-millisecond differences are lost, so these collide.
	if PictureFilename(base) != PictureFilename(base.Add(500*time.Microsecond)) {
		t.Fatalf("filenames within one millisecond should collide")
	}
	if PictureFilename(base) == PictureFilename(base.Add(time.Millisecond)) {
		t.Fatalf("filenames one millisecond apart should differ")
	}
}

func TestImageText(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "base64 text", input: []byte("aGVsbG8="), want: "aGVsbG8="},
		{name: "leading bom dropped", input: []byte("\ufeffaGVsbG8="), want: "aGVsbG8="},
		{name: "invalid utf8 replaced", input: []byte{'a', 0xff, 'b'}, want: "a\ufffdb"},
		{name: "each stray byte replaced", input: []byte{'a', 0xff, 0xfe, 'b'}, want: "a\ufffd\ufffdb"},
		{name: "truncated sequence replaced once", input: []byte{'a', 0xe2, 0x82, 'b'}, want: "a\ufffdb"},
		{name: "surrogate bytes replaced individually", input: []byte{0xed, 0xa0, 0x80}, want: "\ufffd\ufffd\ufffd"},
		{name: "truncated at end", input: []byte{'a', 0xf0, 0x9f, 0x98}, want: "a\ufffd"},
		{name: "multibyte kept", input: []byte("h\u00e9\U0001F600"), want: "h\u00e9\U0001F600"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := imageText(tt.input); got != tt.want {
				t.Fatalf("imageText = %q, want %q", got, tt.want)
			}
		})
	}
}
