package bridge

import (
	"context"
	"time"

	"github.com/five82/ankibridge/internal/ankiconnect"
)

// NoteService is the remote note-service surface used by the dispatcher.
type NoteService = ankiconnect.NoteService

// Host receives values and layout signals from the dispatcher.
type Host interface {
	SetComponentReady() error
	SetComponentValue(value any) error
	SetFrameHeight() error
}

// Clipboard reads and writes the shared system clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// URLOpener hands a URL to whatever application handles its scheme.
type URLOpener interface {
	Open(ctx context.Context, rawURL string) error
}

// UserAgent reports the platform identification string.
type UserAgent interface {
	UserAgent() string
}

// Clock returns the current time.
type Clock func() time.Time
