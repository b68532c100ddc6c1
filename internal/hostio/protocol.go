package hostio

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/five82/ankibridge/internal/bridge"
)

// Message types exchanged with the host.
const (
	TypeRender            = "render"
	TypeComponentReady    = "componentReady"
	TypeSetComponentValue = "setComponentValue"
	TypeSetFrameHeight    = "setFrameHeight"
)

// Message is one line of the stdio protocol.
type Message struct {
	Type string                `json:"type"`
	ID   string                `json:"id,omitempty"`
	Args *bridge.ActionRequest `json:"args,omitempty"`
	// Value is omitted when the bridge reports an undefined result.
	Value any `json:"value,omitempty"`
}

// writer serializes outbound messages, one JSON object per line.
type writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newWriter(w io.Writer) *writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &writer{enc: enc}
}

func (w *writer) send(msg Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(msg); err != nil {
		return fmt.Errorf("write %s: %w", msg.Type, err)
	}
	return nil
}

// eventHost implements bridge.Host for a single render event, tagging every
// outbound message with the event id.
type eventHost struct {
	w  *writer
	id string
}

var _ bridge.Host = (*eventHost)(nil)

func (h *eventHost) SetComponentReady() error {
	return h.w.send(Message{Type: TypeComponentReady})
}

func (h *eventHost) SetComponentValue(value any) error {
	return h.w.send(Message{Type: TypeSetComponentValue, ID: h.id, Value: value})
}

func (h *eventHost) SetFrameHeight() error {
	return h.w.send(Message{Type: TypeSetFrameHeight, ID: h.id})
}
