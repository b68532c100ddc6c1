package bridge

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/five82/ankibridge/internal/ankiconnect"
)

var errUnreachable = errors.New("execute request: dial tcp 127.0.0.1:8765: connect: connection refused")

type fakeNotes struct {
	perm       ankiconnect.PermissionResult
	models     []string
	decks      []string
	noteID     int64
	createResp json.RawMessage
	err        error

	calls   []string
	created []ankiconnect.CreateModelParams
	notes   []ankiconnect.Note
}

func (f *fakeNotes) RequestPermission(context.Context) (ankiconnect.PermissionResult, error) {
	f.calls = append(f.calls, "requestPermission")
	return f.perm, f.err
}

func (f *fakeNotes) ModelNames(context.Context) ([]string, error) {
	f.calls = append(f.calls, "modelNames")
	return f.models, f.err
}

func (f *fakeNotes) CreateModel(_ context.Context, params ankiconnect.CreateModelParams) (json.RawMessage, error) {
	f.calls = append(f.calls, "createModel")
	f.created = append(f.created, params)
	return f.createResp, f.err
}

func (f *fakeNotes) DeckNames(context.Context) ([]string, error) {
	f.calls = append(f.calls, "deckNames")
	return f.decks, f.err
}

func (f *fakeNotes) AddNote(_ context.Context, note ankiconnect.Note) (int64, error) {
	f.calls = append(f.calls, "addNote")
	f.notes = append(f.notes, note)
	return f.noteID, f.err
}

type hostEvent struct {
	kind  string
	value any
}

type recordingHost struct {
	events []hostEvent
	err    error
}

func (h *recordingHost) SetComponentReady() error {
	h.events = append(h.events, hostEvent{kind: "ready"})
	return h.err
}

func (h *recordingHost) SetComponentValue(value any) error {
	h.events = append(h.events, hostEvent{kind: "value", value: value})
	return h.err
}

func (h *recordingHost) SetFrameHeight() error {
	h.events = append(h.events, hostEvent{kind: "height"})
	return h.err
}

func (h *recordingHost) values() []any {
	var out []any
	for _, ev := range h.events {
		if ev.kind == "value" {
			out = append(out, ev.value)
		}
	}
	return out
}

type fakeClipboard struct {
	text     string
	readErr  error
	writeErr error
	writes   []string
}

func (c *fakeClipboard) ReadText() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.text, nil
}

func (c *fakeClipboard) WriteText(text string) error {
	c.writes = append(c.writes, text)
	if c.writeErr != nil {
		return c.writeErr
	}
	c.text = text
	return nil
}

type fakeOpener struct {
	opened []string
	err    error
	onOpen func()
}

func (o *fakeOpener) Open(_ context.Context, rawURL string) error {
	o.opened = append(o.opened, rawURL)
	if o.err != nil {
		return o.err
	}
	if o.onOpen != nil {
		o.onOpen()
	}
	return nil
}

type staticAgent string

func (a staticAgent) UserAgent() string { return string(a) }
