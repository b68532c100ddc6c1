package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ankibridge/internal/bridge"
	"github.com/five82/ankibridge/internal/platform"
)

// entry is one line of the results history.
type entry struct {
	at      time.Time
	action  bridge.Action
	detail  string
	value   string
	emitted bool
	ok      bool
	err     string
}

// resultMsg carries a finished invocation back to Update.
type resultMsg struct {
	req     bridge.ActionRequest
	result  bridge.Result
	value   any
	emitted bool
	err     error
	at      time.Time
}

// captureHost records what the dispatcher reports instead of forwarding it.
type captureHost struct {
	value   any
	emitted bool
}

func (h *captureHost) SetComponentReady() error { return nil }

func (h *captureHost) SetComponentValue(value any) error {
	h.value = value
	h.emitted = true
	return nil
}

func (h *captureHost) SetFrameHeight() error { return nil }

func dispatchCmd(ctx context.Context, handler Handler, req bridge.ActionRequest) tea.Cmd {
	return func() tea.Msg {
		host := &captureHost{}
		result, err := handler.Handle(ctx, host, req)
		return resultMsg{
			req:     req,
			result:  result,
			value:   host.value,
			emitted: host.emitted,
			err:     err,
			at:      time.Now(),
		}
	}
}

var errImageRequired = errors.New("image path is required")

// buildRequest collects the form values the current action reads.
func (m Model) buildRequest() (bridge.ActionRequest, error) {
	req := bridge.ActionRequest{Action: m.currentAction()}
	for _, f := range m.visibleFields() {
		value := m.inputs[f].Value()
		switch f {
		case fieldDeck:
			req.Deck = strings.TrimSpace(value)
		case fieldFront:
			req.Front = value
		case fieldBack:
			req.Back = value
		case fieldTags:
			req.Tags = strings.TrimSpace(value)
		case fieldImage:
			path := strings.TrimSpace(value)
			if path == "" {
				return req, errImageRequired
			}
			data, _, err := platform.ReadImage(path)
			if err != nil {
				return req, err
			}
			req.Image = data
		}
	}
	return req, nil
}

// submit sends the current action unless one is already in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending || m.handler == nil {
		return m, nil
	}
	req, err := m.buildRequest()
	if err != nil {
		m.appendEntry(entry{at: time.Now(), action: req.Action, err: err.Error()})
		return m, nil
	}
	m.pending = true
	return m, dispatchCmd(m.ctx, m.handler, req)
}

func (m *Model) handleResult(msg resultMsg) {
	m.pending = false

	e := entry{
		at:      msg.at,
		action:  msg.req.Action,
		detail:  describeRequest(msg.req),
		value:   renderValue(msg.value, msg.emitted),
		emitted: msg.emitted,
		ok:      msg.result.OK() && msg.err == nil,
	}
	var errs []string
	if msg.result.Err != nil {
		errs = append(errs, msg.result.Err.Error())
	}
	if msg.err != nil {
		errs = append(errs, msg.err.Error())
	}
	e.err = strings.Join(errs, "; ")

	if m.store != nil && msg.emitted {
		m.store.Record(msg.result)
		m.applySnapshot(m.store.Snapshot())
	}

	if e.ok && (msg.req.Action == bridge.ActionAddCard || msg.req.Action == bridge.ActionAddCardWithImage) {
		m.prefs.Remember(msg.req.Deck, msg.req.Tags)
		m.savePrefs()
		m.inputs[fieldFront].Reset()
		m.inputs[fieldBack].Reset()
		m.inputs[fieldImage].Reset()
	}

	m.appendEntry(e)
}

func (m *Model) appendEntry(e entry) {
	m.history = append(m.history, e)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.refreshResults()
}

const historyLimit = 200

func (m *Model) refreshResults() {
	m.results.SetContent(m.renderHistory())
	m.results.GotoBottom()
}

// renderValue formats a host value the way the stdio host would encode it.
func renderValue(value any, emitted bool) string {
	if !emitted {
		return "(no value)"
	}
	if value == nil {
		return "undefined"
	}
	out, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(out)
}

func describeRequest(req bridge.ActionRequest) string {
	var parts []string
	if req.Deck != "" {
		parts = append(parts, "deck="+req.Deck)
	}
	if req.Front != "" {
		parts = append(parts, "front="+truncate(req.Front, 32))
	}
	if len(req.Image) > 0 {
		parts = append(parts, fmt.Sprintf("image=%d bytes", len(req.Image)))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
