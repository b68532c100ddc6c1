package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ankibridge/internal/bridge"
	"github.com/five82/ankibridge/internal/prefs"
	"github.com/five82/ankibridge/internal/state"
)

// Handler runs one action against a host. *bridge.Dispatcher implements it.
type Handler interface {
	Handle(ctx context.Context, host bridge.Host, req bridge.ActionRequest) (bridge.Result, error)
}

var _ Handler = (*bridge.Dispatcher)(nil)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Handler   Handler
	Store     *state.Store
	ThemeName string
	PrefsPath string
	// Prefs seeds the deck and tags fields with the last values used.
	Prefs prefs.Prefs
}

// field identifies one form input.
type field int

const (
	fieldDeck field = iota
	fieldFront
	fieldBack
	fieldTags
	fieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Deck", "Front", "Back", "Tags", "Image"}

// fieldsFor returns the inputs an action reads, in display order.
func fieldsFor(action bridge.Action) []field {
	switch action {
	case bridge.ActionAddCard:
		return []field{fieldDeck, fieldFront, fieldBack, fieldTags}
	case bridge.ActionAddCardWithImage:
		return []field{fieldDeck, fieldFront, fieldBack, fieldTags, fieldImage}
	default:
		return nil
	}
}

// pickerFocus marks the action picker as focused instead of a form field.
const pickerFocus = -1

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	handler   Handler
	store     *state.Store
	prefsPath string
	prefs     prefs.Prefs

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Form state
	actions   []bridge.Action
	actionIdx int
	focus     int // pickerFocus or an index into fieldsFor(current action)
	inputs    [fieldCount]textinput.Model

	// Results state
	pending  bool
	history  []entry
	results  viewport.Model
	snapshot state.Snapshot
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		handler:   opts.Handler,
		store:     opts.Store,
		prefsPath: prefsPath,
		prefs:     opts.Prefs,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		actions:   bridge.Actions(),
		focus:     pickerFocus,
		results:   viewport.New(0, 0),
	}
	m.initInputs()
	if m.store != nil {
		m.applySnapshot(m.store.Snapshot())
	}
	return m
}

func (m *Model) initInputs() {
	placeholders := [fieldCount]string{
		"Default",
		"Question",
		"Answer",
		"space separated",
		"path to an image file",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		m.inputs[i] = ti
	}
	m.inputs[fieldDeck].ShowSuggestions = true
	m.inputs[fieldDeck].KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+f"))
	m.inputs[fieldDeck].SetValue(m.prefs.LastDeck)
	m.inputs[fieldTags].SetValue(m.prefs.LastTags)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case resultMsg:
		m.handleResult(msg)
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

func (m Model) currentAction() bridge.Action {
	return m.actions[m.actionIdx]
}

func (m Model) visibleFields() []field {
	return fieldsFor(m.currentAction())
}

// focusedField returns the focused input, or false when the picker has focus.
func (m Model) focusedField() (field, bool) {
	fields := m.visibleFields()
	if m.focus < 0 || m.focus >= len(fields) {
		return 0, false
	}
	return fields[m.focus], true
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevField):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	if _, ok := m.focusedField(); ok {
		if key.Matches(msg, m.keys.Escape) {
			return m.setFocus(pickerFocus)
		}
		return m.updateFocusedInput(msg)
	}

	// Picker keys; letters only act here so they can be typed into fields.
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
	case key.Matches(msg, m.keys.PrevAction):
		m.actionIdx = (m.actionIdx + len(m.actions) - 1) % len(m.actions)
		m.layout()
	case key.Matches(msg, m.keys.NextAction):
		m.actionIdx = (m.actionIdx + 1) % len(m.actions)
		m.layout()
	}
	return m, nil
}

// moveFocus cycles through the picker and the visible fields.
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	stops := len(m.visibleFields()) + 1
	pos := (m.focus + 1 + delta + stops) % stops
	return m.setFocus(pos - 1)
}

func (m Model) setFocus(focus int) (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = focus
	if f, ok := m.focusedField(); ok {
		return m, m.inputs[f].Focus()
	}
	m.focus = pickerFocus
	return m, nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, ok := m.focusedField()
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[f], cmd = m.inputs[f].Update(msg)
	return m, cmd
}

func (m *Model) savePrefs() {
	if m.prefsPath != "" {
		_ = prefs.Save(m.prefsPath, m.prefs)
	}
}

// layout sizes the results viewport to the space left by the form.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	// header, blank, picker, blank, fields, blank, results title, footer
	used := 7 + len(m.visibleFields())
	height := m.height - used
	if height < 1 {
		height = 1
	}
	m.results.Width = m.width
	m.results.Height = height
	m.help.Width = m.width
	for i := range m.inputs {
		m.inputs[i].Width = max(m.width-labelWidth-4, 10)
	}
	m.refreshResults()
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.HasDecks {
		m.inputs[fieldDeck].SetSuggestions(snap.Decks)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
