// Package ui provides the interactive terminal host for the bridge.
//
// # Overview
//
// The terminal host plays the role the notebook UI plays in the browser: it
// collects an action and its arguments, hands them to the dispatcher, and
// shows the value the dispatcher reports back. It is built on Bubble Tea
// with Bubbles inputs and Lip Gloss styling.
//
// # Layout
//
//	┌────────────────────────────────────────────────────────────┐
//	│ ankibridge  OK  permission granted  decks 4  notes 2       │ Header
//	│                                                            │
//	│  reqPerm  addCard  addCardWithImage  getDecks  ...         │ Action picker
//	│                                                            │
//	│ Deck   Biology                                             │ Form (per action)
//	│ Front  What is ATP?                                        │
//	│ Back   Energy currency                                     │
//	│ Tags   chapter-3                                           │
//	│                                                            │
//	│ Results                                                    │
//	│ 12:00:01 ✓ getDecks → ["Biology","Default"]               │ Viewport
//	│ 12:00:09 ✓ addCard deck=Biology → 1709294400000            │
//	│ ←/→ action • tab field • enter send • ? help • q quit      │ Footer
//	└────────────────────────────────────────────────────────────┘
//
// # Dispatch
//
// Submitting runs one Handle call inside a tea.Cmd so the UI keeps drawing
// while AnkiConnect answers. Only one invocation is in flight at a time;
// submits while one is pending are ignored. A capturing host records the
// value the dispatcher emits, which is shown exactly as the stdio host would
// encode it ("undefined" for an absent value, JSON otherwise).
//
// Every emitted result is folded into the shared state.Store. A successful
// getDecks feeds the deck field's completions (ctrl+f accepts one), and a
// successful add remembers the deck and tags in prefs for the next run.
//
// # Keys
//
// Letter shortcuts (q, ?, T, h, l) only act while the action picker has
// focus, so they can be typed into fields. Tab and shift+tab cycle through
// the picker and the visible fields; esc returns to the picker; enter or
// ctrl+s sends from anywhere.
//
// # Themes
//
// Three palettes ship: Nightfox (default), Kanagawa and Slate. T cycles
// them and the choice is saved to prefs.
package ui
