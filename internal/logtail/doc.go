// Package logtail reads and renders ankibridge's own log file.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries and makes a single pass over
// the file, so the tail of a large log is cheap to fetch. A missing file
// yields nil, nil.
//
// # Parsing
//
// ParseLine understands both encodings the logging package writes:
//
//	2026-03-01T12:00:00.000Z	INFO	bridge	bridge/dispatcher.go:81	dispatch	{"action": "getDecks"}
//	{"level":"info","ts":"2026-03-01T12:00:00.000Z","logger":"bridge","msg":"dispatch","action":"getDecks"}
//
// Anything else, such as stack trace continuation lines, is reported as
// unparsed and passed through untouched.
//
// # Colorization
//
// ColorizeLine styles each part with lipgloss: dim timestamps, bold level
// colors (DEBUG cyan, INFO green, WARN yellow, ERROR red), blue logger names
// and violet structured fields. Styling collapses to plain text when the
// output is not a terminal.
package logtail
