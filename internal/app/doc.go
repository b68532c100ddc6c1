// Package app is the composition root for ankibridge.
//
// # Overview
//
// Every command goes through setup, which loads configuration, builds the
// zap logger, creates the AnkiConnect client and wires a bridge.Dispatcher
// to the real platform capabilities (system clipboard, URL opener, user
// agent). Each command then puts a different host in front of the same
// dispatcher:
//
//	RunServe  stdio host protocol (hostio.Server)
//	RunTUI    interactive terminal host (ui.Run)
//	RunDo     one action, value printed as one JSON line
//	RunAdd    one addCard per card in a flashcard batch file
//	RunLogs   tail of the bridge log, no dispatcher needed
//
// # Data Flow
//
//	┌──────────────┐
//	│   setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML + .env + ANKIBRIDGE_*
//	       ├─────> logging.New()        file, plus stderr when not interactive
//	       ├─────> ankiconnect.NewClient()
//	       ├─────> bridge.New()         dispatcher with platform capabilities
//	       └─────> state.Store{}        session state shared with the host
//
// RunTUI primes the store before the UI appears by running reqPerm and
// getDecks once, the same way the browser host asks for permission and the
// deck list when it loads. A failed prime is logged and the UI starts anyway
// so the user can retry from the action picker.
//
// # Logging
//
// Interactive sessions log to the file only. Other commands also log to
// standard error; standard output belongs to the host protocol or to the
// printed values.
//
// # Batch Files
//
// RunAdd reads the flashcard format produced by the slide-to-card generator:
//
//	{"flashcards": [{"front": "Question", "back": "Answer"}, ...]}
//
// Curly quotes are normalized to straight single quotes before parsing.
// Cards are sent one at a time, in file order; a failed card does not stop
// the batch, but the command exits non-zero when any card failed.
package app
