// Package bridge implements the action dispatcher that sits between a host UI
// and AnkiConnect.
//
// # Overview
//
// A host delivers one ActionRequest per render cycle. The Dispatcher looks the
// action up in a fixed table, performs the matching AnkiConnect call(s) in
// sequence, and reports exactly one value back through the Host interface,
// followed by a frame-height signal.
//
//	reqPerm           requestPermission, modelNames, createModel (if missing)
//	addCard           addNote
//	addCardWithImage  addNote with a picture attachment
//	getDecks          deckNames
//	getDecksMobile    anki:// URL handoff, clipboard read, clipboard clear
//	getOs             user agent string
//
// # Results and Sentinels
//
// Handlers return a Result that carries either a value or an error. The host
// contract predates Result and only understands sentinel values, so
// Result.HostValue maps failures back to them:
//
//	reqPerm, getDecks            false
//	addCard, addCardWithImage    "Error"
//	getDecksMobile               false (handoff failed) or nil (clipboard failed)
//
// The underlying error is logged and available on Result.Err but is never
// sent to the host.
//
// An unrecognized action emits no value at all. The frame-height signal is
// sent after every invocation, recognized or not.
//
// # Capabilities
//
// Everything platform-specific is injected through Deps: the AnkiConnect
// client, clipboard, URL opener, user agent and clock. Tests substitute
// fakes; internal/platform provides the real implementations.
//
// # Concurrency
//
// A Dispatcher holds no mutable state and may be shared. Within a single
// invocation calls are issued one after another. The reqPerm model check is
// not locked: two concurrent invocations can both observe the model missing
// and both try to create it.
package bridge
