// Package ankiconnect provides an HTTP client for the AnkiConnect add-on API.
//
// # Overview
//
// AnkiConnect exposes the local Anki collection as a JSON-RPC style endpoint
// on http://localhost:8765. Every call is a POST whose body names the action,
// the protocol version and optional parameters:
//
//	{"action": "deckNames", "version": 6}
//	{"action": "addNote", "version": 6, "params": {"note": {...}}}
//
// and every reply has the same envelope:
//
//	{"result": <any>, "error": null}
//	{"result": null, "error": "cannot create note because it is a duplicate"}
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client, envelope decoding and error wrapping
//   - types.go: Request/response structures mirroring the AnkiConnect schema
//
// # Client Usage
//
//	client, err := ankiconnect.NewClient("")
//	if err != nil {
//		return err
//	}
//
//	decks, err := client.DeckNames(ctx)
//	if err != nil {
//		return fmt.Errorf("list decks: %w", err)
//	}
//
// An empty endpoint selects DefaultEndpoint. Tests pass an httptest.Server
// URL instead.
//
// # Supported Actions
//
//   - requestPermission: RequestPermission
//   - modelNames: ModelNames
//   - createModel: CreateModel
//   - deckNames: DeckNames
//   - addNote: AddNote (with or without a picture attachment)
//
// # Error Handling
//
//   - Network errors: "execute request: dial tcp ...: connection refused"
//   - HTTP errors: "ankiconnect deckNames returned status 403"
//   - Deserialization errors: "decode response: ..." / "decode deckNames result: ..."
//   - Remote errors: *RemoteError carrying the envelope's error string
//
// Use errors.As to distinguish a *RemoteError from transport failures.
//
// # Timeouts
//
// The client sets no timeout of its own. Calls are bounded by the caller's
// context and by the transport; an unresponsive Anki stalls the call until
// one of those gives up.
//
// # Thread Safety
//
// Client holds no mutable state and is safe for concurrent use.
package ankiconnect
