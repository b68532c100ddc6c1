// Package state keeps the host-side session state for the bridge.
//
// # Overview
//
// The dispatcher itself is stateless: each render is handled from scratch and
// reports a single value. Hosts still want to remember what came back, such
// as whether AnkiConnect granted permission, which decks exist and which
// notes were added. Store is that memory, shared between whatever drives
// the dispatcher (the TUI, the stdio server, the batch add command) and
// whatever renders it.
//
// # Record Semantics
//
//	// Success: fold the value into the session
//	store.Record(result)   // getDecks → Decks, addCard → NoteIDs, ...
//
//	// Failure: keep old data, record the error
//	store.Record(result)   // LastError = result.Err, ConsecutiveFailures++
//
// A reqPerm value of false or nil never replaces a stored permission,
// matching how the host treats sentinel values.
//
// # Concurrency Model
//
// Store uses a readers-writer lock. Record takes the write lock, Snapshot the
// read lock, and neither is held during network I/O or rendering. Snapshot
// returns copies of slices and wraps the last error so callers cannot mutate
// stored state.
//
// The zero Store is ready to use.
package state
