// Package hostio hosts the bridge dispatcher over a line-delimited JSON
// protocol on stdin/stdout.
//
// The protocol mirrors the lifecycle of an embedded UI component:
//
//	→ {"type":"componentReady"}
//	→ {"type":"setFrameHeight"}
//	← {"type":"render","id":"r1","args":{"action":"getDecks"}}
//	→ {"type":"setComponentValue","id":"r1","value":["Default"]}
//	→ {"type":"setFrameHeight","id":"r1"}
//
// Every render produces at most one setComponentValue (none for an
// unrecognized action) followed by exactly one setFrameHeight. An undefined
// result is sent with the value field omitted. Render ids are echoed back;
// when the host omits one a UUID is generated.
//
// The args.image field is the base64 encoding of the raw image bytes, as with
// any []byte in encoding/json.
package hostio
