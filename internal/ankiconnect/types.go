package ankiconnect

import (
	"encoding/json"
	"fmt"
)

// APIVersion is the AnkiConnect protocol version sent with every request.
const APIVersion = 6

// Request is the JSON body posted for every action.
type Request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// Envelope mirrors the {result, error} reply shape. Result is kept raw so each
// call site can decode its own type.
type Envelope struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// RemoteError reports a non-null error field returned by AnkiConnect.
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ankiconnect %s: %s", e.Action, e.Message)
}

// PermissionResult mirrors the requestPermission result object.
type PermissionResult struct {
	Permission    string `json:"permission"`
	RequireAPIKey bool   `json:"requireApikey"`
	Version       int    `json:"version"`
}

// Granted reports whether the remote service accepted this origin.
func (p PermissionResult) Granted() bool {
	return p.Permission == "granted"
}

// Note is the payload of an addNote call.
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    NoteFields        `json:"fields"`
	Options   NoteOptions       `json:"options"`
	Tags      []string          `json:"tags"`
	Picture   []MediaAttachment `json:"picture,omitempty"`
}

// NoteFields holds the two fields of the bridge's note type.
type NoteFields struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

// NoteOptions controls duplicate handling on insert.
type NoteOptions struct {
	AllowDuplicate bool `json:"allowDuplicate"`
}

// MediaAttachment is an inline media file stored alongside a note.
// Data is the text-encoded (base64) payload.
type MediaAttachment struct {
	Data     string   `json:"data"`
	Filename string   `json:"filename"`
	Fields   []string `json:"fields"`
}

// CreateModelParams is the payload of a createModel call.
type CreateModelParams struct {
	ModelName     string         `json:"modelName"`
	InOrderFields []string       `json:"inOrderFields"`
	IsCloze       bool           `json:"isCloze"`
	CardTemplates []CardTemplate `json:"cardTemplates"`
}

// CardTemplate describes one card layout of a model.
type CardTemplate struct {
	Name  string `json:"Name"`
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

type noteParams struct {
	Note Note `json:"note"`
}
