package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// NoteService defines the AnkiConnect calls the bridge relies on.
// This interface is implemented by *Client and can be used for testing.
type NoteService interface {
	RequestPermission(ctx context.Context) (PermissionResult, error)
	ModelNames(ctx context.Context) ([]string, error)
	CreateModel(ctx context.Context, params CreateModelParams) (json.RawMessage, error)
	DeckNames(ctx context.Context) ([]string, error)
	AddNote(ctx context.Context, note Note) (int64, error)
}

// Ensure Client implements NoteService at compile time.
var _ NoteService = (*Client)(nil)

// Client talks to the AnkiConnect HTTP API.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultEndpoint is the fixed local address of AnkiConnect.
	DefaultEndpoint  = "http://localhost:8765"
	defaultUserAgent = "ankibridge/0.1"
)

// NewClient builds a Client for endpoint. An empty endpoint selects
// DefaultEndpoint.
func NewClient(endpoint string) (*Client, error) {
	base, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: base,
		// No client timeout: calls are bounded by ctx and the transport.
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the resolved endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// RequestPermission asks AnkiConnect to trust this client.
func (c *Client) RequestPermission(ctx context.Context) (PermissionResult, error) {
	if c == nil {
		return PermissionResult{}, fmt.Errorf("client is nil")
	}
	var payload PermissionResult
	if err := c.invoke(ctx, "requestPermission", nil, &payload); err != nil {
		return PermissionResult{}, err
	}
	return payload, nil
}

// ModelNames lists the note types known to the collection.
func (c *Client) ModelNames(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var names []string
	if err := c.invoke(ctx, "modelNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// CreateModel creates a note type and returns the remote model object as-is.
func (c *Client) CreateModel(ctx context.Context, params CreateModelParams) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var model json.RawMessage
	if err := c.invoke(ctx, "createModel", params, &model); err != nil {
		return nil, err
	}
	return model, nil
}

// DeckNames lists every deck in the collection.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var names []string
	if err := c.invoke(ctx, "deckNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// AddNote inserts note and returns the id AnkiConnect assigned to it.
func (c *Client) AddNote(ctx context.Context, note Note) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var id *int64
	if err := c.invoke(ctx, "addNote", noteParams{Note: note}, &id); err != nil {
		return 0, err
	}
	if id == nil {
		return 0, &RemoteError{Action: "addNote", Message: "no note id returned"}
	}
	return *id, nil
}

func (c *Client) invoke(ctx context.Context, action string, params any, dest any) error {
	body, err := json.Marshal(Request{Action: action, Version: APIVersion, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ankiconnect %s returned status %d", action, resp.StatusCode)
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if envelope.Error != nil {
		return &RemoteError{Action: action, Message: *envelope.Error}
	}
	if dest == nil {
		return nil
	}
	if len(envelope.Result) == 0 {
		return fmt.Errorf("decode %s result: missing result field", action)
	}
	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return fmt.Errorf("decode %s result: %w", action, err)
	}
	return nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
