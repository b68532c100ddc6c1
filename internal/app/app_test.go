package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/five82/ankibridge/internal/bridge"
	"github.com/five82/ankibridge/internal/state"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

// fakeAnki answers the AnkiConnect actions the dispatcher uses.
type fakeAnki struct {
	mu       sync.Mutex
	decks    []string
	failAdd  map[string]bool // by front
	nextID   int64
	requests []map[string]any
}

func (f *fakeAnki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string         `json:"action"`
		Params map[string]any `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req.Params)

	var resp struct {
		Result any     `json:"result"`
		Error  *string `json:"error"`
	}
	switch req.Action {
	case "requestPermission":
		resp.Result = map[string]any{"permission": "granted", "requireApikey": false, "version": 6}
	case "modelNames":
		resp.Result = []string{bridge.ModelName}
	case "deckNames":
		resp.Result = f.decks
	case "addNote":
		note, _ := req.Params["note"].(map[string]any)
		fields, _ := note["fields"].(map[string]any)
		if front, _ := fields["Front"].(string); f.failAdd[front] {
			msg := "cannot create note because it is a duplicate"
			resp.Error = &msg
			break
		}
		f.nextID++
		resp.Result = f.nextID
	default:
		msg := "unsupported action"
		resp.Error = &msg
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func testOptions(t *testing.T, anki *fakeAnki) Options {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	srv := httptest.NewServer(anki)
	t.Cleanup(srv.Close)
	return Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		LogLevel:   "error",
		endpoint:   srv.URL,
	}
}

func TestRunDo_PrintsHostValue(t *testing.T) {
	opts := testOptions(t, &fakeAnki{decks: []string{"Biology", "Default"}})

	var out bytes.Buffer
	err := RunDo(context.Background(), opts, DoOptions{Action: "getDecks"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "[\"Biology\",\"Default\"]\n", out.String())
}

func TestRunDo_FailurePrintsSentinelAndErrors(t *testing.T) {
	opts := testOptions(t, &fakeAnki{failAdd: map[string]bool{"dup": true}})

	var out bytes.Buffer
	err := RunDo(context.Background(), opts, DoOptions{Action: "addCard", Deck: "Default", Front: "dup"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
	assert.Equal(t, "\"Error\"\n", out.String())
}

func TestRunDo_RejectsUnknownAction(t *testing.T) {
	var out bytes.Buffer
	err := RunDo(context.Background(), Options{}, DoOptions{Action: "deleteDeck"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reqPerm")
	assert.Empty(t, out.String())
}

func TestBuildRequest_ImageRules(t *testing.T) {
	_, err := buildRequest(DoOptions{Action: "addCardWithImage"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--image")

	path := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))
	_, err = buildRequest(DoOptions{Action: "addCardWithImage", ImagePath: path})
	require.Error(t, err)

	req, err := buildRequest(DoOptions{Action: " addCard ", Deck: " Bio ", Front: " keep spaces ", Tags: " t "})
	require.NoError(t, err)
	assert.Equal(t, bridge.ActionRequest{Action: bridge.ActionAddCard, Deck: "Bio", Front: " keep spaces ", Tags: "t"}, req)
}

func TestParseBatch(t *testing.T) {
	batch, err := ParseBatch(strings.NewReader(`{"flashcards":[{"front":"Q1","back":"A1"},{"front":"Why “this”?","back":"A2"}]}`))
	require.NoError(t, err)
	require.Len(t, batch.Flashcards, 2)
	assert.Equal(t, Flashcard{Front: "Q1", Back: "A1"}, batch.Flashcards[0])
	assert.Equal(t, "Why 'this'?", batch.Flashcards[1].Front)

	_, err = ParseBatch(strings.NewReader(`{"flashcards":[]}`))
	assert.ErrorIs(t, err, errEmptyBatch)

	_, err = ParseBatch(strings.NewReader(`{"flashcards":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse batch")
}

func TestRunAdd_AddsCardsInOrderAndReportsFailures(t *testing.T) {
	anki := &fakeAnki{failAdd: map[string]bool{"Q2": true}}
	opts := testOptions(t, anki)

	batch := `{"flashcards":[{"front":"Q1","back":"A1"},{"front":"Q2","back":"A2"},{"front":"Q3","back":"A3"}]}`
	var out bytes.Buffer
	err := RunAdd(context.Background(), opts, AddOptions{Deck: "Biology", Tags: "lecture-1", Path: "-"}, strings.NewReader(batch), &out)

	require.Error(t, err)
	assert.Equal(t, "1 of 3 cards failed", err.Error())
	assert.Equal(t, "1/3 1\n2/3 \"Error\"\n3/3 2\n", out.String())

	anki.mu.Lock()
	defer anki.mu.Unlock()
	require.Len(t, anki.requests, 3)
	var fronts []string
	for _, params := range anki.requests {
		note := params["note"].(map[string]any)
		assert.Equal(t, "Biology", note["deckName"])
		assert.Equal(t, []any{"lecture-1"}, note["tags"])
		fronts = append(fronts, note["fields"].(map[string]any)["Front"].(string))
	}
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, fronts)
}

func TestRunAdd_ReadsBatchFile(t *testing.T) {
	opts := testOptions(t, &fakeAnki{})
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"flashcards":[{"front":"Q","back":"A"}]}`), 0o600))

	var out bytes.Buffer
	require.NoError(t, RunAdd(context.Background(), opts, AddOptions{Deck: "Default", Path: path}, nil, &out))
	assert.Equal(t, "1/1 1\n", out.String())
}

func TestRunAdd_RequiresDeck(t *testing.T) {
	err := RunAdd(context.Background(), Options{}, AddOptions{Path: "-"}, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--deck")
}

func TestRunServe_RoundTrip(t *testing.T) {
	opts := testOptions(t, &fakeAnki{decks: []string{"Default"}})

	in := strings.NewReader(strings.Join([]string{
		`{"type":"render","id":"r1","args":{"action":"getDecks"}}`,
		`{"type":"render","id":"r2","args":{"action":"bogus"}}`,
	}, "\n") + "\n")
	var out bytes.Buffer
	require.NoError(t, RunServe(context.Background(), opts, in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		`{"type":"componentReady"}`,
		`{"type":"setFrameHeight"}`,
		`{"type":"setComponentValue","id":"r1","value":["Default"]}`,
		`{"type":"setFrameHeight","id":"r1"}`,
		`{"type":"setFrameHeight","id":"r2"}`,
	}, lines)
}

func TestPrime_RecordsPermissionAndDecks(t *testing.T) {
	opts := testOptions(t, &fakeAnki{decks: []string{"Biology"}})
	rt, err := setup(opts, true)
	require.NoError(t, err)
	defer rt.Close()

	store := &state.Store{}
	require.NoError(t, prime(context.Background(), store, rt.dispatcher, zap.NewNop()))

	snap := store.Snapshot()
	assert.True(t, snap.HasPermission)
	assert.Equal(t, true, snap.Permission)
	assert.Equal(t, []string{"Biology"}, snap.Decks)
}

func TestPrime_ReportsUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	t.Setenv("HOME", t.TempDir())
	rt, err := setup(Options{ConfigPath: filepath.Join(t.TempDir(), "c.toml"), LogLevel: "error", endpoint: srv.URL}, true)
	require.NoError(t, err)
	defer rt.Close()

	store := &state.Store{}
	require.Error(t, prime(context.Background(), store, rt.dispatcher, zap.NewNop()))
	assert.True(t, store.Snapshot().IsOffline())
}

func TestPrime_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := &state.Store{}
	err := prime(ctx, store, bridge.New(bridge.Deps{}), zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, bridge.Action(""), store.Snapshot().LastAction)
}

func TestRunLogs_FiltersByLevel(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	logFile := filepath.Join(home, "bridge.log")
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[log]\nfile = \""+logFile+"\"\n"), 0o600))
	require.NoError(t, os.WriteFile(logFile, []byte(strings.Join([]string{
		"2026-03-01T12:00:00.000Z\tDEBUG\tbridge\tdispatch",
		"2026-03-01T12:00:01.000Z\tWARN\tbridge\tadd note failed",
		"\tgoroutine trace",
		"2026-03-01T12:00:02.000Z\tINFO\thostio\thost session ended",
	}, "\n")+"\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, RunLogs(Options{ConfigPath: configPath}, LogsOptions{Lines: 3, MinLevel: "warn"}, &out))
	assert.Equal(t, "2026-03-01T12:00:01.000Z\tWARN\tbridge\tadd note failed\n\tgoroutine trace\n", out.String())
}
