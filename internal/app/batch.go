package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/ankibridge/internal/bridge"
)

// Flashcard is one generated question/answer pair.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Batch is the file format consumed by the add command.
type Batch struct {
	Flashcards []Flashcard `json:"flashcards"`
}

// AddOptions are the arguments of the add command.
type AddOptions struct {
	Deck string
	Tags string
	Path string // "-" reads standard input
}

var errEmptyBatch = errors.New("batch has no flashcards")

// curlyQuotes are replaced before parsing; generated batches often contain them.
var curlyQuotes = strings.NewReplacer("“", "'", "”", "'", "„", "'")

// ParseBatch decodes a flashcard batch.
func ParseBatch(r io.Reader) (Batch, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("read batch: %w", err)
	}
	var batch Batch
	if err := json.Unmarshal([]byte(curlyQuotes.Replace(string(raw))), &batch); err != nil {
		return Batch{}, fmt.Errorf("parse batch: %w", err)
	}
	if len(batch.Flashcards) == 0 {
		return Batch{}, errEmptyBatch
	}
	return batch, nil
}

// RunAdd adds every card in the batch with one addCard invocation each, in
// order, and prints the host value for each. It keeps going after a failed
// card and reports the failure count at the end.
func RunAdd(ctx context.Context, opts Options, add AddOptions, in io.Reader, out io.Writer) error {
	if strings.TrimSpace(add.Deck) == "" {
		return errors.New("add needs --deck")
	}

	var src io.Reader = in
	if add.Path != "-" {
		file, err := os.Open(add.Path)
		if err != nil {
			return fmt.Errorf("open batch: %w", err)
		}
		defer file.Close()
		src = file
	}
	batch, err := ParseBatch(src)
	if err != nil {
		return err
	}

	rt, err := setup(opts, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	failures := 0
	total := len(batch.Flashcards)
	for i, card := range batch.Flashcards {
		if err := ctx.Err(); err != nil {
			return err
		}
		req := bridge.ActionRequest{
			Action: bridge.ActionAddCard,
			Deck:   strings.TrimSpace(add.Deck),
			Front:  card.Front,
			Back:   card.Back,
			Tags:   strings.TrimSpace(add.Tags),
		}
		result, _ := rt.dispatcher.Dispatch(ctx, req)
		rt.store.Record(result)

		value, err := json.Marshal(result.HostValue())
		if err != nil {
			return fmt.Errorf("encode value: %w", err)
		}
		fmt.Fprintf(out, "%d/%d %s\n", i+1, total, value)
		if result.Err != nil {
			failures++
			rt.logger.Warn("card not added", zap.Int("card", i+1), zap.Error(result.Err))
		}
	}

	snap := rt.store.Snapshot()
	rt.logger.Info("batch finished", zap.Int("added", len(snap.NoteIDs)), zap.Int("failed", failures))
	if failures > 0 {
		return fmt.Errorf("%d of %d cards failed", failures, total)
	}
	return nil
}
