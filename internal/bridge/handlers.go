package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"go.uber.org/zap"

	"github.com/five82/ankibridge/internal/ankiconnect"
)

const (
	// ModelName is the note type every card is created with.
	ModelName = "PDF-Anki-Note"

	// MobileHandoffURL asks the mobile Anki app to place deck and note-type
	// info on the clipboard.
	MobileHandoffURL = "anki://x-callback-url/infoForAdding"

	cardTemplateBack = "{{FrontSide}}\n\n<hr id=answer>\n\n{{Back}}<br><br>\n\nTags: {{Tags}}"
)

// ModelDefinition returns the createModel payload for ModelName.
func ModelDefinition() ankiconnect.CreateModelParams {
	return ankiconnect.CreateModelParams{
		ModelName:     ModelName,
		InOrderFields: []string{"Front", "Back"},
		IsCloze:       false,
		CardTemplates: []ankiconnect.CardTemplate{
			{
				Name:  "My Card 1",
				Front: "{{Front}}",
				Back:  cardTemplateBack,
			},
		},
	}
}

func (d *Dispatcher) requestPermission(ctx context.Context, req ActionRequest) Result {
	if d.deps.Notes == nil {
		return failed(req.Action, false, errNoNoteService)
	}
	perm, err := d.deps.Notes.RequestPermission(ctx)
	if err != nil {
		return failed(req.Action, false, fmt.Errorf("request permission: %w", err))
	}
	if !perm.Granted() {
		return failed(req.Action, false, fmt.Errorf("request permission: %q", perm.Permission))
	}

	models, err := d.deps.Notes.ModelNames(ctx)
	if err != nil {
		return failed(req.Action, false, fmt.Errorf("list models: %w", err))
	}
	if slices.Contains(models, ModelName) {
		return succeeded(req.Action, true)
	}

	created, err := d.deps.Notes.CreateModel(ctx, ModelDefinition())
	if err != nil {
		return failed(req.Action, false, fmt.Errorf("create model %s: %w", ModelName, err))
	}
	d.logger.Info("created note model", zap.String("model", ModelName))
	return succeeded(req.Action, created)
}

func (d *Dispatcher) addCard(ctx context.Context, req ActionRequest) Result {
	return d.submitNote(ctx, req, newNote(req))
}

func (d *Dispatcher) addCardWithImage(ctx context.Context, req ActionRequest) Result {
	note := newNote(req)
	note.Picture = []ankiconnect.MediaAttachment{{
		Data:     imageText(req.Image),
		Filename: PictureFilename(d.deps.Clock()),
		Fields:   []string{"Back"},
	}}
	return d.submitNote(ctx, req, note)
}

func (d *Dispatcher) submitNote(ctx context.Context, req ActionRequest, note ankiconnect.Note) Result {
	if d.deps.Notes == nil {
		return failed(req.Action, ErrorValue, errNoNoteService)
	}
	id, err := d.deps.Notes.AddNote(ctx, note)
	if err != nil {
		return failed(req.Action, ErrorValue, fmt.Errorf("add note to %q: %w", note.DeckName, err))
	}
	return succeeded(req.Action, id)
}

func newNote(req ActionRequest) ankiconnect.Note {
	return ankiconnect.Note{
		DeckName:  req.Deck,
		ModelName: ModelName,
		Fields:    ankiconnect.NoteFields{Front: req.Front, Back: req.Back},
		Options:   ankiconnect.NoteOptions{AllowDuplicate: false},
		Tags:      []string{req.Tags},
	}
}

func (d *Dispatcher) getDecks(ctx context.Context, req ActionRequest) Result {
	if d.deps.Notes == nil {
		return failed(req.Action, false, errNoNoteService)
	}
	decks, err := d.deps.Notes.DeckNames(ctx)
	if err != nil {
		return failed(req.Action, false, fmt.Errorf("list decks: %w", err))
	}
	if decks == nil {
		decks = []string{}
	}
	return succeeded(req.Action, decks)
}

// getDecksMobile hands off to the mobile app and reads its reply from the
// clipboard. Nothing confirms the app has written the clipboard before it is
// read; the clipboard is cleared afterwards even when the handoff or the
// read fails.
func (d *Dispatcher) getDecksMobile(ctx context.Context, req ActionRequest) Result {
	if d.deps.Opener == nil {
		return failed(req.Action, false, errNoOpener)
	}
	if err := d.deps.Opener.Open(ctx, d.mobileHandoffURL()); err != nil {
		err = fmt.Errorf("open handoff url: %w", err)
		if d.deps.Clipboard != nil {
			if clearErr := d.deps.Clipboard.WriteText(""); clearErr != nil {
				err = errors.Join(err, fmt.Errorf("clear clipboard: %w", clearErr))
			}
		}
		return failed(req.Action, false, err)
	}

	if d.deps.Clipboard == nil {
		return failed(req.Action, nil, errNoClipboard)
	}
	text, readErr := d.deps.Clipboard.ReadText()
	clearErr := d.deps.Clipboard.WriteText("")
	if readErr != nil {
		return failed(req.Action, nil, fmt.Errorf("read clipboard: %w", readErr))
	}
	if clearErr != nil {
		return failed(req.Action, nil, fmt.Errorf("clear clipboard: %w", clearErr))
	}
	return succeeded(req.Action, text)
}

func (d *Dispatcher) mobileHandoffURL() string {
	if d.deps.MobileSuccessURL == "" {
		return MobileHandoffURL
	}
	return MobileHandoffURL + "?" + url.Values{"x-success": {d.deps.MobileSuccessURL}}.Encode()
}

func (d *Dispatcher) getOS(_ context.Context, req ActionRequest) Result {
	if d.deps.Agent == nil {
		return succeeded(req.Action, "")
	}
	return succeeded(req.Action, d.deps.Agent.UserAgent())
}
