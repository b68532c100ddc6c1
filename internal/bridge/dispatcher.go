package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Deps are the collaborators a Dispatcher calls out to.
type Deps struct {
	Notes     NoteService
	Clipboard Clipboard
	Opener    URLOpener
	Agent     UserAgent
	Clock     Clock
	Logger    *zap.Logger

	// MobileSuccessURL, when set, is passed as the x-success callback of the
	// mobile handoff URL.
	MobileSuccessURL string
}

type handlerFunc func(ctx context.Context, req ActionRequest) Result

// Dispatcher maps an ActionRequest to its handler and reports the outcome to
// a Host. It keeps no state between invocations.
type Dispatcher struct {
	deps     Deps
	logger   *zap.Logger
	handlers map[Action]handlerFunc
}

// New builds a Dispatcher. Missing capabilities make their actions fail
// with the action's sentinel rather than panicking.
func New(deps Deps) *Dispatcher {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		deps:   deps,
		logger: logger.Named("bridge"),
	}
	d.handlers = map[Action]handlerFunc{
		ActionRequestPermission: d.requestPermission,
		ActionAddCard:           d.addCard,
		ActionAddCardWithImage:  d.addCardWithImage,
		ActionGetDecks:          d.getDecks,
		ActionGetDecksMobile:    d.getDecksMobile,
		ActionGetOS:             d.getOS,
	}
	return d
}

var (
	errNoNoteService = errors.New("no note service configured")
	errNoClipboard   = errors.New("no clipboard available")
	errNoOpener      = errors.New("no url opener available")
)

// Dispatch runs the handler for req. The boolean is false when the action is
// not recognized, in which case the Result is empty.
func (d *Dispatcher) Dispatch(ctx context.Context, req ActionRequest) (Result, bool) {
	handler, ok := d.handlers[req.Action]
	if !ok {
		d.logger.Debug("ignoring unrecognized action", zap.String("action", string(req.Action)))
		return Result{}, false
	}

	start := time.Now()
	result := handler(ctx, req)
	fields := []zap.Field{
		zap.String("action", string(req.Action)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if result.Err != nil {
		d.logger.Warn("action failed", append(fields, zap.Error(result.Err), zap.Any("reported", result.HostValue()))...)
	} else {
		d.logger.Debug("action completed", fields...)
	}
	return result, true
}

// Handle performs one render cycle: dispatch req, report at most one value to
// host, then signal a frame resize whatever the outcome. Errors returned are
// host delivery failures only; action failures are reported as sentinels.
func (d *Dispatcher) Handle(ctx context.Context, host Host, req ActionRequest) (Result, error) {
	result, handled := d.Dispatch(ctx, req)

	var errs []error
	if handled {
		if err := host.SetComponentValue(result.HostValue()); err != nil {
			errs = append(errs, fmt.Errorf("set component value: %w", err))
		}
	}
	if err := host.SetFrameHeight(); err != nil {
		errs = append(errs, fmt.Errorf("set frame height: %w", err))
	}
	return result, errors.Join(errs...)
}
