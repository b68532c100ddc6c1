package hostio

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/ankibridge/internal/bridge"
)

// maxLineBytes bounds one inbound message; image payloads travel inline.
const maxLineBytes = 32 * 1024 * 1024

// Handler processes one render event. *bridge.Dispatcher implements it.
type Handler interface {
	Handle(ctx context.Context, host bridge.Host, req bridge.ActionRequest) (bridge.Result, error)
}

var _ Handler = (*bridge.Dispatcher)(nil)

// Server runs the line-delimited JSON host protocol.
type Server struct {
	Handler Handler
	Logger  *zap.Logger
	// OnResult, when set, observes every handled render.
	OnResult func(id string, req bridge.ActionRequest, result bridge.Result)
}

type inbound struct {
	line []byte
	err  error
}

// Serve announces readiness, then handles render events from in until EOF or
// ctx is cancelled. Malformed lines are logged and skipped.
//
// On cancellation Serve closes in when it is an io.Closer and waits for the
// reader to stop. Any other reader keeps a goroutine blocked in Read until
// the input ends.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.Handler == nil {
		return errors.New("hostio: handler is nil")
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("hostio")

	w := newWriter(out)
	startup := &eventHost{w: w}
	if err := startup.SetComponentReady(); err != nil {
		return err
	}
	if err := startup.SetFrameHeight(); err != nil {
		return err
	}
	logger.Info("host session started")

	lines := make(chan inbound)
	done := make(chan struct{})
	defer close(done)
	go readLines(in, lines, done)

	for {
		select {
		case <-ctx.Done():
			logger.Info("host session cancelled")
			if c, ok := in.(io.Closer); ok {
				_ = c.Close()
				for range lines {
				}
			}
			return nil
		case msg, ok := <-lines:
			if !ok {
				logger.Info("host session ended")
				return nil
			}
			if msg.err != nil {
				return fmt.Errorf("read host input: %w", msg.err)
			}
			if err := s.handleLine(ctx, w, logger, msg.line); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, w *writer, logger *zap.Logger, line []byte) error {
	if len(strings.TrimSpace(string(line))) == 0 {
		return nil
	}
	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		logger.Warn("skipping malformed message", zap.Error(err))
		return nil
	}
	if msg.Type != TypeRender {
		logger.Warn("skipping unexpected message", zap.String("type", msg.Type))
		return nil
	}
	var req bridge.ActionRequest
	if msg.Args != nil {
		req = *msg.Args
	}
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}

	result, err := s.Handler.Handle(ctx, &eventHost{w: w, id: id}, req)
	if s.OnResult != nil {
		s.OnResult(id, req, result)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", id, err)
	}
	return nil
}

func readLines(in io.Reader, lines chan<- inbound, done <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		select {
		case lines <- inbound{line: line}:
		case <-done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case lines <- inbound{err: err}:
		case <-done:
		}
	}
}
