package app

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/five82/ankibridge/internal/bridge"
	"github.com/five82/ankibridge/internal/hostio"
)

// RunServe speaks the line-delimited host protocol on in and out until in
// reaches EOF or the context is cancelled.
func RunServe(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	rt, err := setup(opts, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	server := &hostio.Server{
		Handler: rt.dispatcher,
		Logger:  rt.logger,
		OnResult: func(id string, req bridge.ActionRequest, result bridge.Result) {
			if result.Action == "" {
				return
			}
			rt.store.Record(result)
			snap := rt.store.Snapshot()
			rt.logger.Debug("session updated",
				zap.String("id", id),
				zap.String("action", string(req.Action)),
				zap.Int("notes_added", len(snap.NoteIDs)),
				zap.Int("consecutive_failures", snap.ConsecutiveFailures),
			)
			if snap.IsOffline() {
				rt.logger.Warn("ankiconnect appears offline", zap.Int("consecutive_failures", snap.ConsecutiveFailures))
			}
		},
	}
	rt.logger.Info("stdio host starting", zap.String("endpoint", rt.client.Endpoint()))
	return server.Serve(ctx, in, out)
}
