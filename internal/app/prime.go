package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/five82/ankibridge/internal/bridge"
	"github.com/five82/ankibridge/internal/state"
)

// primeActions run once at startup: permission and model bootstrap, then
// the deck list that feeds completions.
var primeActions = []bridge.Action{
	bridge.ActionRequestPermission,
	bridge.ActionGetDecks,
}

// prime records the startup actions in store. It stops early when the
// context is cancelled and returns the first action error otherwise, after
// attempting every action.
func prime(ctx context.Context, store *state.Store, dispatcher *bridge.Dispatcher, logger *zap.Logger) error {
	var firstErr error
	for _, action := range primeActions {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, _ := dispatcher.Dispatch(ctx, bridge.ActionRequest{Action: action})
		store.Record(result)
		if result.Err != nil {
			logger.Debug("startup action failed", zap.String("action", string(action)), zap.Error(result.Err))
			if firstErr == nil {
				firstErr = result.Err
			}
		}
	}
	if firstErr != nil && errors.Is(firstErr, context.Canceled) {
		return context.Canceled
	}
	return firstErr
}
