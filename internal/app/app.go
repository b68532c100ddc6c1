package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/ankibridge/internal/ankiconnect"
	"github.com/five82/ankibridge/internal/bridge"
	"github.com/five82/ankibridge/internal/config"
	"github.com/five82/ankibridge/internal/logging"
	"github.com/five82/ankibridge/internal/platform"
	"github.com/five82/ankibridge/internal/prefs"
	"github.com/five82/ankibridge/internal/state"
	"github.com/five82/ankibridge/internal/ui"
)

// Options configure every ankibridge command.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/ankibridge/prefs.toml
	LogLevel   string // overrides the configured level when set

	// endpoint replaces the fixed AnkiConnect address in tests.
	endpoint string
}

// runtime holds the collaborators shared by the commands.
type runtime struct {
	cfg        config.Config
	logger     *zap.Logger
	client     *ankiconnect.Client
	dispatcher *bridge.Dispatcher
	store      *state.Store
	closeLog   func()
}

// setup loads configuration and wires the dispatcher to the real platform.
// Interactive sessions log to the file only so the terminal stays clean.
func setup(opts Options, interactive bool) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Stderr: !interactive,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	endpoint := opts.endpoint
	if endpoint == "" {
		endpoint = ankiconnect.DefaultEndpoint
	}
	client, err := ankiconnect.NewClient(endpoint)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("init ankiconnect client: %w", err)
	}

	dispatcher := bridge.New(bridge.Deps{
		Notes:            client,
		Clipboard:        platform.Clipboard{},
		Opener:           platform.Opener{},
		Agent:            platform.Agent{Override: cfg.UserAgent},
		Logger:           logger,
		MobileSuccessURL: cfg.MobileSuccessURL,
	})

	return &runtime{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		dispatcher: dispatcher,
		store:      &state.Store{},
		closeLog:   closeLog,
	}, nil
}

func (r *runtime) Close() {
	if r.closeLog != nil {
		r.closeLog()
	}
}

// RunTUI boots the interactive terminal host until the user quits or the
// context is cancelled.
func RunTUI(ctx context.Context, opts Options) error {
	rt, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	// Populate the store before the UI starts, as the browser host does on load.
	if err := prime(ctx, rt.store, rt.dispatcher, rt.logger); err != nil && !errors.Is(err, context.Canceled) {
		rt.logger.Warn("ankiconnect not ready", zap.Error(err))
	}

	rt.logger.Info("terminal host starting", zap.String("endpoint", rt.client.Endpoint()))
	return ui.Run(ui.Options{
		Context:   ctx,
		Handler:   rt.dispatcher,
		Store:     rt.store,
		PrefsPath: opts.PrefsPath,
		Prefs:     userPrefs,
	})
}
