package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/ankibridge/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ankibridge: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "ankibridge",
		Short:         "Bridge flashcard actions to a local AnkiConnect",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override log level: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(&opts),
		newTUICmd(&opts),
		newDoCmd(&opts),
		newAddCmd(&opts),
		newLogsCmd(&opts),
	)
	return root
}

func newServeCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Speak the line-delimited JSON host protocol on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunServe(cmd.Context(), *opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newTUICmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal host (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunTUI(cmd.Context(), *opts)
		},
	}
}

func newDoCmd(opts *app.Options) *cobra.Command {
	var do app.DoOptions
	cmd := &cobra.Command{
		Use:   "do ACTION",
		Short: "Run one action and print the value the host would receive",
		Long: "Run one action and print the value the host would receive.\n\n" +
			"Actions: reqPerm, addCard, addCardWithImage, getDecks, getDecksMobile, getOs.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			do.Action = args[0]
			return app.RunDo(cmd.Context(), *opts, do, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&do.Deck, "deck", "", "target deck")
	cmd.Flags().StringVar(&do.Front, "front", "", "front field")
	cmd.Flags().StringVar(&do.Back, "back", "", "back field")
	cmd.Flags().StringVar(&do.Tags, "tags", "", "tags, passed through as one string")
	cmd.Flags().StringVar(&do.ImagePath, "image", "", "image file for addCardWithImage")
	return cmd
}

func newAddCmd(opts *app.Options) *cobra.Command {
	var add app.AddOptions
	cmd := &cobra.Command{
		Use:   "add FILE",
		Short: `Add every card in a {"flashcards":[{"front","back"}]} file ("-" for stdin)`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			add.Path = args[0]
			return app.RunAdd(cmd.Context(), *opts, add, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&add.Deck, "deck", "", "target deck (required)")
	cmd.Flags().StringVar(&add.Tags, "tags", "", "tags applied to every card")
	_ = cmd.MarkFlagRequired("deck")
	return cmd
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var logs app.LogsOptions
	var noColor bool
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the bridge log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logs.Color = !noColor
			return app.RunLogs(*opts, logs, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&logs.Lines, "lines", "n", 200, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&logs.MinLevel, "level", "", "hide entries below this level")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "print lines without styling")
	return cmd
}
