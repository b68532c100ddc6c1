package app

import (
	"fmt"
	"io"

	"github.com/five82/ankibridge/internal/config"
	"github.com/five82/ankibridge/internal/logtail"
)

// LogsOptions are the arguments of the logs command.
type LogsOptions struct {
	Lines    int
	MinLevel string
	Color    bool
}

// RunLogs prints the tail of the bridge log file.
func RunLogs(opts Options, logs LogsOptions, out io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logtail.Read(cfg.LogFile, logs.Lines)
	if err != nil {
		return err
	}
	for _, line := range lines {
		entry, parsed := logtail.ParseLine(line)
		if !logtail.AtLeast(entry, parsed, logs.MinLevel) {
			continue
		}
		if logs.Color {
			line = logtail.ColorizeLine(line)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
