package platform

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener hands URLs to the desktop's registered scheme handler.
type Opener struct {
	// command overrides the launcher; used by tests.
	command func(ctx context.Context, rawURL string) *exec.Cmd
}

// Open launches the handler for rawURL and waits for the launcher to exit.
// It does not wait for the target application to finish.
func (o Opener) Open(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("url %q has no scheme", rawURL)
	}
	build := o.command
	if build == nil {
		build = launcherCommand
	}
	cmd := build(ctx, u.String())
	if cmd == nil {
		return fmt.Errorf("no url launcher for %s", runtime.GOOS)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("open %s: %w (%s)", u.Scheme+"://", err, trimOutput(out))
	}
	return nil
}

func launcherCommand(ctx context.Context, rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", rawURL)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", rawURL)
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.CommandContext(ctx, "xdg-open", rawURL)
	default:
		return nil
	}
}

func trimOutput(out []byte) string {
	const limit = 200
	if len(out) > limit {
		out = out[:limit]
	}
	return string(out)
}
