package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Version is reported in the default user agent.
var Version = "0.1"

// Agent reports the platform identification string used by getOs.
type Agent struct {
	// Override replaces the generated string when non-empty.
	Override string
}

// UserAgent returns the configured override or
// "ankibridge/<version> (<goos>; <goarch>)".
func (a Agent) UserAgent() string {
	if s := strings.TrimSpace(a.Override); s != "" {
		return s
	}
	return fmt.Sprintf("ankibridge/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH)
}
