package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line.
type Entry struct {
	Time    string
	Level   string
	Logger  string
	Caller  string
	Message string
	Fields  string
}

// ParseLine splits a zap console or JSON line into its parts. Lines that
// match neither shape come back with only Message set and ok false.
func ParseLine(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		return parseJSON(trimmed)
	}
	return parseConsole(line)
}

func parseJSON(line string) (Entry, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: line}, false
	}
	entry := Entry{
		Time:    takeString(raw, "ts"),
		Level:   strings.ToUpper(takeString(raw, "level")),
		Logger:  takeString(raw, "logger"),
		Caller:  takeString(raw, "caller"),
		Message: takeString(raw, "msg"),
	}
	if entry.Level == "" {
		return Entry{Message: line}, false
	}
	delete(raw, "stacktrace")
	if len(raw) > 0 {
		if rest, err := json.Marshal(raw); err == nil {
			entry.Fields = string(rest)
		}
	}
	return entry, true
}

func takeString(raw map[string]json.RawMessage, key string) string {
	value, ok := raw[key]
	if !ok {
		return ""
	}
	delete(raw, key)
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return string(value)
	}
	return s
}

// parseConsole handles the tab-separated layout of zap's console encoder:
// time, level, optional logger name, optional caller, message, optional fields.
func parseConsole(line string) (Entry, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 || !isLevel(parts[1]) {
		return Entry{Message: line}, false
	}
	entry := Entry{Time: parts[0], Level: parts[1]}
	rest := parts[2:]
	if n := len(rest); n > 1 && strings.HasPrefix(rest[n-1], "{") {
		entry.Fields = rest[n-1]
		rest = rest[:n-1]
	}
	switch {
	case len(rest) >= 3:
		entry.Logger, entry.Caller = rest[0], rest[1]
		rest = rest[2:]
	case len(rest) == 2 && looksLikeCaller(rest[0]):
		entry.Caller = rest[0]
		rest = rest[1:]
	case len(rest) == 2:
		entry.Logger = rest[0]
		rest = rest[1:]
	}
	entry.Message = strings.Join(rest, " ")
	return entry, true
}

func isLevel(s string) bool {
	switch s {
	case "DEBUG", "INFO", "WARN", "ERROR", "DPANIC", "PANIC", "FATAL":
		return true
	}
	return false
}

func looksLikeCaller(s string) bool {
	colon := strings.LastIndex(s, ":")
	return colon > 0 && strings.HasSuffix(s[:colon], ".go")
}

var (
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	loggerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	callerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	fieldsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AFFF"))
	messageStyle = lipgloss.NewStyle()
	levelStyles  = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// ColorizeLine renders a log line with per-part styling. Unparseable lines
// are returned unchanged.
func ColorizeLine(line string) string {
	entry, ok := ParseLine(line)
	if !ok {
		return line
	}
	level, found := levelStyles[entry.Level]
	if !found {
		level = levelStyles["ERROR"]
	}

	parts := []string{timeStyle.Render(entry.Time), level.Render(entry.Level)}
	if entry.Logger != "" {
		parts = append(parts, loggerStyle.Render("["+entry.Logger+"]"))
	}
	parts = append(parts, messageStyle.Render(entry.Message))
	if entry.Fields != "" {
		parts = append(parts, fieldsStyle.Render(entry.Fields))
	}
	if entry.Caller != "" {
		parts = append(parts, callerStyle.Render(entry.Caller))
	}
	return strings.Join(parts, " ")
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}

// AtLeast reports whether entry's level is at or above min. Unparsed lines
// always pass so that continuation lines such as stack traces stay visible.
func AtLeast(entry Entry, parsed bool, min string) bool {
	if !parsed || strings.TrimSpace(min) == "" {
		return true
	}
	return levelRank(entry.Level) >= levelRank(strings.ToUpper(strings.TrimSpace(min)))
}

func levelRank(level string) int {
	switch level {
	case "DEBUG":
		return 0
	case "INFO":
		return 1
	case "WARN":
		return 2
	case "ERROR":
		return 3
	default:
		return 4
	}
}
