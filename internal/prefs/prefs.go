// Package prefs persists interactive ankibridge preferences between runs.
// Preferences are stored in ~/.config/ankibridge/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for the terminal host.
type Prefs struct {
	Theme string `toml:"theme"`

	// LastDeck and LastTags seed the card form with the values of the last
	// successful add.
	LastDeck string `toml:"last_deck,omitempty"`
	LastTags string `toml:"last_tags,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/ankibridge/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Remember records the deck and tags of a card that was added.
func (p *Prefs) Remember(deck, tags string) {
	p.LastDeck = deck
	p.LastTags = tags
	p.normalize()
}

// normalize trims the deck, collapses tag whitespace to single spaces and
// restores the default theme when none is set.
func (p *Prefs) normalize() {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastDeck = strings.TrimSpace(p.LastDeck)
	p.LastTags = strings.Join(strings.Fields(p.LastTags), " ")
}

// Load reads preferences from path. A missing, unreadable or malformed file
// yields defaults; preferences never block startup.
func Load(path string) (Prefs, error) {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p, nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p, nil
	}

	var loaded Prefs
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return p, nil
	}
	loaded.normalize()
	return loaded, nil
}

// Save writes preferences to path, creating directories as needed. The file
// is replaced through a rename.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	p.normalize()

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(trimmed, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, rest)
	}
	return filepath.Abs(trimmed)
}
