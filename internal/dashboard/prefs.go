package dashboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Prefs is the persisted client preference file. It holds a single theme key.
type Prefs struct {
	mu     sync.Mutex
	path   string
	system string
	theme  string
}

type prefsFile struct {
	Theme string `yaml:"theme,omitempty"`
}

// LoadPrefs reads the preference file at path. A missing file or key falls
// back to system, the host's theme.
func LoadPrefs(path, system string) (*Prefs, error) {
	if system != ThemeDark {
		system = ThemeLight
	}
	p := &Prefs{path: path, system: system}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var f prefsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if f.Theme == ThemeDark || f.Theme == ThemeLight {
		p.theme = f.Theme
	}

	return p, nil
}

// Theme returns the stored theme, or the system theme when none is stored.
func (p *Prefs) Theme() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.theme == "" {
		return p.system
	}
	return p.theme
}

// Toggle flips the theme and writes it to the preference file.
func (p *Prefs) Toggle() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.theme
	if current == "" {
		current = p.system
	}
	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}

	data, err := yaml.Marshal(prefsFile{Theme: next})
	if err != nil {
		return current, fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return current, fmt.Errorf("failed to write preferences: %w", err)
	}

	p.theme = next
	return next, nil
}
