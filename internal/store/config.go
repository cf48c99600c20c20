package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultDebounce = 500 * time.Millisecond

// GlobalConfig holds user preferences. Wiki data is never written here.
type GlobalConfig struct {
	// Seed is an optional seed file loaded instead of the built-in demo data.
	Seed string `json:"seed,omitempty"`

	// LogLevel is a logrus level name.
	LogLevel string `json:"logLevel,omitempty"`
	// LogFile receives log output when set.
	LogFile string `json:"logFile,omitempty"`

	Editor *EditorConfig `json:"editor,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type EditorConfig struct {
	// DebounceMs is the quiet period before an edit is written to the store.
	DebounceMs int `json:"debounceMs,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// SidebarWidth is the expanded sidebar width in cells.
	SidebarWidth int `json:"sidebarWidth,omitempty"`
}

// EditorDebounce returns the configured quiet period, or 500ms.
func (c *GlobalConfig) EditorDebounce() time.Duration {
	if c == nil || c.Editor == nil || c.Editor.DebounceMs <= 0 {
		return defaultDebounce
	}
	return time.Duration(c.Editor.DebounceMs) * time.Millisecond
}

func (c *GlobalConfig) Glyphs() string {
	if c == nil || c.TUI == nil || strings.TrimSpace(c.TUI.Glyphs) == "" {
		return "unicode"
	}
	return strings.ToLower(strings.TrimSpace(c.TUI.Glyphs))
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.wikispace).
	if v := strings.TrimSpace(os.Getenv("WIKISPACE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wikispace"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the config file. A missing file yields an empty config.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ConfigKeys lists the keys accepted by SetConfigValue.
func ConfigKeys() []string {
	return []string{"seed", "logLevel", "logFile", "editor.debounceMs", "tui.glyphs", "tui.sidebarWidth"}
}

// SetConfigValue assigns a single dotted key. An empty value clears it.
func (c *GlobalConfig) SetConfigValue(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "seed":
		c.Seed = value
	case "logLevel":
		c.LogLevel = value
	case "logFile":
		c.LogFile = value
	case "editor.debounceMs":
		n, err := atoiOrZero(value)
		if err != nil {
			return fmt.Errorf("editor.debounceMs: %w", err)
		}
		if c.Editor == nil {
			c.Editor = &EditorConfig{}
		}
		c.Editor.DebounceMs = n
	case "tui.glyphs":
		switch strings.ToLower(value) {
		case "", "unicode", "ascii":
		default:
			return fmt.Errorf("tui.glyphs: expected unicode|ascii, got %q", value)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Glyphs = strings.ToLower(value)
	case "tui.sidebarWidth":
		n, err := atoiOrZero(value)
		if err != nil {
			return fmt.Errorf("tui.sidebarWidth: %w", err)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.SidebarWidth = n
	default:
		return fmt.Errorf("unknown config key: %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", n)
	}
	return n, nil
}
