package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Close policy values. The policy is read once at startup and is not
// reconfigurable at runtime.
const (
	CloseActionMinimize = "minimize" // close gesture hides the window to the tray
	CloseActionQuit     = "quit"     // close gesture starts the shutdown protocol
)

// Config holds persistent user preferences.
// Stored as JSON at ~/.nodes/config.json.
type Config struct {
	CloseAction string `json:"close_action"` // "minimize" or "quit"
	Hotkey      string `json:"hotkey"`       // global show-window combo, e.g. "ctrl+shift+n"
}

// QuitOnClose reports whether the close gesture should quit instead of
// hiding to the tray.
func (c Config) QuitOnClose() bool {
	return c.CloseAction == CloseActionQuit
}

// defaultConfig returns factory defaults.
func defaultConfig() Config {
	return Config{CloseAction: CloseActionMinimize, Hotkey: "ctrl+shift+n"}
}

// ConfigService loads and saves user configuration.
type ConfigService struct {
	path string
}

// NewConfigService creates a ConfigService pointing to the standard config path.
func NewConfigService() *ConfigService {
	home, _ := os.UserHomeDir()
	return &ConfigService{
		path: filepath.Join(home, ".nodes", "config.json"),
	}
}

// newConfigServiceAt creates a ConfigService with a custom path (tests only).
func newConfigServiceAt(path string) *ConfigService {
	return &ConfigService{path: path}
}

// Load reads config from disk. Returns defaults if the file doesn't exist.
// If the file is corrupt it logs the error and writes fresh defaults.
func (c *ConfigService) Load() Config {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return defaultConfig()
	}
	if err != nil {
		log.Printf("config: read error: %v, using defaults", err)
		return defaultConfig()
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("config: parse error: %v, resetting to defaults", err)
		defaults := defaultConfig()
		_ = c.Save(defaults) // overwrite corrupt file
		return defaults
	}
	// Fill any zero-value fields with defaults.
	d := defaultConfig()
	if cfg.CloseAction == "" {
		cfg.CloseAction = d.CloseAction
	}
	if cfg.Hotkey == "" {
		cfg.Hotkey = d.Hotkey
	}
	return cfg
}

// Save writes the config to disk atomically (write to temp, then rename).
func (c *ConfigService) Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
