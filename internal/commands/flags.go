package commands

import (
	"os"
	"path/filepath"
)

// Flags holds the global CLI flag values shared by all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "deskbot", "config.yaml")
}
