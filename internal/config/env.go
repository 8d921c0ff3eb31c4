package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// appDirName is the application directory under the platform data directory.
const appDirName = "1key"

// Config contains all configuration parameters for the application.
// Every field is read from ONEKEY_<NAME>, e.g. ONEKEY_SIDECAR_COMMAND.
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	DataDir        string        `envconfig:"DATA_DIR"`
	SidecarCommand string        `envconfig:"SIDECAR_COMMAND" default:"node"`
	SidecarArgs    []string      `envconfig:"SIDECAR_ARGS" default:"sidecar/aztec-sidecar.js"`
	SidecarTimeout time.Duration `envconfig:"SIDECAR_TIMEOUT" default:"60s"` // negative disables the deadline
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

// envPrefix is the prefix of all environment variables read by Load.
const envPrefix = "ONEKEY"

// Load reads configuration from environment variables and fills in the
// platform data directory when ONEKEY_DATA_DIR is not set.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// DefaultDataDir returns the per-user application data directory:
// ~/.local/share/1key on Linux and other unix systems, the user config
// directory (Application Support, %AppData%) on macOS and Windows.
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin", "windows":
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get data directory: %w", err)
		}
		return filepath.Join(base, appDirName), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share", appDirName), nil
	}
}

// PromptForPIN prompts the user for the wallet PIN in the terminal.
// The PIN is read without echoing (hidden input).
// Caller must zero the returned slice after use for security.
func PromptForPIN(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the command interactively to enter the PIN")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read PIN: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("PIN cannot be empty")
	}

	pin := make([]byte, len(raw))
	copy(pin, raw)
	clear(raw)
	return pin, nil
}
