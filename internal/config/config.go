package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFallbackSubdirs are probed under a device or backup root when a
// location is browsed in fallback mode.
var DefaultFallbackSubdirs = []string{
	"Android/media/com.whatsapp/WhatsApp/Media/.Statuses",
	"WhatsApp/Media/.Statuses",
}

// Settings represents the optional config.toml in the data directory.
type Settings struct {
	StatusDir           string   `toml:"status_dir"`
	FallbackSubdirs     []string `toml:"fallback_subdirs"`
	SaveDir             string   `toml:"save_dir"`
	Player              string   `toml:"player"`
	EventBuffer         int      `toml:"event_buffer"`
	DiscardStaleFetches bool     `toml:"discard_stale_fetches"`
	LogLevel            string   `toml:"log_level"`
}

// Load reads config.toml and fills defaults for anything left unset. A
// missing file is not an error.
func Load() (Settings, error) {
	path, err := ConfigPath()
	if err != nil {
		return Settings{}, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &s); err != nil {
			return Settings{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := s.applyDefaults(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Defaults returns the settings used when config.toml is absent.
func Defaults() (Settings, error) {
	var s Settings
	if err := s.applyDefaults(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Write encodes s to path, creating parent directories.
func Write(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s)
}

func (s *Settings) applyDefaults() error {
	if len(s.FallbackSubdirs) == 0 {
		s.FallbackSubdirs = append([]string(nil), DefaultFallbackSubdirs...)
	}
	if s.SaveDir == "" {
		d, err := DataDir()
		if err != nil {
			return err
		}
		s.SaveDir = filepath.Join(d, "saved")
	}
	s.StatusDir = expandHome(s.StatusDir)
	s.SaveDir = expandHome(s.SaveDir)
	if s.EventBuffer <= 0 {
		s.EventBuffer = 32
	}
	return nil
}

// Level maps log_level to a slog level; unknown values mean warn.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(s.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
