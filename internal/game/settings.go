package game

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Settings are the user options persisted between runs.
type Settings struct {
	SFXVolume   float64
	MusicVolume float64
	FirstPerson bool
	VSync       bool

	path string
}

func defaultSettings() Settings {
	return Settings{
		SFXVolume:   0.8,
		MusicVolume: 0.5,
		FirstPerson: false,
		VSync:       true,
	}
}

// userConfigDir returns the per-user directory holding settings and
// highscores, creating it if needed.
func userConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir := filepath.Join(base, "speedrush")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// LoadSettings reads the INI file at path. A missing or unreadable file
// yields the defaults; individual bad values fall back per key.
func LoadSettings(path string) *Settings {
	s := defaultSettings()
	s.path = path

	cfg, err := ini.Load(path)
	if err != nil {
		return &s
	}
	audio := cfg.Section("audio")
	s.SFXVolume = clampF(audio.Key("sfx_volume").MustFloat64(s.SFXVolume), 0, 1)
	s.MusicVolume = clampF(audio.Key("music_volume").MustFloat64(s.MusicVolume), 0, 1)

	video := cfg.Section("video")
	s.FirstPerson = video.Key("first_person").MustBool(s.FirstPerson)
	s.VSync = video.Key("vsync").MustBool(s.VSync)
	return &s
}

// Save writes the settings back out. Best effort: the game never refuses to
// run because the settings file could not be written.
func (s *Settings) Save() error {
	if s.path == "" {
		return nil
	}
	cfg := ini.Empty()
	audio := cfg.Section("audio")
	audio.Key("sfx_volume").SetValue(fmt.Sprintf("%.2f", s.SFXVolume))
	audio.Key("music_volume").SetValue(fmt.Sprintf("%.2f", s.MusicVolume))

	video := cfg.Section("video")
	video.Key("first_person").SetValue(fmt.Sprintf("%t", s.FirstPerson))
	video.Key("vsync").SetValue(fmt.Sprintf("%t", s.VSync))

	if err := cfg.SaveTo(s.path); err != nil {
		return fmt.Errorf("save settings to %s: %w", s.path, err)
	}
	return nil
}
