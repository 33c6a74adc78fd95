package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSettings_MissingFileYieldsDefaults(t *testing.T) {
	s := LoadSettings(filepath.Join(t.TempDir(), "absent.ini"))

	assert.Equal(t, 0.8, s.SFXVolume)
	assert.Equal(t, 0.5, s.MusicVolume)
	assert.False(t, s.FirstPerson)
	assert.True(t, s.VSync)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")

	s := LoadSettings(path)
	s.SFXVolume = 0.25
	s.MusicVolume = 1.0
	s.FirstPerson = true
	s.VSync = false
	assert.NoError(t, s.Save())

	back := LoadSettings(path)
	assert.Equal(t, 0.25, back.SFXVolume)
	assert.Equal(t, 1.0, back.MusicVolume)
	assert.True(t, back.FirstPerson)
	assert.False(t, back.VSync)
}

func TestLoadSettings_ClampsVolumesAndKeepsDefaultsOnJunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	body := "[audio]\nsfx_volume = 2.5\nmusic_volume = -1\n\n[video]\nfirst_person = true\nvsync = banana\n"
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s := LoadSettings(path)
	assert.Equal(t, 1.0, s.SFXVolume, "volume clamps into [0,1]")
	assert.Equal(t, 0.0, s.MusicVolume)
	assert.True(t, s.FirstPerson)
	assert.True(t, s.VSync, "an unparseable flag keeps its default")
}

func TestSettings_EmptyPathSaveIsNoop(t *testing.T) {
	s := LoadSettings("")
	assert.NoError(t, s.Save())
}
