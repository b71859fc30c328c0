package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/media-player/internal/model"
	"github.com/ytget/media-player/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir = "download_directory"
	KeyMediaKind   = "media_kind"
	KeyVolume      = "playback_volume"
	KeyAutoRefresh = "auto_refresh_library"
)

// Default values
const (
	DefaultMediaKind   = model.MediaKindVideo
	DefaultVolume      = 100
	DefaultAutoRefresh = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.HomeMediaDir()
		if err != nil {
			defaultDir = "/tmp/" + platform.MediaDirName
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMediaKind returns the default media kind for new downloads
func (s *Settings) GetMediaKind() model.MediaKind {
	kind := s.app.Preferences().String(KeyMediaKind)
	if kind == "" {
		s.SetMediaKind(DefaultMediaKind)
		return DefaultMediaKind
	}
	return model.MediaKind(kind)
}

// SetMediaKind sets the default media kind
func (s *Settings) SetMediaKind(kind model.MediaKind) {
	s.app.Preferences().SetString(KeyMediaKind, kind.String())
}

// GetVolume returns the persisted playback volume as a percentage
func (s *Settings) GetVolume() int {
	return clampVolume(s.app.Preferences().IntWithFallback(KeyVolume, DefaultVolume))
}

// SetVolume persists the playback volume, clamped to [0,100]
func (s *Settings) SetVolume(percent int) {
	s.app.Preferences().SetInt(KeyVolume, clampVolume(percent))
}

// GetAutoRefreshLibrary returns whether the sidebar refreshes itself after
// each completed download
func (s *Settings) GetAutoRefreshLibrary() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRefresh, DefaultAutoRefresh)
}

// SetAutoRefreshLibrary sets whether the sidebar auto-refreshes
func (s *Settings) SetAutoRefreshLibrary(autoRefresh bool) {
	s.app.Preferences().SetBool(KeyAutoRefresh, autoRefresh)
}

func clampVolume(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
