package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-browser/internal/model"
	"github.com/ytget/yt-browser/internal/platform"
)

// Quality presets for downloads
type QualityPreset string

const (
	QualityBest   QualityPreset = "best"
	QualityMedium QualityPreset = "medium"
	QualityAudio  QualityPreset = "audio"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyQualityPreset  = "quality_preset"
	KeyViewMode       = "browse_view_mode"
	KeyPageSize       = "browse_page_size"
	KeyAudioOnlyMusic = "audio_only_for_music"
	KeyLanguage       = "app_language"
)

// Default values
const (
	DefaultQualityPreset  = QualityMedium
	DefaultViewMode       = string(model.ViewModeList)
	DefaultPageSize       = 100
	DefaultAudioOnlyMusic = true
	DefaultLanguage       = "system"
)

// Page size bounds
const (
	MinPageSize = 10
	MaxPageSize = 500
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
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
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

// GetQualityPreset returns the configured quality preset
func (s *Settings) GetQualityPreset() QualityPreset {
	preset := s.app.Preferences().String(KeyQualityPreset)
	if preset == "" {
		s.SetQualityPreset(DefaultQualityPreset)
		return DefaultQualityPreset
	}
	return QualityPreset(preset)
}

// SetQualityPreset sets the quality preset
func (s *Settings) SetQualityPreset(preset QualityPreset) {
	s.app.Preferences().SetString(KeyQualityPreset, string(preset))
}

// GetViewMode returns the preferred browse view mode
func (s *Settings) GetViewMode() model.ViewMode {
	mode := s.app.Preferences().StringWithFallback(KeyViewMode, DefaultViewMode)
	if mode != string(model.ViewModeGrid) {
		return model.ViewModeList
	}
	return model.ViewModeGrid
}

// SetViewMode sets the preferred browse view mode
func (s *Settings) SetViewMode(mode model.ViewMode) {
	s.app.Preferences().SetString(KeyViewMode, string(mode))
}

// GetPageSize returns how many entries one collection page request asks for
func (s *Settings) GetPageSize() int {
	size := s.app.Preferences().Int(KeyPageSize)
	if size == 0 {
		return DefaultPageSize
	}
	if size < MinPageSize {
		return MinPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// SetPageSize sets the collection page size
func (s *Settings) SetPageSize(size int) {
	if size < MinPageSize {
		size = MinPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	s.app.Preferences().SetInt(KeyPageSize, size)
}

// GetAudioOnlyForMusic returns whether music entries default to audio-only
func (s *Settings) GetAudioOnlyForMusic() bool {
	return s.app.Preferences().BoolWithFallback(KeyAudioOnlyMusic, DefaultAudioOnlyMusic)
}

// SetAudioOnlyForMusic sets whether music entries default to audio-only
func (s *Settings) SetAudioOnlyForMusic(audioOnly bool) {
	s.app.Preferences().SetBool(KeyAudioOnlyMusic, audioOnly)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetQualityPresetOptions returns available quality preset options
func (s *Settings) GetQualityPresetOptions() []QualityPreset {
	return []QualityPreset{QualityBest, QualityMedium, QualityAudio}
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// DefaultsFunc returns the per-entry settings resolver used when an entry
// has no explicit override: music entries follow the audio-only preference,
// everything else uses the global quality preset.
func (s *Settings) DefaultsFunc() model.DefaultsFunc {
	return func(entry model.CollectionEntry) model.ItemSettings {
		return model.ItemSettings{
			AudioOnly: entry.IsMusic && s.GetAudioOnlyForMusic(),
			Quality:   string(s.GetQualityPreset()),
		}
	}
}
