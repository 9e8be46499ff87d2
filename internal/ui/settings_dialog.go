package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-browser/internal/config"
	"github.com/ytget/yt-browser/internal/platform"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog

	// UI components
	downloadDirEntry *widget.Entry
	qualitySelect    *widget.Select
	pageSizeEntry    *widget.Entry
	audioOnlyCheck   *widget.Check
	languageSelect   *widget.Select

	onLanguageChanged func(lang string)
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// SetOnLanguageChanged sets the language change callback
func (sd *SettingsDialog) SetOnLanguageChanged(fn func(lang string)) {
	sd.onLanguageChanged = fn
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	openDirBtn := widget.NewButton(IconFolder, sd.onOpenDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(browseDirBtn, openDirBtn), sd.downloadDirEntry)

	// Quality preset selection
	qualityOptions := []string{}
	for _, preset := range sd.settings.GetQualityPresetOptions() {
		qualityOptions = append(qualityOptions, string(preset))
	}
	sd.qualitySelect = widget.NewSelect(qualityOptions, nil)

	// Listing page size
	sd.pageSizeEntry = widget.NewEntry()
	sd.pageSizeEntry.SetPlaceHolder("10-500")

	// Audio-only default for music entries
	sd.audioOnlyCheck = widget.NewCheck(sd.localization.GetText(KeyAudioOnlyMusic), nil)

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyDownloadDirectory)),
		downloadDirRow,

		widget.NewLabel(sd.localization.GetText(KeyQualityPreset)),
		sd.qualitySelect,

		sd.audioOnlyCheck,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyPageSize)),
		sd.pageSizeEntry,

		widget.NewLabel(sd.localization.GetText(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 420))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.qualitySelect.SetSelected(string(sd.settings.GetQualityPreset()))
	sd.pageSizeEntry.SetText(strconv.Itoa(sd.settings.GetPageSize()))
	sd.audioOnlyCheck.SetChecked(sd.settings.GetAudioOnlyForMusic())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onOpenDirectory opens the download directory in the system file manager
func (sd *SettingsDialog) onOpenDirectory() {
	dir := sd.downloadDirEntry.Text
	if dir == "" {
		dir = sd.settings.GetDownloadDirectory()
	}
	if err := platform.OpenDirectoryInManager(dir); err != nil {
		dialog.ShowError(err, sd.window)
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	downloadDir := sd.downloadDirEntry.Text
	if downloadDir != "" {
		sd.settings.SetDownloadDirectory(downloadDir)
	}

	if sd.qualitySelect.Selected != "" {
		sd.settings.SetQualityPreset(config.QualityPreset(sd.qualitySelect.Selected))
	}

	if pageSize, err := strconv.Atoi(sd.pageSizeEntry.Text); err == nil {
		sd.settings.SetPageSize(pageSize)
	}

	sd.settings.SetAudioOnlyForMusic(sd.audioOnlyCheck.Checked)

	if lang := sd.languageSelect.Selected; lang != "" && lang != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(lang)
		if sd.onLanguageChanged != nil {
			sd.onLanguageChanged(lang)
		}
	}

	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved),
		sd.window,
	)
}
