package ui

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-browser/internal/config"
	"github.com/ytget/yt-browser/internal/download"
	"github.com/ytget/yt-browser/internal/fetch"
	"github.com/ytget/yt-browser/internal/loader"
	"github.com/ytget/yt-browser/internal/model"
	"github.com/ytget/yt-browser/internal/platform"
	"github.com/ytget/yt-browser/internal/viewcache"
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window
	app    fyne.App

	settings     *config.Settings
	localization *Localization
	mobileUI     *MobileUI

	fetchSvc  *fetch.Service
	loaderSvc *loader.Service
	viewCache *viewcache.Cache
	planner   *download.Planner
	submitter download.Submitter

	browse         *BrowseScreen
	settingsDialog *SettingsDialog

	// UI components
	urlEntry    *widget.Entry
	loadBtn     *widget.Button
	downloadBtn *widget.Button

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, fetchSvc *fetch.Service, submitter download.Submitter) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	// Ensure the download directory exists
	downloadsDir := settings.GetDownloadDirectory()
	platform.CreateDirectoryIfNotExists(downloadsDir)

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		mobileUI:     NewMobileUI(app),
		fetchSvc:     fetchSvc,
		loaderSvc:    loader.NewService(fetchSvc, settings.GetPageSize()),
		viewCache:    viewcache.New(),
		planner:      download.NewPlanner(settings.DefaultsFunc(), downloadsDir),
		submitter:    submitter,
	}

	log.Printf("RootUI initialized with submitter: %v", ui.submitter != nil)

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// URL entry
	ui.urlEntry = ui.mobileUI.CreateMobileEntry(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	// Pressing Enter in the URL field loads the collection
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onLoadClick()
	}

	ui.loadBtn = ui.mobileUI.CreateMobileButton(ui.localization.GetText(KeyLoad), ui.onLoadClick)
	ui.downloadBtn = ui.mobileUI.CreateMobileButton(ui.localization.GetText(KeyDownloadSelected), ui.onDownloadClick)

	settingsBtn := ui.mobileUI.CreateMobileButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	refreshBtn := ui.mobileUI.CreateMobileButton(IconRefresh, ui.onRefreshClick)
	refreshBtn.Importance = widget.LowImportance

	// Logo next to the settings button, text-free fallback when missing
	logo, err := LoadLogoResource()
	var leading *fyne.Container
	if err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		leading = container.NewHBox(logoImage, settingsBtn)
	} else {
		leading = container.NewHBox(settingsBtn)
	}

	topPanel := container.NewBorder(nil, nil, leading,
		container.NewHBox(refreshBtn, ui.loadBtn, ui.downloadBtn), ui.urlEntry)

	// Notification panel under URL input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Browse screen fills the center
	ui.browse = NewBrowseScreen(ui.settings, ui.localization, ui.viewCache, ui.loaderSvc)
	ui.browse.SetCallbacks(ui.onBrowseStatus, ui.onDownloadSelected, ui.onBrowseRefresh)
	ui.loaderSvc.SetProgressCallback(ui.onLoadProgress)

	var center fyne.CanvasObject = ui.browse.Container()
	if ui.mobileUI.IsMobileDevice() {
		center = NewPullToRefreshWidget(center, ui.onRefreshClick)
	}

	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		center,
	)

	ui.window.SetContent(content)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	openFolderItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenFolder), ui.onOpenDownloadFolder)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, openFolderItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.loadBtn.SetText(ui.localization.GetText(KeyLoad))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownloadSelected))
	ui.browse.RefreshTexts()
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// onLoadClick opens the collection behind the entered URL
func (ui *RootUI) onLoadClick() {
	sourceURL := strings.TrimSpace(ui.urlEntry.Text)
	if sourceURL == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}
	if err := ui.validateURL(sourceURL); err != nil || !fetch.IsYouTubeURL(sourceURL) {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL), false)
		return
	}

	ui.hideNotification()
	ui.browse.Open(sourceURL)
}

// onRefreshClick reloads the current collection from the network
func (ui *RootUI) onRefreshClick() {
	ui.browse.Reload()
}

// onBrowseRefresh drops the listing cache before a reload
func (ui *RootUI) onBrowseRefresh(sourceURL string) {
	ui.fetchSvc.Invalidate(sourceURL)
}

// onLoadProgress reports paginated loading progress
func (ui *RootUI) onLoadProgress(loaded, total int) {
	fyne.Do(func() {
		ui.showNotification(fmt.Sprintf("%s %d / %d", ui.localization.GetText(KeyLoadingEntries), loaded, total), true)
	})
}

// onBrowseStatus shows or clears the notification panel for the browse screen
func (ui *RootUI) onBrowseStatus(message string, busy bool) {
	if message == "" {
		ui.hideNotification()
		return
	}
	ui.showNotification(message, busy)
}

// onDownloadClick hands off the current selection
func (ui *RootUI) onDownloadClick() {
	ui.browse.DownloadSelected()
}

// onDownloadSelected plans the selected entries and submits them
func (ui *RootUI) onDownloadSelected(collection *model.CollectionInfo, state *model.ViewState) {
	ui.planner.SetOutputDir(ui.settings.GetDownloadDirectory())

	go func() {
		count, err := ui.planner.PlanAndSubmit(context.Background(), collection, state, ui.submitter)
		fyne.Do(func() {
			if err != nil {
				ui.showNotification(fmt.Sprintf("%s: %v", ui.localization.GetText(KeyLoadFailed), err), false)
				return
			}
			ui.showNotification(fmt.Sprintf("%s: %d", ui.localization.GetText(KeyDownloadsQueued), count), false)
		})
	}()
}

// onOpenDownloadFolder opens the downloads directory in the file manager
func (ui *RootUI) onOpenDownloadFolder() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.OpenDirectoryInManager(dir); err != nil {
		log.Printf("Failed to open download directory: %v", err)
		ui.showNotification(fmt.Sprintf("%v", err), false)
	}
}

// showNotification displays a message in the notification panel under the
// URL input. When spinning is true, a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
		ui.notificationSpinner.Start()
	} else {
		ui.notificationSpinner.Stop()
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Stop()
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	if ui.settingsDialog == nil {
		ui.settingsDialog = NewSettingsDialog(ui.settings, ui.localization, ui.window)
		ui.settingsDialog.SetOnLanguageChanged(ui.onLanguageChange)
	}
	ui.settingsDialog.Show()
}

// Shutdown flushes browsing state before the window closes
func (ui *RootUI) Shutdown() {
	ui.browse.Destroy()
}
