package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyLoad              = "load"
	KeyRetry             = "retry"
	KeyRefresh           = "refresh"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyQualityPreset     = "quality_preset"
	KeyPageSize          = "page_size"
	KeyAudioOnlyMusic    = "audio_only_music"
	KeyOpenFolder        = "open_folder"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeySearchEntries     = "search_entries"
	KeySelectAll         = "select_all"
	KeyDeselectAll       = "deselect_all"
	KeyDownloadSelected  = "download_selected"
	KeySelectedCount     = "selected_count"
	KeyLoadingEntries    = "loading_entries"
	KeyLoadFailed        = "load_failed"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyNothingSelected   = "nothing_selected"
	KeyDownloadsQueued   = "downloads_queued"
	KeySettingsSaved     = "settings_saved"
	KeyNoEntries         = "no_entries"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Browser",
		KeyLoad:              "Load",
		KeyRetry:             "Retry",
		KeyRefresh:           "Refresh",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyQualityPreset:     "Quality Preset",
		KeyPageSize:          "Entries per Page",
		KeyAudioOnlyMusic:    "Audio only for music",
		KeyOpenFolder:        "Open Folder",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Enter playlist or channel URL (https://youtube.com/playlist?list=...)",
		KeySearchEntries:     "Search in collection",
		KeySelectAll:         "Select All",
		KeyDeselectAll:       "Deselect All",
		KeyDownloadSelected:  "Download Selected",
		KeySelectedCount:     "selected",
		KeyLoadingEntries:    "Loading entries...",
		KeyLoadFailed:        "Failed to load collection",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyNothingSelected:   "Nothing selected",
		KeyDownloadsQueued:   "Downloads queued",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyNoEntries:         "No entries found",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Браузер",
		KeyLoad:              "Загрузить",
		KeyRetry:             "Повторить",
		KeyRefresh:           "Обновить",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyQualityPreset:     "Предустановка качества",
		KeyPageSize:          "Записей на страницу",
		KeyAudioOnlyMusic:    "Только аудио для музыки",
		KeyOpenFolder:        "Открыть папку",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Введите URL плейлиста или канала (https://youtube.com/playlist?list=...)",
		KeySearchEntries:     "Поиск по коллекции",
		KeySelectAll:         "Выбрать все",
		KeyDeselectAll:       "Снять выбор",
		KeyDownloadSelected:  "Скачать выбранные",
		KeySelectedCount:     "выбрано",
		KeyLoadingEntries:    "Загрузка записей...",
		KeyLoadFailed:        "Не удалось загрузить коллекцию",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyNothingSelected:   "Ничего не выбрано",
		KeyDownloadsQueued:   "Загрузки добавлены в очередь",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyNoEntries:         "Записи не найдены",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Browser",
		KeyLoad:              "Carregar",
		KeyRetry:             "Tentar novamente",
		KeyRefresh:           "Atualizar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyQualityPreset:     "Predefinição de Qualidade",
		KeyPageSize:          "Entradas por Página",
		KeyAudioOnlyMusic:    "Somente áudio para música",
		KeyOpenFolder:        "Abrir Pasta",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "Digite URL da playlist ou canal (https://youtube.com/playlist?list=...)",
		KeySearchEntries:     "Pesquisar na coleção",
		KeySelectAll:         "Selecionar Tudo",
		KeyDeselectAll:       "Desmarcar Tudo",
		KeyDownloadSelected:  "Baixar Selecionados",
		KeySelectedCount:     "selecionados",
		KeyLoadingEntries:    "Carregando entradas...",
		KeyLoadFailed:        "Falha ao carregar coleção",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyNothingSelected:   "Nada selecionado",
		KeyDownloadsQueued:   "Downloads enfileirados",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyNoEntries:         "Nenhuma entrada encontrada",
	}
}
