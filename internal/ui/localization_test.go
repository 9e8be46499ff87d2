package ui

import "testing"

func TestLocalizationDefaultsToEnglish(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected default language 'en', got %q", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyLoad); got != "Load" {
		t.Errorf("Expected 'Load', got %q", got)
	}
}

func TestLocalizationSwitchLanguage(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("ru")

	if got := l.GetText(KeySelectAll); got != "Выбрать все" {
		t.Errorf("Expected Russian select-all label, got %q", got)
	}
}

func TestLocalizationUnknownLanguageKeepsCurrent(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("de")

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected unknown language to keep 'en', got %q", l.GetCurrentLanguage())
	}
}

func TestLocalizationFallsBackToEnglish(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage("pt")

	// Every key is present in every language, so the fallback only fires
	// for unknown keys
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key echo for unknown key, got %q", got)
	}
}

func TestLocalizationAllLanguagesCoverAllKeys(t *testing.T) {
	l := NewLocalization()

	english := l.texts["en"]
	for lang, texts := range l.texts {
		for key := range english {
			if _, ok := texts[key]; !ok {
				t.Errorf("Expected language %q to define key %q", lang, key)
			}
		}
	}
}
