package store

import (
	"encoding/json"
	"sync"
)

type Theme string

type Language string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"

	LanguageSpanish Language = "es"
	LanguageEnglish Language = "en"
)

// PreferenceStore holds the theme, language and sidebar-open slices. Each
// value has a single setter. The store is a pure data holder: applying a
// theme (swapping a root style class, etc.) is the presentation layer's
// job, hooked in through OnThemeChange.
type PreferenceStore struct {
	mu sync.RWMutex

	theme       Theme
	language    Language
	sidebarOpen bool

	onThemeChange func(Theme)
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		theme:       ThemeSystem,
		language:    LanguageSpanish,
		sidebarOpen: true,
	}
}

// OnThemeChange registers the presentation-side effect invoked after every
// SetTheme. Pass nil to detach.
func (s *PreferenceStore) OnThemeChange(fn func(Theme)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onThemeChange = fn
}

func (s *PreferenceStore) SetTheme(t Theme) {
	s.mu.Lock()
	s.theme = t
	fn := s.onThemeChange
	s.mu.Unlock()
	if fn != nil {
		fn(t)
	}
}

func (s *PreferenceStore) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *PreferenceStore) SetLanguage(l Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = l
}

func (s *PreferenceStore) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *PreferenceStore) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = !s.sidebarOpen
}

func (s *PreferenceStore) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = open
}

func (s *PreferenceStore) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

type preferenceSnapshot struct {
	Theme       Theme    `json:"theme"`
	Language    Language `json:"language"`
	SidebarOpen bool     `json:"sidebar_open"`
}

func (s *PreferenceStore) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(preferenceSnapshot{
		Theme:       s.theme,
		Language:    s.language,
		SidebarOpen: s.sidebarOpen,
	})
}

func (s *PreferenceStore) Restore(data []byte) error {
	var snap preferenceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = snap.Theme
	s.language = snap.Language
	s.sidebarOpen = snap.SidebarOpen
	return nil
}
