package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceDefaults(t *testing.T) {
	s := NewPreferenceStore()
	assert.Equal(t, ThemeSystem, s.Theme())
	assert.Equal(t, LanguageSpanish, s.Language())
	assert.True(t, s.SidebarOpen())
}

func TestSetThemeInvokesPresentationCallback(t *testing.T) {
	s := NewPreferenceStore()

	var applied []Theme
	s.OnThemeChange(func(th Theme) { applied = append(applied, th) })

	s.SetTheme(ThemeDark)
	s.SetTheme(ThemeLight)

	assert.Equal(t, []Theme{ThemeDark, ThemeLight}, applied)
	assert.Equal(t, ThemeLight, s.Theme())

	s.OnThemeChange(nil)
	s.SetTheme(ThemeSystem)
	assert.Len(t, applied, 2, "detached callback must not fire")
}

func TestSidebarToggle(t *testing.T) {
	s := NewPreferenceStore()
	s.ToggleSidebar()
	assert.False(t, s.SidebarOpen())
	s.ToggleSidebar()
	assert.True(t, s.SidebarOpen())
}

func TestPreferenceSnapshotRoundTrip(t *testing.T) {
	s := NewPreferenceStore()
	s.SetTheme(ThemeDark)
	s.SetLanguage(LanguageEnglish)
	s.SetSidebarOpen(false)

	data, err := s.Snapshot()
	require.NoError(t, err)

	restored := NewPreferenceStore()
	require.NoError(t, restored.Restore(data))
	assert.Equal(t, ThemeDark, restored.Theme())
	assert.Equal(t, LanguageEnglish, restored.Language())
	assert.False(t, restored.SidebarOpen())
}
