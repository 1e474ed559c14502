package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "short prompt kept as-is",
			prompt: "¿Qué exige MiFID II sobre mejor ejecución?",
			want:   "¿Qué exige MiFID II sobre mejor ejecución?",
		},
		{
			name:   "surrounding whitespace trimmed",
			prompt: "  resumen de DORA  ",
			want:   "resumen de DORA",
		},
		{
			name:   "blank prompt falls back to the default title",
			prompt: "   ",
			want:   defaultConversationTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titleFromPrompt(tt.prompt))
		})
	}
}

func TestTitleFromPromptTruncatesLongPrompts(t *testing.T) {
	long := strings.Repeat("normativa ", 20)
	got := titleFromPrompt(long)

	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), maxDerivedTitleLen+1)
}
