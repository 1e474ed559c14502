package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondMatchesPlaybook(t *testing.T) {
	r := NewCannedResponder(0)

	tests := []struct {
		name       string
		question   string
		language   string
		wantSource string
	}{
		{
			name:       "suitability question in spanish",
			question:   "¿Qué exige MiFID II sobre la evaluación de idoneidad?",
			language:   "es",
			wantSource: "MiFID II - Artículo 25",
		},
		{
			name:       "dora question in english",
			question:   "What does DORA require for operational resilience testing?",
			language:   "en",
			wantSource: "DORA - Reglamento (UE) 2022/2554",
		},
		{
			name:       "solvency pillars",
			question:   "Explica los pilares de Solvencia II",
			language:   "es",
			wantSource: "Solvencia II - Directiva 2009/138/CE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := r.Respond(context.Background(), tt.question, tt.language)
			require.NoError(t, err)
			require.NotEmpty(t, reply.Content)
			require.NotEmpty(t, reply.Citations)
			assert.Equal(t, tt.wantSource, reply.Citations[0].Source)
			assert.Greater(t, reply.Tokens, 0)
		})
	}
}

func TestRespondFallbackAndScores(t *testing.T) {
	r := NewCannedResponder(0)

	reply, err := r.Respond(context.Background(), "háblame del tiempo", "es")
	require.NoError(t, err)
	require.NotEmpty(t, reply.Citations)

	for _, c := range reply.Citations {
		assert.GreaterOrEqual(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, 1.0)
		assert.NotEmpty(t, c.Source)
		assert.NotEmpty(t, c.URL)
	}
}

func TestRespondEnglishVariant(t *testing.T) {
	r := NewCannedResponder(0)

	es, err := r.Respond(context.Background(), "mifid suitability", "es")
	require.NoError(t, err)
	en, err := r.Respond(context.Background(), "mifid suitability", "en")
	require.NoError(t, err)

	assert.NotEqual(t, es.Content, en.Content)
	assert.Equal(t, es.Citations, en.Citations, "citations do not depend on the reply language")
}
