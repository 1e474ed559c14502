package service

import (
	"testing"

	"banking-rag-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findByRequirement(t *testing.T, findings []entity.GapFinding, substr string) *entity.GapFinding {
	t.Helper()
	for i := range findings {
		if containsAny(findings[i].Requirement, []string{substr}) {
			return &findings[i]
		}
	}
	require.Failf(t, "finding not found", "no finding with requirement containing %q", substr)
	return nil
}

func TestSynthesizeFindingsProbesEveryRequirement(t *testing.T) {
	findings := synthesizeFindings("", "")
	assert.Len(t, findings, len(gapProbes))
	for _, f := range findings {
		assert.Equal(t, entity.GapStatusNonCompliant, f.Status)
		assert.NotEmpty(t, f.Recommendation)
	}
}

func TestSynthesizeFindingsStatuses(t *testing.T) {
	normative := "La entidad debe notificar incidentes graves y evaluar sus riesgos anualmente."
	policy := "Nuestra política cubre la gestión y notificación de incidentes TIC."

	findings := synthesizeFindings(normative, policy)

	incident := findByRequirement(t, findings, "incidentes")
	assert.Equal(t, entity.GapStatusCompliant, incident.Status)
	assert.Empty(t, incident.Recommendation)
	assert.NotEmpty(t, incident.PolicyReference)

	risk := findByRequirement(t, findings, "riesgos")
	assert.Equal(t, entity.GapStatusPartial, risk.Status)
	assert.NotEmpty(t, risk.Recommendation)

	training := findByRequirement(t, findings, "Formación")
	assert.Equal(t, entity.GapStatusNonCompliant, training.Status)
}

func TestSynthesizeFindingsMatchingIsCaseInsensitive(t *testing.T) {
	upper := synthesizeFindings("", "POLÍTICA DE GESTIÓN DE INCIDENTES")
	incident := findByRequirement(t, upper, "incidentes")
	assert.Equal(t, entity.GapStatusCompliant, incident.Status)
}
