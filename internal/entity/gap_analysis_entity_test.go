package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalRequirements)
	assert.Equal(t, 0, s.OverallScore)
}

func TestSummarizeCounts(t *testing.T) {
	findings := []GapFinding{
		{Status: GapStatusCompliant},
		{Status: GapStatusCompliant},
		{Status: GapStatusPartial},
		{Status: GapStatusNonCompliant},
	}

	s := Summarize(findings)
	assert.Equal(t, 4, s.TotalRequirements)
	assert.Equal(t, 2, s.Compliant)
	assert.Equal(t, 1, s.PartiallyCompliant)
	assert.Equal(t, 1, s.NonCompliant)
	// 2*100 + 1*50 = 250, / 4 = 62 (rounded down)
	assert.Equal(t, 62, s.OverallScore)
}

func TestSummarizeAllCompliant(t *testing.T) {
	findings := []GapFinding{
		{Status: GapStatusCompliant},
		{Status: GapStatusCompliant},
	}
	assert.Equal(t, 100, Summarize(findings).OverallScore)
}

func TestSummarizeAllNonCompliant(t *testing.T) {
	findings := []GapFinding{
		{Status: GapStatusNonCompliant},
		{Status: GapStatusNonCompliant},
	}
	assert.Equal(t, 0, Summarize(findings).OverallScore)
}
