package service

import (
	"testing"

	"banking-rag-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestRuleMatches(t *testing.T) {
	update := &entity.RegulatoryUpdate{
		Source:  "ESMA",
		Title:   "Directrices sobre requisitos de idoneidad MiFID II",
		Summary: "Evaluación de idoneidad en el asesoramiento de inversiones.",
		Tags:    []string{"protección del inversor"},
	}

	tests := []struct {
		name string
		rule entity.AlertRule
		want bool
	}{
		{
			name: "keyword in title",
			rule: entity.AlertRule{Keywords: []string{"mifid"}},
			want: true,
		},
		{
			name: "keyword in summary",
			rule: entity.AlertRule{Keywords: []string{"asesoramiento"}},
			want: true,
		},
		{
			name: "keyword in tags",
			rule: entity.AlertRule{Keywords: []string{"inversor"}},
			want: true,
		},
		{
			name: "source match is case insensitive",
			rule: entity.AlertRule{Sources: []string{"esma"}},
			want: true,
		},
		{
			name: "no match",
			rule: entity.AlertRule{Keywords: []string{"basilea"}, Sources: []string{"EBA"}},
			want: false,
		},
		{
			name: "empty keyword never matches",
			rule: entity.AlertRule{Keywords: []string{""}},
			want: false,
		},
		{
			name: "empty rule never matches",
			rule: entity.AlertRule{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ruleMatches(&tt.rule, update))
		})
	}
}
