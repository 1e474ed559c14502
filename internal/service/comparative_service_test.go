package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJurisdictions(t *testing.T) {
	assert.Nil(t, parseJurisdictions(""))
	assert.Equal(t, []string{"ES"}, parseJurisdictions("es"))
	assert.Equal(t, []string{"ES", "FR", "UK"}, parseJurisdictions("ES,FR,UK"))
	assert.Equal(t, []string{"ES", "FR"}, parseJurisdictions(" es , fr "))
	assert.Equal(t, []string{"DE"}, parseJurisdictions(",DE,"))
}
