package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomain(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"jean.dupont@Mairie-Lyon.fr", "mairie-lyon.fr"},
		{"weird@name@acme.example", "acme.example"},
		{"no-at-sign", ""},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, Domain(tt.address))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("mairie@commune.fr"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("   "))
	assert.False(t, IsValid("not an email"))
	assert.False(t, IsValid("missing-domain@"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "mairie@commune.fr", Normalize("  Mairie@Commune.FR "))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Mairie@Commune.fr", "mairie@commune.fr "))
	assert.False(t, Equal("a@commune.fr", "b@commune.fr"))
}
