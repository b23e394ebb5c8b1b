package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"accents", "Gênesis", "genesis"},
		{"spaces", "1 Coríntios", "1corintios"},
		{"tabs and newlines", "Cântico\tdos\nCânticos", "canticodoscanticos"},
		{"already folded", "jhn", "jhn"},
		{"cedilla", "Ação", "acao"},
		{"uppercase", "ÊXODO", "exodo"},
		{"hebrew points kept", "בְּרֵאשִׁית", norm.NFD.String("בְּרֵאשִׁית")},
		{"devanagari signs kept", "हिंदी", norm.NFD.String("हिंदी")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Primeira Epístola de João", "epistola"))
	assert.True(t, Contains("Song of Solomon", "ofsol"))
	assert.True(t, Contains("anything", ""))
	assert.False(t, Contains("Genesis", "exodus"))
}
