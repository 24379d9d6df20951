package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n", ""},
		{"lowercases", "ACME", "acme"},
		{"trims and collapses whitespace", "  Acme   Trading  ", "acme trading"},
		{"folds diacritics", "Pérez García Ñoño", "perez garcia nono"},
		{"keeps punctuation", "Acme S.R.L.", "acme s.r.l."},
		{"tabs and newlines collapse", "acme\t\ntrading", "acme trading"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "  PÉREZ  & Cía. ", "acme", "Ñandú   S.A."}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", s)

		folded := NormalizeFolded(s)
		assert.Equal(t, folded, NormalizeFolded(folded), "NormalizeFolded must be idempotent for %q", s)
	}
}

func TestNormalizeFolded(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ampersand becomes y", "Pérez & Hijos", "perez y hijos"},
		{"strips legal suffix punctuation", "Acme S.R.L.", "acme srl"},
		{"full legal name", "Pérez & Cía. S.R.L.", "perez y cia srl"},
		{"commas and dashes", "Gómez, López - Asociados", "gomez lopez asociados"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFolded(tt.input))
		})
	}
}
