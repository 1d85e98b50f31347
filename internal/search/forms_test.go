package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingularAndPlural(t *testing.T) {
	tests := []struct {
		token string
		want  Forms
	}{
		{"tomates", Forms{Singular: "tomate", Plural: "tomates"}},
		{"oeuf", Forms{Singular: "oeuf", Plural: "oeufs"}},
		{"s", Forms{Singular: "", Plural: "s"}},
		{"ananas", Forms{Singular: "anana", Plural: "ananas"}},
		{"noix", Forms{Singular: "noix", Plural: "noixs"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, SingularAndPlural(tt.token))
			assert.Equal(t, tt.want, NewNormalizer().Forms(tt.token))
		})
	}
}

func TestNormalizerInvariantEndings(t *testing.T) {
	n := NewNormalizer("x", " Z ", "")

	assert.Equal(t, Forms{Singular: "noix", Plural: "noix"}, n.Forms("noix"))
	assert.Equal(t, Forms{Singular: "riz", Plural: "riz"}, n.Forms("riz"))
	assert.Equal(t, Forms{Singular: "pomme", Plural: "pommes"}, n.Forms("pommes"))
}

func TestFormsDistinct(t *testing.T) {
	assert.Equal(t, []string{"tomate", "tomates"}, Forms{"tomate", "tomates"}.distinct())
	assert.Equal(t, []string{"noix"}, Forms{"noix", "noix"}.distinct())
	assert.Equal(t, []string{"s"}, Forms{"", "s"}.distinct())
}
