package cafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalVariants_Empty(t *testing.T) {
	assert.Equal(t, "{}", CanonicalVariants(nil))
	assert.Equal(t, "{}", CanonicalVariants(map[string]string{}))
}

func TestCanonicalVariants_SortedKeys(t *testing.T) {
	got := CanonicalVariants(map[string]string{"size": "large", "milk": "oat"})
	assert.Equal(t, `{"milk":"oat","size":"large"}`, got)
}

func TestCanonicalVariants_OrderIndependent(t *testing.T) {
	a := map[string]string{"size": "large", "milk": "oat", "shots": "2"}
	b := map[string]string{"shots": "2", "size": "large", "milk": "oat"}
	assert.Equal(t, CanonicalVariants(a), CanonicalVariants(b))
}

func TestCanonicalVariants_DistinctValuesDistinctForms(t *testing.T) {
	a := CanonicalVariants(map[string]string{"size": "small"})
	b := CanonicalVariants(map[string]string{"size": "large"})
	assert.NotEqual(t, a, b)
}

func TestCanonicalVariants_NFCNormalization(t *testing.T) {
	// "é" precomposed (U+00E9) vs decomposed (e + U+0301) must
	// canonicalize identically.
	composed := map[string]string{"milk": "créme"}
	decomposed := map[string]string{"milk": "créme"}
	assert.Equal(t, CanonicalVariants(composed), CanonicalVariants(decomposed))
}

func TestCanonicalVariants_EscapesDelimiters(t *testing.T) {
	// Values containing JSON delimiters must not produce colliding forms.
	a := CanonicalVariants(map[string]string{`a"b`: "c"})
	b := CanonicalVariants(map[string]string{"a": `b":"c`})
	assert.NotEqual(t, a, b)
}
