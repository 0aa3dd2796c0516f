package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMeta struct {
	Name  string    `yaml:"name"`
	Price StrictInt `yaml:"price"`
}

func TestParseWithFrontmatter(t *testing.T) {
	source := []byte("---\nname: Premium Mug\nprice: 2500\n---\nA **heavy** mug.\n")

	var meta testMeta
	html, err := NewParser().Parse(source, &meta)
	require.NoError(t, err)

	assert.Equal(t, "Premium Mug", meta.Name)
	assert.Equal(t, StrictInt(2500), meta.Price)
	assert.Contains(t, string(html), "<strong>heavy</strong>")
	assert.NotContains(t, string(html), "price")
}

func TestParseRejectsNonIntegerPrices(t *testing.T) {
	for _, price := range []string{"25.50", "25.99", "\"2500\"", "[1]", "true"} {
		source := []byte("---\nname: Mug\nprice: " + price + "\n---\nbody\n")

		var meta testMeta
		_, err := NewParser().Parse(source, &meta)
		assert.Error(t, err, "price=%s", price)
		assert.Zero(t, meta.Price, "price=%s", price)
	}
}

func TestStrictIntAcceptsIntegerForms(t *testing.T) {
	for price, want := range map[string]StrictInt{"2500": 2500, "0x10": 16, "-5": -5} {
		var meta testMeta
		_, err := NewParser().Parse([]byte("---\nprice: "+price+"\n---\n"), &meta)
		require.NoError(t, err, "price=%s", price)
		assert.Equal(t, want, meta.Price, "price=%s", price)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	meta := testMeta{Name: "unchanged"}
	html, err := NewParser().Parse([]byte("# Title\n"), &meta)
	require.NoError(t, err)

	assert.Equal(t, "unchanged", meta.Name)
	assert.Contains(t, string(html), "<h1>Title</h1>")
}
