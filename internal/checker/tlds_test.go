package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "example.com", Normalize("  EXample.COM. "))
	assert.Equal(t, "example", Normalize("Example"))
}

func TestBaseNameAndTLD(t *testing.T) {
	assert.Equal(t, "example", BaseName("example.co.uk"))
	assert.Equal(t, "uk", TLD("example.co.uk"))
	assert.Equal(t, "example", BaseName("example"))
	assert.Equal(t, "", TLD("example"))
}

func TestVariants(t *testing.T) {
	variants := Variants("Example.DE", nil)

	// The queried domain comes first and appears only once
	require.NotEmpty(t, variants)
	assert.Equal(t, "example.de", variants[0])
	assert.Len(t, variants, len(WatchTLDs))

	seen := map[string]bool{}
	for _, variant := range variants {
		assert.False(t, seen[variant], variant)
		seen[variant] = true
	}
	assert.True(t, seen["example.com"])
	assert.True(t, seen["example.io"])
}

func TestVariantsWithoutTLD(t *testing.T) {
	variants := Variants("example", []string{"com", "net"})
	assert.Equal(t, []string{"example.com", "example.net"}, variants)
}

func TestFlag(t *testing.T) {
	assert.Equal(t, "🇩🇪", Flag("foo.de"))
	assert.Equal(t, "🇺🇸", Flag("foo.com"))
	assert.Equal(t, "🏳️", Flag("foo.xyz"))
}
