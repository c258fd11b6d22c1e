package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeAliasAndCanonicalForm(t *testing.T) {
	name, ok := Canonicalize("po")
	require.True(t, ok)
	assert.Equal(t, "Orally", name)

	name, ok = Canonicalize("  IM ")
	require.True(t, ok)
	assert.Equal(t, "Intramuscularly", name)

	name, ok = Canonicalize("Orally")
	require.True(t, ok)
	assert.Equal(t, "Orally", name)
}

func TestCanonicalizeUnknown(t *testing.T) {
	_, ok := Canonicalize("intergalactically")
	assert.False(t, ok)
}

func TestValidateCompatibleDoseForm(t *testing.T) {
	result := Validate("po", "tablet")
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "Orally", result.Canonical)
	require.NotNil(t, result.Metadata)
	assert.Equal(t, "26643006", result.Metadata.SnomedCode)
}

func TestValidateIncompatibleDoseFormWarns(t *testing.T) {
	result := Validate("po", "patch")
	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)
}

func TestValidateUnknownRouteSuggestsAlternatives(t *testing.T) {
	result := Validate("orallly", "tablet")
	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.SuggestedRoutes, "Orally")
}

func TestLoadAliasOverrides(t *testing.T) {
	err := LoadAliasOverrides([]byte("per os: Orally\n"))
	require.NoError(t, err)
	name, ok := Canonicalize("per os")
	require.True(t, ok)
	assert.Equal(t, "Orally", name)
}

func TestLoadAliasOverridesRejectsUnknownCanonical(t *testing.T) {
	err := LoadAliasOverrides([]byte("mystery: Nowhere\n"))
	assert.Error(t, err)
}

func TestSuggestRoutesOrdersByDistance(t *testing.T) {
	suggestions := SuggestRoutes("orallly", 3, 3)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Orally", suggestions[0])
}
