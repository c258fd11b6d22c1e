package units

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMass(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := NewMass(250, Milligram)
		require.NoError(t, err)
		assert.Equal(t, 250.0, m.Amount())
		assert.Equal(t, "mg", m.UnitCode())
		assert.Equal(t, "mass", m.Kind())
	})

	t.Run("rejects non-positive", func(t *testing.T) {
		_, err := NewMass(0, Milligram)
		assert.Error(t, err)
		_, err = NewMass(-5, Milligram)
		assert.Error(t, err)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		_, err := NewMass(5, "stone")
		assert.Error(t, err)
	})
}

func TestMassJSONRoundTrip(t *testing.T) {
	m := MustMass(10, Microgram)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"mass","value":10,"unit":"mcg"}`, string(data))

	var out Mass
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, m, out)
}

func TestMassUnmarshalRejectsWrongType(t *testing.T) {
	var m Mass
	err := json.Unmarshal([]byte(`{"type":"volume","value":1,"unit":"mL"}`), &m)
	assert.Error(t, err)
}

func TestMassIsDisjointFromVolume(t *testing.T) {
	// Compile-time guarantee: Mass and Volume are distinct types, so this
	// test only documents the invariant rather than exercising it directly.
	var v interface{} = MustMass(1, Milligram)
	_, ok := v.(Volume)
	assert.False(t, ok)
}
