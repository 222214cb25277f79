package mettrig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatListFlagReplacesDefault(t *testing.T) {
	f := FloatListFlag{Values: []float64{200}}
	require.NoError(t, f.Set("150"))
	require.NoError(t, f.Set("250"))
	assert.Equal(t, []float64{150, 250}, f.Values)
	assert.Equal(t, "150,250", f.String())
}

func TestFloatListFlagParseError(t *testing.T) {
	var f FloatListFlag
	require.Error(t, f.Set("abc"))
	assert.Empty(t, f.Values)
}
