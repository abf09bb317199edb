package bms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewChannelDefaults(t *testing.T) {
	c := NewChannel()
	require.Equal(t, int32(127), c.Volume.Current)
	require.Equal(t, int32(64), c.Pan.Current)
	require.Equal(t, int32(0), c.Pitch.Current)
}

func TestChannelStepAdvancesAllEnvelopes(t *testing.T) {
	c := NewChannel()
	c.Volume.SetTarget(0, 2)
	c.Pan.SetTarget(0, 2)
	c.Step()
	require.NotEqual(t, int32(127), c.Volume.Current)
	require.NotEqual(t, int32(64), c.Pan.Current)
}
