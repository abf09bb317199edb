package bms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeImmediateTarget(t *testing.T) {
	var e Envelope
	e.SetTarget(100, 0)
	require.True(t, e.Done())
	require.Equal(t, int32(100), e.Attenuate())
}

func TestEnvelopeLinearRamp(t *testing.T) {
	var e Envelope
	e.Current = 0
	e.SetTarget(100, 10)
	require.False(t, e.Done())
	for i := 0; i < 10; i++ {
		e.Attenuate()
	}
	require.True(t, e.Done())
	require.Equal(t, int32(100), e.Current)
}

func TestEnvelopeReachesExactTargetEvenWithRoundingError(t *testing.T) {
	var e Envelope
	e.Current = 0
	e.SetTarget(7, 3) // 7/3 does not divide evenly
	var last int32
	for !e.Done() {
		last = e.Attenuate()
	}
	require.Equal(t, int32(7), last)
}
