package bms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSemitoneRatioUnison(t *testing.T) {
	require.InDelta(t, 1.0, semitoneRatio(0), 1e-9)
}

func TestSemitoneRatioOctaveUpAndDown(t *testing.T) {
	require.InDelta(t, 2.0, semitoneRatio(12), 1e-3)
	require.InDelta(t, 0.5, semitoneRatio(-12), 1e-3)
}

func TestPow2KnownValues(t *testing.T) {
	require.InDelta(t, 1.0, pow2(0), 1e-9)
	require.InDelta(t, 2.0, pow2(1), 1e-3)
	require.InDelta(t, 4.0, pow2(2), 1e-3)
	require.InDelta(t, 0.25, pow2(-2), 1e-3)
}

func newTestSample() *Sample {
	return &Sample{
		Data:       []int16{0, 1000, 2000, 1000, 0, -1000, -2000, -1000},
		SampleRate: 8000,
		LoopStart:  0,
		LoopEnd:    -1,
		BaseNote:   60,
	}
}

func TestVoicePlaysAtSampleBaseNoteRateOne(t *testing.T) {
	v := NewVoice(newTestSample(), 60, 127, 8000)
	require.InDelta(t, 1.0, v.step, 1e-9)
}

func TestVoiceAdvancesAndStopsAtEndWithoutLoop(t *testing.T) {
	sample := newTestSample()
	v := NewVoice(sample, 60, 127, 8000)
	for i := 0; i < len(sample.Data); i++ {
		require.False(t, v.Done())
		v.Next()
	}
	require.True(t, v.Done())
	require.Equal(t, int32(0), v.Next())
}

func TestVoiceLoopsRatherThanStopping(t *testing.T) {
	sample := &Sample{
		Data:       []int16{0, 100, 200, 300},
		SampleRate: 8000,
		LoopStart:  1,
		LoopEnd:    3,
		BaseNote:   60,
	}
	v := NewVoice(sample, 60, 127, 8000)
	for i := 0; i < 20; i++ {
		v.Next()
		require.False(t, v.Done(), "a looping sample never finishes on its own")
	}
}

func TestVoiceReleaseFadesToSilenceThenDone(t *testing.T) {
	sample := &Sample{
		Data:       make([]int16, 1000),
		SampleRate: 8000,
		LoopStart:  0,
		LoopEnd:    999,
		BaseNote:   60,
	}
	for i := range sample.Data {
		sample.Data[i] = 1000
	}
	v := NewVoice(sample, 60, 127, 8000)
	v.Release(4)
	for i := 0; i < 4; i++ {
		require.False(t, v.Done())
		v.Next()
	}
	require.True(t, v.Done())
}

func TestVoiceReleaseIsIdempotent(t *testing.T) {
	v := NewVoice(newTestSample(), 60, 127, 8000)
	v.Release(10)
	v.Next()
	remainingAfterFirstCall := v.release.RemainingFrames
	v.Release(999) // must be a no-op since the voice is already releasing
	require.Equal(t, remainingAfterFirstCall, v.release.RemainingFrames)
}
