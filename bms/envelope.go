// Package bms implements the register-machine sequence interpreter that
// drives polyphonic sample playback: a scheduler runs several Tracks
// concurrently, each one a tiny byte-code program operating on its own
// register file and a Channel of continuously-interpolated parameters.
package bms

// Envelope is a linear ramp from Current toward Target over
// RemainingFrames audio frames, the primitive every continuously-varying
// channel parameter (volume, pitch, pan, reverb send) is built from.
type Envelope struct {
	Current         int32
	Target          int32
	RemainingFrames uint32
}

// SetTarget begins a new ramp from the envelope's current value to target
// over frames audio frames. A zero frame count takes effect immediately
// on the next Attenuate call.
func (e *Envelope) SetTarget(target int32, frames uint32) {
	e.Target = target
	e.RemainingFrames = frames
}

// Attenuate advances the envelope by one audio frame and returns its
// current value after the step.
func (e *Envelope) Attenuate() int32 {
	if e.RemainingFrames == 0 {
		e.Current = e.Target
		return e.Current
	}
	delta := (e.Target - e.Current) / int32(e.RemainingFrames)
	e.Current += delta
	e.RemainingFrames--
	if e.RemainingFrames == 0 {
		e.Current = e.Target
	}
	return e.Current
}

// Done reports whether the envelope has reached its target.
func (e *Envelope) Done() bool {
	return e.RemainingFrames == 0
}
