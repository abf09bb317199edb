package bms

// Channel holds a track's continuously-interpolated mix parameters:
// master volume, pitch bend, reverb send and stereo pan, each an
// independently-ramping Envelope. The VM mixes voices through Volume and
// Pan only; Pitch and Reverb ramp with Step but do not affect the
// rendered output.
type Channel struct {
	Volume  Envelope
	Pitch   Envelope
	Reverb  Envelope
	Pan     Envelope
	Bank    uint8
	Program uint8
}

// NewChannel returns a Channel at default mix settings: full volume,
// centered pan, no pitch bend, no reverb.
func NewChannel() *Channel {
	c := &Channel{}
	c.Volume.Current, c.Volume.Target = 127, 127
	c.Pan.Current, c.Pan.Target = 64, 64
	return c
}

// Step advances every envelope on the channel by one audio frame.
func (c *Channel) Step() {
	c.Volume.Attenuate()
	c.Pitch.Attenuate()
	c.Reverb.Attenuate()
	c.Pan.Attenuate()
}
