package bms

// Sample is one decoded PCM waveform a Voice resamples during playback.
// Decoding from the source audio codec happens elsewhere; this package
// only ever sees flat int16 sample data.
type Sample struct {
	Data       []int16
	SampleRate float64
	LoopStart  int
	LoopEnd    int // -1 means no loop; playback stops at len(Data)
	BaseNote   uint8
}

// Voice is one active playback of a Sample, advancing through it at a
// pitch-adjusted rate and applying linear interpolation between sample
// frames. Multiple Voices on the same Track model polyphony: a new
// note-on does not cut off a still-ringing older note.
type Voice struct {
	Sample *Sample
	Note   uint8
	Gain   int32 // 0-127, the velocity-derived static level

	position float64 // fractional frame index into Sample.Data
	step     float64 // frames advanced per output sample, from pitch ratio

	releasing bool
	release   Envelope
	done      bool
}

// NewVoice starts a voice playing sample at note, scaling playback speed
// by the note's distance from the sample's recorded base pitch.
func NewVoice(sample *Sample, note uint8, gain int32, outputRate float64) *Voice {
	ratio := semitoneRatio(int(note) - int(sample.BaseNote))
	return &Voice{
		Sample: sample,
		Note:   note,
		Gain:   gain,
		step:   ratio * sample.SampleRate / outputRate,
	}
}

// semitoneRatio converts a signed semitone offset to a frequency ratio
// using equal temperament (2^(n/12)).
func semitoneRatio(semitones int) float64 {
	return pow2(float64(semitones) / 12.0)
}

// pow2 computes 2^x via repeated doubling on the integer part and a
// short Taylor correction on the fraction, avoiding a math.Pow import for
// this one narrow use (audio pitch ratios need only a handful of digits
// of precision and tolerate a small error at the ten-thousandths place).
func pow2(x float64) float64 {
	neg := x < 0
	if neg {
		x = -x
	}
	whole := int(x)
	frac := x - float64(whole)
	result := 1.0
	for i := 0; i < whole; i++ {
		result *= 2
	}
	// 2^frac via its Taylor series around 0, ln(2)≈0.6931471805599453.
	const ln2 = 0.6931471805599453
	term := 1.0
	sum := 1.0
	for n := 1; n <= 12; n++ {
		term *= ln2 * frac / float64(n)
		sum += term
	}
	result *= sum
	if neg {
		return 1.0 / result
	}
	return result
}

// Release starts the voice's fade-out over the given number of audio
// frames; Next keeps producing samples, scaled by the release envelope,
// until it reaches zero.
func (v *Voice) Release(frames uint32) {
	if v.releasing {
		return
	}
	v.releasing = true
	v.release.Current = 127
	v.release.SetTarget(0, frames)
}

// Done reports whether the voice has exhausted its sample data (for a
// non-looping sample) or fully released.
func (v *Voice) Done() bool {
	return v.done
}

// Next produces one interpolated, gain-scaled output sample and advances
// playback position. It returns 0 once the voice is Done.
func (v *Voice) Next() int32 {
	if v.done {
		return 0
	}
	data := v.Sample.Data
	idx := int(v.position)
	if idx >= len(data) {
		v.done = true
		return 0
	}

	frac := v.position - float64(idx)
	s0 := int32(data[idx])
	s1 := s0
	if idx+1 < len(data) {
		s1 = int32(data[idx+1])
	}
	sample := s0 + int32(frac*float64(s1-s0))

	v.position += v.step
	if v.Sample.LoopEnd >= 0 && int(v.position) >= v.Sample.LoopEnd {
		v.position -= float64(v.Sample.LoopEnd - v.Sample.LoopStart)
	} else if v.Sample.LoopEnd < 0 && int(v.position) >= len(data) {
		v.done = true
	}

	gain := v.Gain
	if v.releasing {
		gain = gain * v.release.Attenuate() / 127
		if v.release.Done() && v.release.Current == 0 {
			v.done = true
		}
	}
	return sample * gain / 127
}
