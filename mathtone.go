// Package mathtone turns digit strings into timed tone sequences and renders
// them as stereo 16-bit PCM audio.
//
// The root package holds the data model shared by all the other packages: the
// supported number formats, Tone, Sequence and Timbre, the rendered
// AudioBuffer and its .wav export, and the interfaces through which the
// processors, transformers and outputs are plugged together.
package mathtone

import (
	"time"
)

type (
	// Tone is a single timed note. Frequencies[0] == 0 means silence, in
	// which case the rest of the frequencies carry no meaning. A tone with
	// more than one frequency is a chord, a harmonic stack (after timbre
	// expansion) or a chord of harmonic stacks. Held lists the note
	// frequencies that continue sounding from the previous tone instead of
	// being struck again.
	Tone struct {
		Duration    time.Duration
		Frequencies []float64 `yaml:",flow"`
		Held        []float64 `yaml:",flow,omitempty"`
	}

	// Sequence is an ordered list of tones played one after another.
	// TotalDuration is the sum of the tone durations. Timbre, when not nil,
	// gives the gain of each entry of the tones' Frequencies at render time.
	Sequence struct {
		Title         string
		Tones         []Tone
		TotalDuration time.Duration
		Timbre        Timbre `yaml:",flow,omitempty"`
	}

	// Timbre is a vector of non-negative harmonic gains: index 0 is the gain
	// of the fundamental, index k the gain of harmonic k+1.
	Timbre []float32
)

// NewTone returns a tone of a single frequency; frequency 0 gives silence.
func NewTone(frequency float64, duration time.Duration) Tone {
	return Tone{Duration: duration, Frequencies: []float64{frequency}}
}

// Silence returns a silent tone.
func Silence(duration time.Duration) Tone {
	return NewTone(0, duration)
}

// Chord returns a tone sounding all the given frequencies at once. With no
// frequencies, the chord is silent.
func Chord(duration time.Duration, frequencies ...float64) Tone {
	if len(frequencies) == 0 {
		return Silence(duration)
	}
	f := make([]float64, len(frequencies))
	copy(f, frequencies)
	return Tone{Duration: duration, Frequencies: f}
}

// IsSilent reports if the tone produces no sound.
func (t Tone) IsSilent() bool {
	return len(t.Frequencies) == 0 || t.Frequencies[0] == 0
}

// Fundamental returns the first frequency of the tone, 0 for silence.
func (t Tone) Fundamental() float64 {
	if t.IsSilent() {
		return 0
	}
	return t.Frequencies[0]
}

// Holds reports if the note of frequency f continues from the previous tone.
func (t Tone) Holds(f float64) bool {
	for _, h := range t.Held {
		if h == f {
			return true
		}
	}
	return false
}

// Notes returns the frequencies of the notes of the tone. When the tone has
// been expanded with timbre, every note occupies len(timbre) consecutive
// frequencies and only its fundamental is returned. Silent entries are
// dropped.
func (t Tone) Notes(timbre Timbre) []float64 {
	if t.IsSilent() {
		return nil
	}
	step := max(len(timbre), 1)
	var ret []float64
	for i := 0; i < len(t.Frequencies); i += step {
		if f := t.Frequencies[i]; f > 0 {
			ret = append(ret, f)
		}
	}
	return ret
}

// Copy makes a deep copy of a Tone.
func (t Tone) Copy() Tone {
	f := make([]float64, len(t.Frequencies))
	copy(f, t.Frequencies)
	ret := Tone{Duration: t.Duration, Frequencies: f}
	if t.Held != nil {
		ret.Held = make([]float64, len(t.Held))
		copy(ret.Held, t.Held)
	}
	return ret
}

// NewSequence builds a sequence from deep copies of the given tones and
// computes its TotalDuration.
func NewSequence(title string, tones []Tone) Sequence {
	s := Sequence{Title: title, Tones: make([]Tone, len(tones))}
	for i, t := range tones {
		s.Tones[i] = t.Copy()
		s.TotalDuration += t.Duration
	}
	return s
}

// Copy makes a deep copy of a Sequence.
func (s Sequence) Copy() Sequence {
	ret := NewSequence(s.Title, s.Tones)
	ret.TotalDuration = s.TotalDuration
	ret.Timbre = s.Timbre.Copy()
	return ret
}

// WithTimbre returns a copy of the sequence carrying the given timbre.
func (s Sequence) WithTimbre(t Timbre) Sequence {
	ret := s.Copy()
	ret.Timbre = t.Copy()
	return ret
}

// Len returns the number of tones in the sequence.
func (s Sequence) Len() int {
	return len(s.Tones)
}

// IsEmpty reports if the sequence has no audible length.
func (s Sequence) IsEmpty() bool {
	return len(s.Tones) == 0 || s.TotalDuration <= 0
}

// LongestDuration returns the maximum TotalDuration of the sequences.
func LongestDuration(seqs []Sequence) time.Duration {
	var ret time.Duration
	for _, s := range seqs {
		ret = max(ret, s.TotalDuration)
	}
	return ret
}

// Coefficient returns the gain of harmonic index k. Harmonics beyond the
// vector, as well as every harmonic of a nil timbre, have gain 1.
func (t Timbre) Coefficient(k int) float32 {
	if k < 0 || k >= len(t) {
		return 1
	}
	return t[k]
}

// Copy makes a deep copy of a Timbre; nil stays nil.
func (t Timbre) Copy() Timbre {
	if t == nil {
		return nil
	}
	ret := make(Timbre, len(t))
	copy(ret, t)
	return ret
}
