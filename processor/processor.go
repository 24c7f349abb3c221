// Package processor implements the strategies that turn a digit string into
// tone sequences: SingleTrack, MultiTrack and ReachSingleTrack.
package processor

import (
	"fmt"
	"strings"
	"time"

	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/convert"
)

const (
	DefaultBaseFrequency = 180.0
	DefaultBaseDuration  = 300 * time.Millisecond
)

// Config is shared by all processors. Zero BaseFrequency or BaseDuration
// mean the defaults. Constants is optional; when set, the whole input is
// first looked up as the name of a constant.
type Config struct {
	BaseFrequency float64
	BaseDuration  time.Duration
	Constants     mathtone.ConstantLookup
	// Chords makes the multi track kinds merge their tracks into a single
	// chord sequence with MergeChords.
	Chords bool
}

func (c Config) withDefaults() Config {
	if c.BaseFrequency <= 0 {
		c.BaseFrequency = DefaultBaseFrequency
	}
	if c.BaseDuration <= 0 {
		c.BaseDuration = DefaultBaseDuration
	}
	return c
}

// Mapper returns the ToneMapper of the configuration.
func (c Config) Mapper() ToneMapper {
	c = c.withDefaults()
	return ToneMapper{BaseFrequency: c.BaseFrequency, BaseDuration: c.BaseDuration}
}

// Prepare returns the digits of input, written in the out format, that the
// processors map into tones. A named constant replaces the input. Characters
// that are not digits of the in format are dropped instead of failing the
// whole input.
func (c Config) Prepare(input string, in, out mathtone.NumberFormat) (string, error) {
	if c.Constants != nil {
		if digits, ok := c.Constants.Constant(strings.TrimSpace(input)); ok {
			input = digits
		}
	}
	digits := keepDigits(strings.ToUpper(input), in)
	if in != out {
		var err error
		if digits, err = convert.Convert(digits, in, out); err != nil {
			return "", fmt.Errorf("could not convert %v digits to %v: %w", in, out, err)
		}
	}
	return keepDigits(digits, out), nil
}

func keepDigits(s string, f mathtone.NumberFormat) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if _, ok := f.Value(r); ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToneMapper maps digit values to tones: value v sounds at BaseFrequency*v
// for BaseDuration, value 0 is silence.
type ToneMapper struct {
	BaseFrequency float64
	BaseDuration  time.Duration
}

func (m ToneMapper) Frequency(value int) float64 {
	return m.BaseFrequency * float64(value)
}

func (m ToneMapper) Tone(value int) mathtone.Tone {
	return mathtone.NewTone(m.Frequency(value), m.BaseDuration)
}

// Digit maps a character of the format into a tone; ok is false for
// characters that are not digits of the format.
func (m ToneMapper) Digit(r rune, f mathtone.NumberFormat) (t mathtone.Tone, ok bool) {
	v, ok := f.Value(r)
	if !ok {
		return mathtone.Tone{}, false
	}
	return m.Tone(v), true
}
