package processor_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/processor"
)

const base = processor.DefaultBaseDuration

type constants map[string]string

func (c constants) Constant(name string) (string, bool) {
	d, ok := c[name]
	return d, ok
}

func fundamentals(seq mathtone.Sequence) []float64 {
	ret := make([]float64, len(seq.Tones))
	for i, t := range seq.Tones {
		ret[i] = t.Fundamental()
	}
	return ret
}

func TestSingleTrack(t *testing.T) {
	var tests = []struct {
		input    string
		in, out  mathtone.NumberFormat
		expected []float64
	}{
		{"1F1", mathtone.Hex, mathtone.Hex, []float64{180, 2700, 180}},
		{"1f0", mathtone.Hex, mathtone.Hex, []float64{180, 2700, 0}},
		{"12x3", mathtone.Dec, mathtone.Dec, []float64{180, 360, 540}},
		{"255", mathtone.Dec, mathtone.Hex, []float64{2700, 2700}},
		{"1010", mathtone.Bin, mathtone.Hex, []float64{1800}},
		{"", mathtone.Dec, mathtone.Dec, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			seqs, err := processor.SingleTrack{}.Process(tt.input, tt.in, tt.out)
			require.NoError(t, err)
			require.Len(t, seqs, 1)
			assert.Equal(t, "Single", seqs[0].Title)
			assert.Equal(t, tt.expected, fundamentals(seqs[0]))
			assert.Equal(t, time.Duration(len(tt.expected))*base, seqs[0].TotalDuration)
		})
	}
}

func TestSingleTrackConfig(t *testing.T) {
	p := processor.SingleTrack{Config: processor.Config{
		BaseFrequency: 100,
		BaseDuration:  50 * time.Millisecond,
		Constants:     constants{"pi": "314"},
	}}
	seqs, err := p.Process(" pi ", mathtone.Dec, mathtone.Dec)
	require.NoError(t, err)
	assert.Equal(t, []float64{300, 100, 400}, fundamentals(seqs[0]))
	assert.Equal(t, 150*time.Millisecond, seqs[0].TotalDuration)
	seqs, err = p.Process("e2", mathtone.Dec, mathtone.Dec)
	require.NoError(t, err)
	assert.Equal(t, []float64{200}, fundamentals(seqs[0]), "a constant miss uses the input verbatim")
}

func TestReachExample(t *testing.T) {
	seqs, err := processor.ReachSingleTrack{}.Process("1F1", mathtone.Hex, mathtone.Hex)
	require.NoError(t, err)
	require.Len(t, seqs, 4)
	titles := []string{"Octave_Low", "Octave_MidLow", "Octave_MidHigh", "Octave_High"}
	for i, s := range seqs {
		assert.Equal(t, titles[i], s.Title)
		assert.Equal(t, 3*base, s.TotalDuration)
	}
	low := seqs[0]
	require.Len(t, low.Tones, 2)
	assert.Equal(t, 2*base, low.Tones[0].Duration)
	assert.Equal(t, 180.0, low.Tones[0].Fundamental())
	assert.Equal(t, base, low.Tones[1].Duration)
	high := seqs[3]
	require.Len(t, high.Tones, 3)
	assert.True(t, high.Tones[0].IsSilent())
	assert.Equal(t, 2700.0, high.Tones[1].Fundamental())
	assert.True(t, high.Tones[2].IsSilent())
	for _, tone := range seqs[1].Tones {
		assert.True(t, tone.IsSilent())
		assert.Equal(t, base, tone.Duration)
	}
}

func TestReachSustain(t *testing.T) {
	seqs, err := processor.ReachSingleTrack{}.Process("1000000000", mathtone.Hex, mathtone.Hex)
	require.NoError(t, err)
	low := seqs[0]
	require.Len(t, low.Tones, 3)
	assert.Equal(t, 8*base, low.Tones[0].Duration)
	assert.True(t, low.Tones[1].IsSilent())
	assert.True(t, low.Tones[2].IsSilent())
}

func TestReachOverlapBecomesChord(t *testing.T) {
	seqs, err := processor.ReachSingleTrack{}.Process("230", mathtone.Hex, mathtone.Hex)
	require.NoError(t, err)
	midLow := seqs[1]
	require.Len(t, midLow.Tones, 2)
	assert.Equal(t, []float64{360}, midLow.Tones[0].Frequencies)
	assert.Equal(t, base, midLow.Tones[0].Duration)
	assert.Nil(t, midLow.Tones[0].Held)
	assert.Equal(t, []float64{360, 540}, midLow.Tones[1].Frequencies)
	assert.Equal(t, []float64{360}, midLow.Tones[1].Held, "the 2 keeps ringing into the chord")
	assert.Equal(t, 2*base, midLow.Tones[1].Duration)
	assert.Equal(t, 3*base, midLow.TotalDuration)
}

func TestReachHeldAfterRelease(t *testing.T) {
	// the 3 outlasts the 2, which is released at slot 4
	seqs, err := processor.ReachSingleTrack{}.Process("230000", mathtone.Hex, mathtone.Hex)
	require.NoError(t, err)
	midLow := seqs[1]
	require.Len(t, midLow.Tones, 4)
	assert.Equal(t, []float64{540}, midLow.Tones[2].Frequencies)
	assert.Equal(t, []float64{540}, midLow.Tones[2].Held)
	assert.Equal(t, base, midLow.Tones[2].Duration)
	assert.True(t, midLow.Tones[3].IsSilent())
	seqs, err = processor.ReachSingleTrack{}.Process("22", mathtone.Hex, mathtone.Hex)
	require.NoError(t, err)
	require.Len(t, seqs[1].Tones, 2)
	assert.Nil(t, seqs[1].Tones[1].Held, "a repeated digit is struck again")
}

func TestReachGroups(t *testing.T) {
	for _, f := range mathtone.NumberFormats {
		groups := processor.OctaveGroups(f)
		for v := 1; v < f.Base(); v++ {
			n := 0
			for _, g := range groups {
				if g.Contains(v) {
					n++
				}
			}
			if n != 1 {
				t.Errorf("%v: value %v belongs to %v groups", f, v, n)
			}
		}
	}
}

func TestReachTotalDuration(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, f := range mathtone.NumberFormats {
		for i := 0; i < 50; i++ {
			var b strings.Builder
			n := r.Intn(60)
			for j := 0; j < n; j++ {
				b.WriteByte(f.Digit(r.Intn(f.Base())))
			}
			seqs, err := processor.ReachSingleTrack{}.Process(b.String(), f, f)
			require.NoError(t, err)
			for _, s := range seqs {
				var sum time.Duration
				for _, tone := range s.Tones {
					sum += tone.Duration
				}
				if s.TotalDuration != time.Duration(n)*base || sum != s.TotalDuration {
					t.Fatalf("%v %q group %v: total %v, sum %v, expected %v", f, b.String(), s.Title, s.TotalDuration, sum, time.Duration(n)*base)
				}
			}
		}
	}
}

func TestMultiTrack(t *testing.T) {
	p := processor.MultiTrack{}
	seqs, err := p.Process(" 12 + 345 + ", mathtone.Dec, mathtone.Dec)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, []float64{180, 360}, fundamentals(seqs[0]))
	assert.Equal(t, []float64{540, 720, 900}, fundamentals(seqs[1]))
	single, err := processor.SingleTrack{}.Process("123", mathtone.Dec, mathtone.Dec)
	require.NoError(t, err)
	seqs, err = p.Process("123", mathtone.Dec, mathtone.Dec)
	require.NoError(t, err)
	assert.Equal(t, single, seqs)
}

func TestMultiReach(t *testing.T) {
	p, err := processor.New(processor.MultiReach, processor.Config{})
	require.NoError(t, err)
	seqs, err := p.Process("1F1+77", mathtone.Hex, mathtone.Hex)
	require.NoError(t, err)
	require.Len(t, seqs, 8)
	assert.Equal(t, 3*base, seqs[0].TotalDuration)
	assert.Equal(t, 2*base, seqs[4].TotalDuration)
}

func TestMergeChords(t *testing.T) {
	a := mathtone.NewSequence("a", []mathtone.Tone{mathtone.NewTone(1, time.Second), mathtone.NewTone(2, time.Second)})
	b := mathtone.NewSequence("b", []mathtone.Tone{
		mathtone.NewTone(3, 2*time.Second), mathtone.Silence(time.Second), mathtone.NewTone(5, time.Second), mathtone.NewTone(6, time.Second)})
	merged := processor.MergeChords([]mathtone.Sequence{a, b})
	assert.Equal(t, "Harmonic", merged.Title)
	require.Len(t, merged.Tones, 4)
	assert.Equal(t, []float64{1, 3}, merged.Tones[0].Frequencies)
	assert.Equal(t, 2*time.Second, merged.Tones[0].Duration)
	assert.Equal(t, []float64{2}, merged.Tones[1].Frequencies)
	assert.Equal(t, []float64{5}, merged.Tones[2].Frequencies)
	assert.Equal(t, 5*time.Second, merged.TotalDuration)
	silent := processor.MergeChords([]mathtone.Sequence{mathtone.NewSequence("s", []mathtone.Tone{mathtone.Silence(time.Second)})})
	assert.True(t, silent.Tones[0].IsSilent())
}

func TestMultiTrackChords(t *testing.T) {
	p, err := processor.New(processor.Multi, processor.Config{Chords: true})
	require.NoError(t, err)
	seqs, err := p.Process("12+3", mathtone.Dec, mathtone.Dec)
	require.NoError(t, err)
	require.Len(t, seqs, 1)
	assert.Equal(t, []float64{180, 540}, seqs[0].Tones[0].Frequencies)
	assert.Equal(t, []float64{360}, seqs[0].Tones[1].Frequencies)
}

func TestSplitExpression(t *testing.T) {
	assert.Equal(t, []string{"pi", "e"}, processor.SplitExpression(" pi +  + e "))
	assert.Nil(t, processor.SplitExpression(" + "))
	assert.True(t, processor.IsPolyphonic("1+2"))
	assert.False(t, processor.IsPolyphonic("12"))
}

func TestParseKind(t *testing.T) {
	for _, k := range processor.Kinds {
		t.Run(fmt.Sprint(k), func(t *testing.T) {
			got, err := processor.ParseKind(strings.ToUpper(k.String()))
			require.NoError(t, err)
			assert.Equal(t, k, got)
			p, err := processor.New(k, processor.Config{})
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
	_, err := processor.ParseKind("octave")
	assert.Error(t, err)
	_, err = processor.New(processor.Kind(42), processor.Config{})
	assert.Error(t, err)
}
