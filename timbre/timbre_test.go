package timbre_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/processor"
	"github.com/vsariola/mathtone/timbre"
)

func TestExpand(t *testing.T) {
	seq := mathtone.NewSequence("Single", []mathtone.Tone{
		mathtone.NewTone(100, time.Second),
		mathtone.Silence(time.Second),
	})
	coeffs := mathtone.Timbre{1, 0, 0.5}
	got := timbre.Expand(seq, coeffs)
	require.Len(t, got.Tones, 2)
	assert.Equal(t, []float64{100, 200, 300}, got.Tones[0].Frequencies)
	assert.Equal(t, []float64{0}, got.Tones[1].Frequencies)
	assert.Equal(t, coeffs, got.Timbre)
	assert.Equal(t, seq.TotalDuration, got.TotalDuration)
	assert.Equal(t, "Single", got.Title)
	assert.Nil(t, seq.Timbre, "the input sequence must not change")
	assert.Equal(t, []float64{100}, seq.Tones[0].Frequencies)
	coeffs[0] = 0
	assert.Equal(t, float32(1), got.Timbre[0], "the coefficients must be copied")
}

func TestExpandEmptyTimbre(t *testing.T) {
	seq := mathtone.NewSequence("Single", []mathtone.Tone{mathtone.NewTone(100, time.Second)})
	got := timbre.Expand(seq, nil)
	assert.Equal(t, seq, got)
	got.Tones[0].Frequencies[0] = 1
	assert.Equal(t, 100.0, seq.Tones[0].Fundamental())
}

func TestExpandAll(t *testing.T) {
	seqs := []mathtone.Sequence{
		mathtone.NewSequence("a", []mathtone.Tone{mathtone.NewTone(100, time.Second)}),
		mathtone.NewSequence("b", []mathtone.Tone{mathtone.NewTone(50, time.Second)}),
	}
	got := timbre.ExpandAll(seqs, mathtone.Timbre{1, 1})
	require.Len(t, got, 2)
	assert.Equal(t, []float64{50, 100}, got[1].Tones[0].Frequencies)
}

func TestExpandChord(t *testing.T) {
	seqs, err := processor.ReachSingleTrack{}.Process("230", mathtone.Hex, mathtone.Hex)
	require.NoError(t, err)
	midLow := seqs[1]
	require.Equal(t, []float64{360, 540}, midLow.Tones[1].Frequencies)
	got := timbre.Expand(midLow, mathtone.Timbre{1, 0.5})
	assert.Equal(t, []float64{360, 720, 540, 1080}, got.Tones[1].Frequencies)
	assert.Equal(t, []float64{360, 540}, got.Tones[1].Notes(got.Timbre))
	assert.Equal(t, []float64{360}, got.Tones[1].Held)
	assert.Equal(t, []float64{360, 720}, got.Tones[0].Frequencies)
}

func TestExpandMergedChord(t *testing.T) {
	merged := processor.MergeChords([]mathtone.Sequence{
		mathtone.NewSequence("a", []mathtone.Tone{mathtone.NewTone(100, time.Second)}),
		mathtone.NewSequence("b", []mathtone.Tone{mathtone.NewTone(150, time.Second)}),
	})
	got := timbre.Expand(merged, mathtone.Timbre{1, 1, 1})
	assert.Equal(t, []float64{100, 200, 300, 150, 300, 450}, got.Tones[0].Frequencies)
}

func TestExpandTwice(t *testing.T) {
	seq := mathtone.NewSequence("Single", []mathtone.Tone{mathtone.Chord(time.Second, 100, 150)})
	once := timbre.Expand(seq, mathtone.Timbre{1, 1})
	twice := timbre.Expand(once, mathtone.Timbre{1, 1, 1})
	assert.Equal(t, []float64{100, 200, 300, 150, 300, 450}, twice.Tones[0].Frequencies)
}
