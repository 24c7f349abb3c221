// Package timbre turns the single frequency tones of a sequence into
// harmonic stacks.
package timbre

import (
	"github.com/vsariola/mathtone"
)

// Expand replaces every note of a sounding tone with the harmonic series
// note*(k+1), one entry per coefficient. The notes of a chord are expanded
// one after another, so a chord of n notes ends up with n*len(coefficients)
// frequencies. Silent tones are kept as is. The coefficients are not applied
// here: they travel with the returned sequence and act as per-harmonic gains
// when rendering. An empty coefficient vector returns an unchanged copy.
func Expand(seq mathtone.Sequence, coefficients mathtone.Timbre) mathtone.Sequence {
	if len(coefficients) == 0 {
		return seq.Copy()
	}
	tones := make([]mathtone.Tone, len(seq.Tones))
	for i, t := range seq.Tones {
		notes := t.Notes(seq.Timbre)
		if len(notes) == 0 {
			tones[i] = t.Copy()
			continue
		}
		freqs := make([]float64, 0, len(notes)*len(coefficients))
		for _, f := range notes {
			for k := range coefficients {
				freqs = append(freqs, f*float64(k+1))
			}
		}
		tones[i] = t.Copy()
		tones[i].Frequencies = freqs
	}
	ret := mathtone.NewSequence(seq.Title, tones)
	ret.TotalDuration = seq.TotalDuration
	ret.Timbre = coefficients.Copy()
	return ret
}

// Expander is a mathtone.Transformer expanding sequences with fixed
// coefficients.
type Expander struct {
	Coefficients mathtone.Timbre
}

func (e Expander) Transform(seq mathtone.Sequence) mathtone.Sequence {
	return Expand(seq, e.Coefficients)
}

// ExpandAll expands every sequence with the same coefficients.
func ExpandAll(seqs []mathtone.Sequence, coefficients mathtone.Timbre) []mathtone.Sequence {
	return mathtone.TransformAll(seqs, Expander{Coefficients: coefficients})
}
