package processor

import (
	"fmt"
	"strings"
	"time"

	"github.com/vsariola/mathtone"
)

// ExpressionSeparator splits a polyphonic expression into tracks.
const ExpressionSeparator = "+"

// MultiTrack splits its input on '+' and runs every part through Inner
// independently. The resulting sequences are returned side by side, unless
// Config.Chords is set, in which case they are merged with MergeChords.
type MultiTrack struct {
	Config Config
	Inner  mathtone.Processor // SingleTrack when nil
}

func (p MultiTrack) Process(input string, in, out mathtone.NumberFormat) ([]mathtone.Sequence, error) {
	inner := p.Inner
	if inner == nil {
		inner = SingleTrack{Config: p.Config}
	}
	var ret []mathtone.Sequence
	if !IsPolyphonic(input) {
		seqs, err := inner.Process(input, in, out)
		if err != nil {
			return nil, err
		}
		ret = seqs
	} else {
		for i, part := range SplitExpression(input) {
			seqs, err := inner.Process(part, in, out)
			if err != nil {
				return nil, fmt.Errorf("track %d (%q): %w", i+1, part, err)
			}
			ret = append(ret, seqs...)
		}
	}
	if p.Config.Chords {
		return []mathtone.Sequence{MergeChords(ret)}, nil
	}
	return ret, nil
}

// IsPolyphonic reports if the expression holds more than one track.
func IsPolyphonic(expr string) bool {
	return strings.Contains(expr, ExpressionSeparator)
}

// SplitExpression splits expr on '+', trimming whitespace and dropping empty
// parts.
func SplitExpression(expr string) []string {
	var ret []string
	for _, part := range strings.Split(expr, ExpressionSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

// MergeChords combines the tones at the same index of every sequence into one
// chord tone, lasting as long as the longest of them. Shorter sequences
// contribute to fewer positions. Silent tones add no frequencies; a position
// where everything is silent stays silent.
func MergeChords(seqs []mathtone.Sequence) mathtone.Sequence {
	positions := 0
	for _, s := range seqs {
		positions = max(positions, len(s.Tones))
	}
	tones := make([]mathtone.Tone, positions)
	for i := range tones {
		var duration time.Duration
		var freqs []float64
		for _, s := range seqs {
			if i >= len(s.Tones) {
				continue
			}
			t := s.Tones[i]
			duration = max(duration, t.Duration)
			if t.IsSilent() {
				continue
			}
			for _, f := range t.Frequencies {
				if f > 0 {
					freqs = append(freqs, f)
				}
			}
		}
		tones[i] = mathtone.Chord(duration, freqs...)
	}
	return mathtone.NewSequence("Harmonic", tones)
}
