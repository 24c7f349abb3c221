package processor

import (
	"github.com/vsariola/mathtone"
)

// SingleTrack is monophonic: one tone per digit, in a single sequence titled
// "Single".
type SingleTrack struct {
	Config Config
}

func (p SingleTrack) Process(input string, in, out mathtone.NumberFormat) ([]mathtone.Sequence, error) {
	digits, err := p.Config.Prepare(input, in, out)
	if err != nil {
		return nil, err
	}
	mapper := p.Config.Mapper()
	tones := make([]mathtone.Tone, 0, len(digits))
	for _, r := range digits {
		if t, ok := mapper.Digit(r, out); ok {
			tones = append(tones, t)
		}
	}
	return []mathtone.Sequence{mathtone.NewSequence("Single", tones)}, nil
}
