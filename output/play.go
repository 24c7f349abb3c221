package output

import (
	"fmt"

	"github.com/vsariola/mathtone"
)

// Player renders the sequences and writes the mix to an audio sink, e.g. the
// speakers. Send blocks until the sink has consumed the audio.
type Player struct {
	Sink mathtone.AudioSink
	Mix  func([]mathtone.Sequence) mathtone.AudioBuffer
}

func (p Player) Send(seqs []mathtone.Sequence) error {
	if isEmpty(seqs) {
		return nil
	}
	if err := p.Sink.WriteAudio(p.Mix(seqs)); err != nil {
		return fmt.Errorf("could not play: %w", err)
	}
	return nil
}
