package output

import (
	"fmt"

	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/render"
)

// WavFile renders the sequences into a new .wav file.
type WavFile struct {
	FileNamer
	Renderer *render.Renderer // render.New() if nil
}

func (w WavFile) Send(seqs []mathtone.Sequence) error {
	_, err := w.SendFile(seqs)
	return err
}

// SendFile returns the path of the written file, or an empty path when there
// was nothing to render.
func (w WavFile) SendFile(seqs []mathtone.Sequence) (string, error) {
	if isEmpty(seqs) {
		return "", nil
	}
	r := w.Renderer
	if r == nil {
		r = render.New()
	}
	data, err := r.Render(seqs)
	if err != nil {
		return "", fmt.Errorf("could not render wav: %w", err)
	}
	return w.writeFile(seqs, ".wav", data)
}

// RawFile writes the mixed samples without a header, as 16-bit integers
// when PCM16 is set and as float32 otherwise.
type RawFile struct {
	FileNamer
	Renderer *render.Renderer // render.New() if nil
	PCM16    bool
}

func (w RawFile) Send(seqs []mathtone.Sequence) error {
	_, err := w.SendFile(seqs)
	return err
}

func (w RawFile) SendFile(seqs []mathtone.Sequence) (string, error) {
	if isEmpty(seqs) {
		return "", nil
	}
	r := w.Renderer
	if r == nil {
		r = render.New()
	}
	data, err := r.Mix(seqs).Raw(w.PCM16)
	if err != nil {
		return "", fmt.Errorf("could not render raw audio: %w", err)
	}
	return w.writeFile(seqs, ".raw", data)
}
