//go:build !cgo && !windows && !darwin

package cmd

import (
	"errors"

	"github.com/vsariola/mathtone"
)

func NewAudioContext() (mathtone.AudioContext, error) {
	// oto needs cgo for ALSA on this platform
	return nil, errors.New("audio playback is not available in builds without cgo")
}
