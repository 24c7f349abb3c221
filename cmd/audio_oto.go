//go:build cgo || windows || darwin

package cmd

import (
	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/oto"
)

func NewAudioContext() (mathtone.AudioContext, error) {
	return oto.NewContext()
}
