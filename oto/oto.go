//go:build cgo || windows || darwin

// Package oto plays rendered audio on the default output device.
package oto

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/mathtone"
)

type OtoContext oto.Context
type OtoOutput struct {
	context *oto.Context
	player  *oto.Player
}

// pollInterval is how often WriteAudio checks if the player has finished.
const pollInterval = 10 * time.Millisecond

// NewContext opens the audio device. oto allows only one context per
// process.
func NewContext() (*OtoContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   mathtone.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return (*OtoContext)(context), nil
}

func (c *OtoContext) Output() mathtone.AudioSink {
	return &OtoOutput{context: (*oto.Context)(c)}
}

// Close suspends the device; the underlying oto context cannot be disposed.
func (c *OtoContext) Close() error {
	if err := (*oto.Context)(c).Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// WriteAudio plays the buffer and blocks until it has been played.
func (o *OtoOutput) WriteAudio(buffer mathtone.AudioBuffer) error {
	data, err := buffer.Raw(true)
	if err != nil {
		return fmt.Errorf("cannot convert buffer: %w", err)
	}
	if o.player != nil {
		o.player.Close()
	}
	o.player = o.context.NewPlayer(bytes.NewReader(data))
	o.player.Play()
	for o.player.IsPlaying() {
		time.Sleep(pollInterval)
	}
	if err := o.player.Err(); err != nil {
		return fmt.Errorf("cannot play buffer: %w", err)
	}
	return nil
}

// Close disposes of resources
func (o *OtoOutput) Close() error {
	if o.player == nil {
		return nil
	}
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	o.player = nil
	return nil
}
