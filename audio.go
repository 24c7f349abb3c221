package mathtone

import (
	"math"
	"time"

	"github.com/viterin/vek/vek32"
)

// SampleRate is the rate of every rendered AudioBuffer, in frames per second.
const SampleRate = 44100

type (
	// AudioBuffer is a buffer of stereo audio samples of variable length,
	// each sample represented by [2]float32. [0] is left channel, [1] is
	// right.
	AudioBuffer [][2]float32

	// AudioSink is something that can consume rendered audio, e.g. a
	// speaker. WriteAudio blocks until the whole buffer has been consumed.
	AudioSink interface {
		WriteAudio(buffer AudioBuffer) error
		Close() error
	}

	// AudioContext hands out AudioSinks. Closing the context closes the
	// underlying device.
	AudioContext interface {
		Output() AudioSink
		Close() error
	}
)

// Samples returns how many frames a duration lasts at SampleRate. The
// computation is done in integers so that e.g. 500ms is always exactly 22050
// frames.
func Samples(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(int64(d) * SampleRate / int64(time.Second))
}

// NewAudioBuffer builds a buffer from separate left and right channels. The
// length is the longer of the two; the missing tail of the shorter channel is
// zero.
func NewAudioBuffer(left, right []float32) AudioBuffer {
	ret := make(AudioBuffer, max(len(left), len(right)))
	for i, v := range left {
		ret[i][0] = v
	}
	for i, v := range right {
		ret[i][1] = v
	}
	return ret
}

// Frames returns the length of the buffer in stereo frames.
func (b AudioBuffer) Frames() int {
	return len(b)
}

// Duration returns the playing time of the buffer.
func (b AudioBuffer) Duration() time.Duration {
	return time.Duration(int64(len(b)) * int64(time.Second) / SampleRate)
}

// Channels splits the buffer into left and right channel slices.
func (b AudioBuffer) Channels() (left, right []float32) {
	left = make([]float32, len(b))
	right = make([]float32, len(b))
	for i, s := range b {
		left[i], right[i] = s[0], s[1]
	}
	return
}

// Interleaved returns the samples as L, R, L, R, ...
func (b AudioBuffer) Interleaved() []float32 {
	ret := make([]float32, 0, 2*len(b))
	for _, s := range b {
		ret = append(ret, s[0], s[1])
	}
	return ret
}

// Peak returns the largest absolute sample value over both channels, 0 for
// an empty buffer.
func (b AudioBuffer) Peak() float32 {
	if len(b) == 0 {
		return 0
	}
	data := b.Interleaved()
	vek32.Abs_Inplace(data)
	return vek32.Max(data)
}

// Copy makes a deep copy of the buffer.
func (b AudioBuffer) Copy() AudioBuffer {
	ret := make(AudioBuffer, len(b))
	copy(ret, b)
	return ret
}

// IsFinite reports if the buffer contains no NaN or infinite samples.
func (b AudioBuffer) IsFinite() bool {
	for _, s := range b {
		for _, v := range s {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return false
			}
		}
	}
	return true
}
