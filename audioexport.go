package mathtone

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// wavHeader is the 44 byte header of a stereo 16-bit PCM .wav file, laid out
// in the order the fields are written to disk.
// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
type wavHeader struct {
	RiffID        [4]byte
	RiffSize      uint32
	WaveID        [4]byte
	FmtID         [4]byte
	FmtSize       uint32
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataID        [4]byte
	DataSize      uint32
}

func newWavHeader(frames int) wavHeader {
	const (
		channels       = 2
		bytesPerSample = 2
	)
	dataSize := uint32(frames * channels * bytesPerSample)
	return wavHeader{
		RiffID:        [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:      36 + dataSize,
		WaveID:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		Format:        1, // PCM
		Channels:      channels,
		SampleRate:    SampleRate,
		ByteRate:      SampleRate * channels * bytesPerSample,
		BlockAlign:    channels * bytesPerSample,
		BitsPerSample: 8 * bytesPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// PCM16 returns the interleaved samples as 16-bit integers. Every sample is
// clamped to [-1, 1] and scaled by 32767, truncating towards zero.
func (b AudioBuffer) PCM16() []int16 {
	ret := make([]int16, 0, 2*len(b))
	for _, frame := range b {
		for _, v := range frame {
			ret = append(ret, int16(max(-1, min(1, v))*math.MaxInt16))
		}
	}
	return ret
}

// Wav serializes the buffer as a 44100 Hz, stereo, 16-bit PCM .wav file.
func (b AudioBuffer) Wav() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, newWavHeader(len(b))); err != nil {
		return nil, fmt.Errorf("could not write wav header: %w", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, b.PCM16()); err != nil {
		return nil, fmt.Errorf("could not write wav data: %w", err)
	}
	return buf.Bytes(), nil
}

// Raw serializes the interleaved samples without any header, either as int16
// (pcm16 = true) or float32 samples, little endian.
func (b AudioBuffer) Raw(pcm16 bool) ([]byte, error) {
	var buf bytes.Buffer
	var data any = b.Interleaved()
	if pcm16 {
		data = b.PCM16()
	}
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("could not write raw data: %w", err)
	}
	return buf.Bytes(), nil
}
