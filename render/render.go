// Package render synthesizes tone sequences into stereo audio.
package render

import (
	"math"

	"github.com/viterin/vek/vek32"
	"github.com/vsariola/mathtone"
)

// Renderer mixes sequences of sine tones into an AudioBuffer.
type Renderer struct {
	cfg Config
}

func New(opts ...Option) *Renderer {
	return &Renderer{cfg: ApplyOptions(opts...)}
}

func (r *Renderer) Config() Config {
	return r.cfg
}

// Render mixes the sequences and serializes the result as a .wav file. No
// sequences give nil bytes and no error.
func (r *Renderer) Render(seqs []mathtone.Sequence) ([]byte, error) {
	if len(seqs) == 0 {
		return nil, nil
	}
	return r.Mix(seqs).Wav()
}

// Render renders with the default settings.
func Render(seqs []mathtone.Sequence) ([]byte, error) {
	return New().Render(seqs)
}

// Mix synthesizes the sequences into a buffer as long as the longest of
// them. A lone sequence plays centered at full level. Several sequences are
// attenuated by MixScaling, spread over the stereo field by StereoGains and
// normalized afterwards.
func (r *Renderer) Mix(seqs []mathtone.Sequence) mathtone.AudioBuffer {
	total := mathtone.Samples(mathtone.LongestDuration(seqs))
	left := make([]float32, total)
	right := make([]float32, total)
	if total == 0 {
		return mathtone.AudioBuffer{}
	}
	n := len(seqs)
	scale := float32(MixScaling(n, r.cfg.ScalingExponent, r.cfg.ScalingFloor))
	gains := StereoGains(n, r.cfg.MinShift, r.cfg.MaxShift)
	for i, seq := range seqs {
		r.addSequence(seq, scale*gains[i][0], scale*gains[i][1], left, right)
	}
	buffer := mathtone.NewAudioBuffer(left, right)
	if n > 1 {
		buffer = r.Normalize(buffer)
	}
	return buffer
}

// addSequence synthesizes one sequence and adds it into the channels with the
// given gains. Tones that would not fit the channels are skipped.
func (r *Renderer) addSequence(seq mathtone.Sequence, leftGain, rightGain float32, left, right []float32) {
	var wave, scaled []float32
	pos := 0
	for _, tone := range seq.Tones {
		samples := mathtone.Samples(tone.Duration)
		if pos+samples > len(left) {
			pos += samples
			continue
		}
		if !tone.IsSilent() {
			if cap(wave) < samples {
				wave = make([]float32, samples)
				scaled = make([]float32, samples)
			}
			wave, scaled = wave[:samples], scaled[:samples]
			r.synthesize(tone, seq.Timbre, wave)
			vek32.MulNumber_Into(scaled, wave, leftGain)
			vek32.Add_Inplace(left[pos:pos+samples], scaled)
			vek32.MulNumber_Into(scaled, wave, rightGain)
			vek32.Add_Inplace(right[pos:pos+samples], scaled)
		}
		pos += samples
	}
}

// synthesize writes the harmonic stack of the tone into wave, starting from
// phase zero.
func (r *Renderer) synthesize(tone mathtone.Tone, timbre mathtone.Timbre, wave []float32) {
	vek32.Zeros_Into(wave, len(wave))
	// every note of a chord repeats the harmonic layout of the timbre
	n := max(len(timbre), 1)
	for k, f := range tone.Frequencies {
		coeff := timbre.Coefficient(k % n)
		if f <= 0 || coeff <= 0 {
			continue
		}
		amp := r.Amplitude(f) * float64(coeff)
		w := 2 * math.Pi * f / mathtone.SampleRate
		for i := range wave {
			wave[i] += float32(amp * math.Sin(w*float64(i)))
		}
	}
}

// Amplitude returns the level of a sine at frequency f: the base amplitude,
// boosted logarithmically below the reference frequency.
func (r *Renderer) Amplitude(f float64) float64 {
	return r.cfg.BaseAmplitude * Compensation(f, r.cfg.ReferenceFrequency, r.cfg.AmplificationFactor, r.cfg.MaxMultiplier)
}

// Compensation returns 1 + ln(ref/f)/ln(factor), clamped to [1, maxMultiplier].
func Compensation(f, ref, factor, maxMultiplier float64) float64 {
	if f <= 0 {
		return 1
	}
	m := 1 + math.Log(ref/f)/math.Log(factor)
	return math.Min(math.Max(m, 1), maxMultiplier)
}

// MixScaling returns the attenuation applied to each of n mixed sequences.
func MixScaling(n int, exponent, floor float64) float64 {
	if n <= 1 {
		return 1
	}
	return math.Max(1/math.Pow(float64(n), exponent), floor)
}

// StereoGains returns the (left, right) gains of n sequences spread
// symmetrically around the center. The step between neighbours is
// min(minShift, maxShift/(n-1)); with maxShift < 1 no sequence is ever
// silent on either channel.
func StereoGains(n int, minShift, maxShift float64) [][2]float32 {
	if n <= 0 {
		return nil
	}
	ret := make([][2]float32, n)
	if n == 1 {
		ret[0] = [2]float32{1, 1}
		return ret
	}
	step := math.Min(minShift, maxShift/float64(n-1))
	if n == 2 {
		ret[0] = [2]float32{1, float32(1 - step)}
		ret[1] = [2]float32{float32(1 - step), 1}
		return ret
	}
	center := float64(n-1) / 2
	for i := range ret {
		shift := (float64(i) - center) * step
		ret[i] = [2]float32{float32(1 - math.Max(0, shift)), float32(1 + math.Min(0, shift))}
	}
	return ret
}

// Normalize returns the buffer rescaled so that its peak equals the target
// when the peak exceeds the threshold; otherwise the buffer is returned
// unchanged. Quiet buffers are never amplified.
func (r *Renderer) Normalize(buffer mathtone.AudioBuffer) mathtone.AudioBuffer {
	return Normalize(buffer, r.cfg.NormalizeThreshold, r.cfg.NormalizeTarget)
}

func Normalize(buffer mathtone.AudioBuffer, threshold, target float32) mathtone.AudioBuffer {
	peak := buffer.Peak()
	if peak <= threshold {
		return buffer
	}
	left, right := buffer.Channels()
	vek32.MulNumber_Inplace(left, target/peak)
	vek32.MulNumber_Inplace(right, target/peak)
	return mathtone.NewAudioBuffer(left, right)
}
