package output

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/vsariola/mathtone"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	midiResolution = 960 // ticks per quarter note
	midiTempo      = 120 // beats per minute
	midiVelocity   = 100
)

var quarterNote = time.Minute / midiTempo

// MIDIFile writes the sequences as a standard MIDI file, one track per
// sequence. Tones are quantized to the nearest equal tempered key; harmonic
// stacks added by timbre expansion are written as their fundamental only.
// Notes held over from the previous tone keep sounding without a new note on.
type MIDIFile struct {
	FileNamer
}

func (m MIDIFile) Send(seqs []mathtone.Sequence) error {
	_, err := m.SendFile(seqs)
	return err
}

func (m MIDIFile) SendFile(seqs []mathtone.Sequence) (string, error) {
	if isEmpty(seqs) {
		return "", nil
	}
	var buf bytes.Buffer
	if err := WriteMIDI(&buf, seqs); err != nil {
		return "", err
	}
	return m.writeFile(seqs, ".mid", buf.Bytes())
}

// WriteMIDI encodes the sequences as a format 1 SMF.
func WriteMIDI(w io.Writer, seqs []mathtone.Sequence) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(midiResolution)
	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(midiTempo))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return fmt.Errorf("could not add tempo track: %w", err)
	}
	for i, seq := range seqs {
		if err := s.Add(sequenceTrack(seq, midiChannel(i))); err != nil {
			return fmt.Errorf("could not add track %q: %w", seq.Title, err)
		}
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("could not write midi: %w", err)
	}
	return nil
}

// midiChannel spreads the sequences over the channels, leaving out channel
// 10 (index 9) which General MIDI reserves for drums.
func midiChannel(i int) uint8 {
	ch := i % 15
	if ch >= 9 {
		ch++
	}
	return uint8(ch)
}

func sequenceTrack(seq mathtone.Sequence, channel uint8) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(seq.Title))
	var pos time.Duration
	var last uint32        // absolute tick of the previous event
	on := map[uint8]bool{} // keys sounding at pos
	for _, tone := range seq.Tones {
		start := Ticks(pos)
		pos += tone.Duration
		keys := map[uint8]bool{}
		held := map[uint8]bool{}
		for _, f := range tone.Notes(seq.Timbre) {
			k := Key(f)
			keys[k] = true
			if tone.Holds(f) && on[k] {
				held[k] = true
			}
		}
		for _, k := range sortedKeys(on) {
			if !held[k] {
				tr.Add(start-last, midi.NoteOff(channel, k))
				last = start
				delete(on, k)
			}
		}
		for _, k := range sortedKeys(keys) {
			if !held[k] {
				tr.Add(start-last, midi.NoteOn(channel, k, midiVelocity))
				last = start
				on[k] = true
			}
		}
	}
	end := Ticks(pos)
	for _, k := range sortedKeys(on) {
		tr.Add(end-last, midi.NoteOff(channel, k))
		last = end
	}
	tr.Close(end - last)
	return tr
}

func sortedKeys(keys map[uint8]bool) []uint8 {
	ret := make([]uint8, 0, len(keys))
	for k := range keys {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Key returns the MIDI key closest to frequency f, A4 = 440 Hz = 69.
func Key(f float64) uint8 {
	k := math.Round(69 + 12*math.Log2(f/440))
	return uint8(math.Min(math.Max(k, 0), 127))
}

// Ticks converts a duration into MIDI ticks at the file's fixed tempo.
func Ticks(d time.Duration) uint32 {
	return uint32(int64(d) * midiResolution / int64(quarterNote))
}
