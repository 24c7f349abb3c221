package processor

import (
	"github.com/vsariola/mathtone"
)

// OctaveGroup is a range of digit values rendered on a track of its own.
// A tone of the group may sustain for up to Reach slots.
type OctaveGroup struct {
	Name   string
	Lo, Hi int // inclusive digit value range
	Reach  int
}

func (g OctaveGroup) Contains(value int) bool {
	return value >= g.Lo && value <= g.Hi
}

// Title is the title of the sequence produced for the group.
func (g OctaveGroup) Title() string {
	return "Octave_" + g.Name
}

var octaveGroups = map[mathtone.NumberFormat][]OctaveGroup{
	mathtone.Qad: {
		{"Low", 1, 1, 2},
		{"High", 2, 3, 1},
	},
	mathtone.Oct: {
		{"Low", 1, 1, 4},
		{"Mid", 2, 3, 2},
		{"High", 4, 7, 1},
	},
	mathtone.Hex: {
		{"Low", 1, 1, 8},
		{"MidLow", 2, 3, 4},
		{"MidHigh", 4, 7, 2},
		{"High", 8, 15, 1},
	},
	mathtone.Base32: {
		{"Low", 1, 1, 16},
		{"MidLow", 2, 3, 8},
		{"Mid", 4, 7, 4},
		{"MidHigh", 8, 15, 2},
		{"High", 16, 31, 1},
	},
}

// OctaveGroups returns the groups used for digits of the given format. Every
// nonzero digit value belongs to exactly one group. Formats without a
// power-of-two octave structure get a single group of reach 1.
func OctaveGroups(f mathtone.NumberFormat) []OctaveGroup {
	if g, ok := octaveGroups[f]; ok {
		ret := make([]OctaveGroup, len(g))
		copy(ret, g)
		return ret
	}
	return []OctaveGroup{{"Single", 1, f.Base() - 1, 1}}
}

// ReachSingleTrack emits one sequence per octave group. Every slot of the
// digit string lasts one base duration. A digit starts a tone on its group's
// track that sustains for the group's reach, cut short when the same digit
// sounds again or the digits end. Slots where nothing of the group sounds
// are silent. Notes still sustaining when another digit of the group starts
// sound together with it as a chord; such notes are listed in the Held
// frequencies of the chord tone. All returned sequences last exactly
// len(digits) base durations.
type ReachSingleTrack struct {
	Config Config
}

func (p ReachSingleTrack) Process(input string, in, out mathtone.NumberFormat) ([]mathtone.Sequence, error) {
	digits, err := p.Config.Prepare(input, in, out)
	if err != nil {
		return nil, err
	}
	values := make([]int, 0, len(digits))
	for _, r := range digits {
		if v, ok := out.Value(r); ok {
			values = append(values, v)
		}
	}
	mapper := p.Config.Mapper()
	groups := OctaveGroups(out)
	ret := make([]mathtone.Sequence, len(groups))
	for i, g := range groups {
		ret[i] = mathtone.NewSequence(g.Title(), reachTones(values, g, mapper))
	}
	return ret, nil
}

// reachTones lays out the tones of one group on the slot grid.
func reachTones(values []int, g OctaveGroup, mapper ToneMapper) []mathtone.Tone {
	n := len(values)
	// end[i] is the slot where the note started at slot i is released
	end := make([]int, n)
	next := make(map[int]int) // digit value -> next slot it occurs at
	for i := n - 1; i >= 0; i-- {
		v := values[i]
		if !g.Contains(v) {
			continue
		}
		nxt, ok := next[v]
		if !ok {
			nxt = n
		}
		end[i] = min(i+g.Reach, nxt, n)
		next[v] = i
	}
	var tones []mathtone.Tone
	var prev []int
	for t := 0; t < n; t++ {
		sounding := soundingAt(values, end, g, t)
		onset := g.Contains(values[t])
		if len(sounding) > 0 && !onset && equalInts(sounding, prev) {
			tones[len(tones)-1].Duration += mapper.BaseDuration
			continue
		}
		freqs := make([]float64, len(sounding))
		var held []float64
		for j, v := range sounding {
			freqs[j] = mapper.Frequency(v)
			if containsInt(prev, v) && !(onset && values[t] == v) {
				held = append(held, freqs[j])
			}
		}
		tone := mathtone.Chord(mapper.BaseDuration, freqs...)
		tone.Held = held
		tones = append(tones, tone)
		prev = sounding
	}
	return tones
}

// soundingAt returns, in ascending order, the values of the notes that
// started at or before slot t and have not been released yet.
func soundingAt(values, end []int, g OctaveGroup, t int) []int {
	var ret []int
	for v := g.Lo; v <= g.Hi; v++ {
		for i := t; i >= 0 && i > t-g.Reach; i-- {
			if values[i] == v && end[i] > t {
				ret = append(ret, v)
				break
			}
		}
	}
	return ret
}

func containsInt(a []int, v int) bool {
	for _, x := range a {
		if x == v {
			return true
		}
	}
	return false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
