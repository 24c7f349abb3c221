package output

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/mathtone"
)

//go:embed templates/*
var templateFS embed.FS

// Trace writes a piano roll of the sequences as text: one row per frequency,
// one column per Resolution of time. '+' marks where a note is struck and '='
// where it still sounds, including notes held over from the previous tone.
type Trace struct {
	W          io.Writer
	Resolution time.Duration // 300ms if zero
	Limit      time.Duration // one minute if zero
	Template   *template.Template
	Name       string // template to execute
}

type (
	traceRow struct {
		Frequency float64
		Cells     string
	}

	traceSequence struct {
		mathtone.Sequence
		Slots     int
		Truncated bool
		Rows      []traceRow
	}
)

// NewTrace returns a Trace using the built-in template.
func NewTrace(w io.Writer) (*Trace, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Trace{W: w, Template: tmpl, Name: "trace.txt"}, nil
}

// NewTraceFromTemplate parses a custom template; the sequences are available
// as .Sequences, each with .Title, .Slots and .Rows.
func NewTraceFromTemplate(w io.Writer, filename string) (*Trace, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFiles(filename)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on file "%v": %v`, filename, err)
	}
	return &Trace{W: w, Template: tmpl, Name: filepath.Base(filename)}, nil
}

func (t *Trace) Send(seqs []mathtone.Sequence) error {
	resolution := t.Resolution
	if resolution <= 0 {
		resolution = 300 * time.Millisecond
	}
	limit := t.Limit
	if limit <= 0 {
		limit = time.Minute
	}
	data := struct {
		Sequences []traceSequence
		Limit     time.Duration
	}{Limit: limit}
	for _, s := range seqs {
		data.Sequences = append(data.Sequences, traceOf(s, resolution, limit))
	}
	if err := t.Template.ExecuteTemplate(t.W, t.Name, data); err != nil {
		return fmt.Errorf(`could not execute template "%v": %v`, t.Name, err)
	}
	return nil
}

func traceOf(seq mathtone.Sequence, resolution, limit time.Duration) traceSequence {
	shown := min(seq.TotalDuration, limit)
	slots := int((shown + resolution - 1) / resolution)
	ret := traceSequence{Sequence: seq, Slots: slots, Truncated: seq.TotalDuration > limit}
	rows := map[float64][]byte{}
	var pos time.Duration
	for _, tone := range seq.Tones {
		start := int((pos + resolution/2) / resolution)
		length := max(int((tone.Duration+resolution/2)/resolution), 1)
		pos += tone.Duration
		if tone.IsSilent() || start >= slots {
			continue
		}
		for _, f := range tone.Notes(seq.Timbre) {
			cells, ok := rows[f]
			if !ok {
				cells = []byte(fmt.Sprintf("%*s", slots, ""))
				rows[f] = cells
			}
			if !tone.Holds(f) {
				cells[start] = '+'
			} else if cells[start] == ' ' {
				cells[start] = '='
			}
			for i := start + 1; i < start+length && i < slots; i++ {
				if cells[i] == ' ' {
					cells[i] = '='
				}
			}
		}
	}
	for f, cells := range rows {
		ret.Rows = append(ret.Rows, traceRow{Frequency: f, Cells: string(cells)})
	}
	sort.Slice(ret.Rows, func(i, j int) bool { return ret.Rows[i].Frequency > ret.Rows[j].Frequency })
	return ret
}
