package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vsariola/mathtone"
	"github.com/vsariola/mathtone/catalog"
	"github.com/vsariola/mathtone/cmd"
	"github.com/vsariola/mathtone/output"
	"github.com/vsariola/mathtone/processor"
	"github.com/vsariola/mathtone/session"
	"github.com/vsariola/mathtone/timbre"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type renderOptions struct {
	config    string
	from, to  string
	processor string
	timbre    string
	frequency float64
	duration  time.Duration
	chords    bool
	dir       string
	wav       bool
	midi      bool
	raw       bool
	trace     bool
	template  string
	play      bool
	dump      bool
}

var renderFlags renderOptions

func init() {
	rootCmd.AddCommand(renderCmd)
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.config, "config", "c", "", "Session file overriding the defaults and the user's session.yml.")
	f.StringVarP(&renderFlags.from, "from", "f", "", "Number format of the input digits.")
	f.StringVarP(&renderFlags.to, "to", "t", "", "Number format(s) the tones are derived from, comma separated; one output per format.")
	f.StringVarP(&renderFlags.processor, "processor", "k", "", "Processor: "+kindList()+".")
	f.StringVar(&renderFlags.timbre, "timbre", "", "Timbre profile adding harmonics to every tone, see the timbres command.")
	f.Float64Var(&renderFlags.frequency, "frequency", 0, "Frequency of digit value 1 in Hz.")
	f.DurationVar(&renderFlags.duration, "duration", 0, "Duration of one digit, e.g. 300ms.")
	f.BoolVar(&renderFlags.chords, "chords", false, "Merge the tracks of a '+' expression into chords.")
	f.StringVarP(&renderFlags.dir, "output", "o", "", "Directory where the files are written.")
	f.BoolVarP(&renderFlags.wav, "wav", "w", false, "Write a .wav file.")
	f.BoolVarP(&renderFlags.midi, "midi", "m", false, "Write a .mid file.")
	f.BoolVarP(&renderFlags.raw, "raw", "r", false, "Write the samples as a headerless 16-bit .raw file.")
	f.BoolVar(&renderFlags.trace, "trace", false, "Print a piano roll of the sequences.")
	f.StringVar(&renderFlags.template, "template", "", "Text template used by --trace instead of the built-in piano roll.")
	f.BoolVarP(&renderFlags.play, "play", "p", false, "Play the result.")
	f.BoolVarP(&renderFlags.dump, "dump", "d", false, "Print the sequences as YAML.")
}

var renderCmd = &cobra.Command{
	Use:   "render [flags] EXPRESSION",
	Short: "Render an expression into audio",
	Example: `  mathtone render pi
  mathtone render --from dec --to hex,oct -k reach 31415926535
  mathtone render -k multi --timbre piano --play "pi + e"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		c.SilenceUsage = true
		s, err := loadSession(c)
		if err != nil {
			return err
		}
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		return run(s, cat, strings.Join(args, " "), c.OutOrStdout())
	},
}

func kindList() string {
	names := make([]string, len(processor.Kinds))
	for i, k := range processor.Kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// loadSession reads the session files and applies the flags the user gave.
func loadSession(c *cobra.Command) (session.Session, error) {
	s, err := session.Load(renderFlags.config)
	if err != nil {
		return s, fmt.Errorf("could not load session: %w", err)
	}
	flags := c.Flags()
	if flags.Changed("from") {
		if s.From, err = mathtone.ParseNumberFormat(renderFlags.from); err != nil {
			return s, err
		}
	}
	if flags.Changed("to") {
		if s.To, err = mathtone.ParseNumberFormats(renderFlags.to); err != nil {
			return s, err
		}
	}
	if flags.Changed("processor") {
		if s.Processor, err = processor.ParseKind(renderFlags.processor); err != nil {
			return s, err
		}
	}
	if flags.Changed("timbre") {
		s.Timbre = renderFlags.timbre
	}
	if flags.Changed("frequency") {
		s.BaseFrequency = renderFlags.frequency
	}
	if flags.Changed("duration") {
		s.BaseDuration = renderFlags.duration
	}
	if flags.Changed("chords") {
		s.Chords = renderFlags.chords
	}
	if flags.Changed("output") {
		s.Output.Dir = renderFlags.dir
	}
	// asking for any output explicitly replaces the outputs of the session
	if flags.Changed("wav") || flags.Changed("midi") || flags.Changed("raw") || flags.Changed("trace") || flags.Changed("play") {
		s.Output.Wav = renderFlags.wav
		s.Output.Midi = renderFlags.midi
		s.Output.Trace = renderFlags.trace
		s.Output.Play = renderFlags.play
	}
	return s, s.Validate()
}

func run(s session.Session, cat *catalog.Catalog, expr string, stdout io.Writer) error {
	var coeffs mathtone.Timbre
	if s.Timbre != "" {
		var ok bool
		if coeffs, ok = cat.Timbre(s.Timbre); !ok {
			return fmt.Errorf("unknown timbre %q, see mathtone timbres", s.Timbre)
		}
	}
	proc, err := processor.New(s.Processor, s.ProcessorConfig(cat))
	if err != nil {
		return err
	}
	outputs, closer, err := makeOutputs(s, stdout)
	if err != nil {
		return err
	}
	defer closer()
	for _, f := range s.To {
		debug.Printf("processing %q with %v processor, %v to %v", expr, s.Processor, s.From, f)
		seqs, err := proc.Process(expr, s.From, f)
		if err != nil {
			return fmt.Errorf("could not process %q: %w", expr, err)
		}
		if coeffs != nil {
			seqs = timbre.ExpandAll(seqs, coeffs)
		}
		for _, seq := range seqs {
			debug.Printf("%v: %d tones, %v", seq.Title, len(seq.Tones), seq.TotalDuration)
		}
		if len(seqs) == 0 || len(seqs[0].Tones) == 0 {
			logger.Printf("%q has no %v digits to play", expr, f)
			continue
		}
		for _, o := range outputs {
			if fo, ok := o.(mathtone.FileOutput); ok {
				path, err := fo.SendFile(seqs)
				if err != nil {
					return err
				}
				if path != "" {
					fmt.Fprintln(stdout, path)
				}
				continue
			}
			if err := o.Send(seqs); err != nil {
				return err
			}
		}
	}
	return nil
}

func makeOutputs(s session.Session, stdout io.Writer) ([]mathtone.Output, func(), error) {
	var outputs []mathtone.Output
	closer := func() {}
	namer := output.FileNamer{Dir: s.Output.Dir}
	renderer := s.Renderer()
	if renderFlags.dump {
		outputs = append(outputs, dumper{stdout})
	}
	if s.Output.Trace {
		trace, err := newTrace(stdout)
		if err != nil {
			return nil, nil, err
		}
		trace.Resolution = s.BaseDuration
		trace.Limit = terminalLimit(stdout, s.BaseDuration)
		outputs = append(outputs, trace)
	}
	if s.Output.Wav {
		outputs = append(outputs, output.WavFile{FileNamer: namer, Renderer: renderer})
	}
	if renderFlags.raw {
		outputs = append(outputs, output.RawFile{FileNamer: namer, Renderer: renderer, PCM16: true})
	}
	if s.Output.Midi {
		outputs = append(outputs, output.MIDIFile{FileNamer: namer})
	}
	if s.Output.Play {
		context, err := cmd.NewAudioContext()
		if err != nil {
			return nil, nil, fmt.Errorf("could not acquire audio context: %w", err)
		}
		sink := context.Output()
		outputs = append(outputs, output.Player{Sink: sink, Mix: renderer.Mix})
		closer = func() {
			sink.Close()
			context.Close()
		}
	}
	if len(outputs) == 0 {
		logger.Printf("no outputs selected, use --wav, --midi, --trace, --play or --dump")
	}
	return outputs, closer, nil
}

func newTrace(stdout io.Writer) (*output.Trace, error) {
	if renderFlags.template != "" {
		return output.NewTraceFromTemplate(stdout, renderFlags.template)
	}
	return output.NewTrace(stdout)
}

// dumper prints the sequences as YAML.
type dumper struct {
	w io.Writer
}

func (d dumper) Send(seqs []mathtone.Sequence) error {
	enc := yaml.NewEncoder(d.w)
	defer enc.Close()
	if err := enc.Encode(seqs); err != nil {
		return fmt.Errorf("could not dump sequences: %w", err)
	}
	return nil
}

// terminalLimit fits the trace to the width of the terminal w is attached to,
// leaving room for the frequency column. It returns 0 (the trace default) when
// w is not a terminal.
func terminalLimit(w io.Writer, resolution time.Duration) time.Duration {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 13 {
		return 0
	}
	return time.Duration(width-13) * resolution
}
