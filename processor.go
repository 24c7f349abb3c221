package mathtone

type (
	// Processor turns a digit string into one or more tone sequences. The
	// input is written in the in format; the tones are derived from its
	// digits in the out format.
	Processor interface {
		Process(input string, in, out NumberFormat) ([]Sequence, error)
	}

	// Transformer rewrites a sequence into a new one, e.g. by adding
	// harmonics. The input sequence is never modified.
	Transformer interface {
		Transform(seq Sequence) Sequence
	}

	// ConstantLookup resolves a name such as "pi" into a literal digit
	// string.
	ConstantLookup interface {
		Constant(name string) (digits string, ok bool)
	}

	// TimbreLookup resolves the name of an instrument into its harmonic
	// coefficients.
	TimbreLookup interface {
		Timbre(name string) (Timbre, bool)
	}

	// Output receives the sequences produced by a Processor.
	Output interface {
		Send(seqs []Sequence) error
	}

	// FileOutput is an Output that writes a file and can report where.
	FileOutput interface {
		Output
		SendFile(seqs []Sequence) (path string, err error)
	}

)

// TransformAll applies the transformers in order to every sequence and
// returns the new sequences.
func TransformAll(seqs []Sequence, transformers ...Transformer) []Sequence {
	ret := make([]Sequence, len(seqs))
	for i, s := range seqs {
		s = s.Copy()
		for _, t := range transformers {
			s = t.Transform(s)
		}
		ret[i] = s
	}
	return ret
}
