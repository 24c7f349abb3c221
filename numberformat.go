package mathtone

import (
	"fmt"
	"math/bits"
	"strings"
)

// NumberFormat is a supported numeric base. The value of the constant is the
// radix itself, so NumberFormat(16) == Hex.
type NumberFormat int

const (
	Bin    NumberFormat = 2
	Qad    NumberFormat = 4
	Oct    NumberFormat = 8
	Dec    NumberFormat = 10
	Hex    NumberFormat = 16
	Base32 NumberFormat = 32
)

// digitAlphabet holds the canonical digits of the widest format; every other
// format uses a prefix of it.
const digitAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUV"

// NumberFormats lists all supported formats in increasing radix.
var NumberFormats = []NumberFormat{Bin, Qad, Oct, Dec, Hex, Base32}

var formatNames = map[NumberFormat][]string{
	Bin:    {"Bin", "binary", "2"},
	Qad:    {"Qad", "quaternary", "quad", "4"},
	Oct:    {"Oct", "octal", "8"},
	Dec:    {"Dec", "decimal", "10"},
	Hex:    {"Hex", "hexadecimal", "16"},
	Base32: {"Base32", "b32", "32"},
}

// Valid reports if f is one of the supported formats.
func (f NumberFormat) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// Base returns the radix of the format.
func (f NumberFormat) Base() int {
	return int(f)
}

// Alphabet returns the canonical uppercase digits of the format, or an empty
// string for unsupported formats.
func (f NumberFormat) Alphabet() string {
	if !f.Valid() {
		return ""
	}
	return digitAlphabet[:f]
}

// Value returns the digit value of r in this format. Letters are accepted in
// either case.
func (f NumberFormat) Value(r rune) (int, bool) {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'A' && r <= 'V':
		v = int(r-'A') + 10
	case r >= 'a' && r <= 'v':
		v = int(r-'a') + 10
	default:
		return 0, false
	}
	if !f.Valid() || v >= int(f) {
		return 0, false
	}
	return v, true
}

// Digit returns the canonical character for digit value v. It panics if v is
// not a digit of the format, which is always a programming error.
func (f NumberFormat) Digit(v int) byte {
	if v < 0 || v >= len(f.Alphabet()) {
		panic(fmt.Sprintf("digit value %d out of range for %v", v, f))
	}
	return digitAlphabet[v]
}

// IsPowerOfTwo reports if the radix is a power of two, i.e. every digit maps
// to a fixed number of bits.
func (f NumberFormat) IsPowerOfTwo() bool {
	return f.Valid() && f&(f-1) == 0
}

// Bits returns log2 of the radix for power-of-two formats and 0 otherwise.
func (f NumberFormat) Bits() int {
	if !f.IsPowerOfTwo() {
		return 0
	}
	return bits.TrailingZeros(uint(f))
}

func (f NumberFormat) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return fmt.Sprintf("NumberFormat(%d)", int(f))
}

// ParseNumberFormat accepts a format name (Hex, hexadecimal, ...) in any case
// or its radix written in decimal.
func ParseNumberFormat(s string) (NumberFormat, error) {
	s = strings.TrimSpace(s)
	for _, f := range NumberFormats {
		for _, name := range formatNames[f] {
			if strings.EqualFold(name, s) {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown number format %q", s)
}

// ParseNumberFormats parses a comma separated list of formats, e.g. "16,8".
func ParseNumberFormats(s string) ([]NumberFormat, error) {
	var ret []NumberFormat
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseNumberFormat(part)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, nil
}

func (f NumberFormat) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("cannot marshal unsupported number format %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *NumberFormat) UnmarshalText(text []byte) error {
	v, err := ParseNumberFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
