// Package convert converts digit strings of arbitrary length between the
// supported number formats.
package convert

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/vsariola/mathtone"
)

// ErrInvalidDigit is matched by every *FormatError through errors.Is.
var ErrInvalidDigit = errors.New("invalid digit")

// FormatError reports a character that is not a digit of the source format.
type FormatError struct {
	Input    string
	Position int // byte offset of Char in Input
	Char     rune
	Format   mathtone.NumberFormat
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %v digit %q at position %d", e.Format, e.Char, e.Position)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidDigit
}

// Convert rewrites digits from one format into another. Empty input gives
// empty output and converting into the same format returns the input as is.
// For any other pair the result is canonical: uppercase, without superfluous
// leading zeros, at least one digit. Input digits are accepted in either
// case.
func Convert(digits string, from, to mathtone.NumberFormat) (string, error) {
	if !from.Valid() {
		return "", fmt.Errorf("unsupported source format %v", from)
	}
	if !to.Valid() {
		return "", fmt.Errorf("unsupported target format %v", to)
	}
	if digits == "" {
		return "", nil
	}
	values, err := digitValues(digits, from)
	if err != nil {
		return "", err
	}
	if from == to {
		return digits, nil
	}
	if from.IsPowerOfTwo() && to.IsPowerOfTwo() {
		return regroup(values, from.Bits(), to), nil
	}
	return viaBigInt(values, from, to), nil
}

// Canonical uppercases digits and strips superfluous leading zeros, keeping
// at least one digit.
func Canonical(digits string, f mathtone.NumberFormat) (string, error) {
	if digits == "" {
		return "", nil
	}
	values, err := digitValues(digits, f)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteByte(f.Digit(v))
	}
	return trimLeadingZeros(b.String()), nil
}

// BigInt parses digits into an arbitrary precision integer.
func BigInt(digits string, f mathtone.NumberFormat) (*big.Int, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unsupported format %v", f)
	}
	values, err := digitValues(digits, f)
	if err != nil {
		return nil, err
	}
	return valuesToInt(values, f), nil
}

func digitValues(digits string, f mathtone.NumberFormat) ([]int, error) {
	values := make([]int, 0, len(digits))
	for i, r := range digits {
		v, ok := f.Value(r)
		if !ok {
			return nil, &FormatError{Input: digits, Position: i, Char: r, Format: f}
		}
		values = append(values, v)
	}
	return values, nil
}

// regroup expands every digit into exactly fromBits bits and reads them back
// in groups of to.Bits(), starting from the least significant end.
func regroup(values []int, fromBits int, to mathtone.NumberFormat) string {
	toBits := to.Bits()
	totalBits := len(values) * fromBits
	bitAt := func(i int) int { // i counts from the least significant bit
		digit := values[len(values)-1-i/fromBits]
		return (digit >> (i % fromBits)) & 1
	}
	n := (totalBits + toBits - 1) / toBits
	out := make([]byte, n)
	for g := 0; g < n; g++ {
		v := 0
		for b := toBits - 1; b >= 0; b-- {
			i := g*toBits + b
			v <<= 1
			if i < totalBits {
				v |= bitAt(i)
			}
		}
		out[n-1-g] = to.Digit(v)
	}
	return trimLeadingZeros(string(out))
}

func viaBigInt(values []int, from, to mathtone.NumberFormat) string {
	return strings.ToUpper(valuesToInt(values, from).Text(to.Base()))
}

func valuesToInt(values []int, f mathtone.NumberFormat) *big.Int {
	ret := new(big.Int)
	base := big.NewInt(int64(f.Base()))
	d := new(big.Int)
	for _, v := range values {
		ret.Mul(ret, base)
		ret.Add(ret, d.SetInt64(int64(v)))
	}
	return ret
}

func trimLeadingZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" && s != "" {
		return "0"
	}
	return t
}
