package convert

import "github.com/vsariola/mathtone"

// ConvertBig always takes the big integer path.
func ConvertBig(digits string, from, to mathtone.NumberFormat) (string, error) {
	values, err := digitValues(digits, from)
	if err != nil {
		return "", err
	}
	return viaBigInt(values, from, to), nil
}
