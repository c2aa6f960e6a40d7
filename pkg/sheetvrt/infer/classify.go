// Package infer classifies spreadsheet columns from sampled string values.
package infer

import "github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/models"

// IsInteger reports whether s is an optional sign followed by digits only.
func IsInteger(s string) bool {
	i := skipSign(s)
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsReal reports whether s is an optional sign, digits with an optional
// decimal point, and an optional exponent. At least one mantissa digit is
// required; "1.", ".5" and "1e-3" are accepted.
func IsReal(s string) bool {
	i := skipSign(s)

	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for ; i < len(s) && isDigit(s[i]); i++ {
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}

// ClassifyColumn returns Integer when every value is an integer, Real when
// every value is a real, and String otherwise. A blank value fails both
// parses and therefore forces String. An empty column is Integer.
func ClassifyColumn(values []string) models.FieldType {
	integer := true
	for _, v := range values {
		if !IsInteger(v) {
			integer = false
			break
		}
	}
	if integer {
		return models.Integer
	}

	for _, v := range values {
		if !IsReal(v) {
			return models.String
		}
	}
	return models.Real
}

func skipSign(s string) int {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
