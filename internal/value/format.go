package value

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders a number the way every surface (print, tables, error
// messages) does: integer values print without a decimal point, everything
// else prints to three decimals with trailing zeros and a bare trailing
// point stripped.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if f == 0 {
		return "0"
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// FormatComplex renders both components, e.g. 3+2i, 3-2i, 0+1.5i.
func FormatComplex(re, im float64) string {
	sign := "+"
	if im < 0 || (im == 0 && math.Signbit(im)) {
		sign = "-"
	}
	return FormatFloat(re) + sign + FormatFloat(math.Abs(im)) + "i"
}
