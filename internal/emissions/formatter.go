package emissions

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatEmission scales a kg value for display.
//
// Values of a million or more use the "M" suffix, values of a thousand or
// more use "k", everything else is shown as-is with two decimals.
// An empty unit defaults to DefaultUnit.
//
// Example: FormatEmission(2805, "") returns "2.81 k kg CO₂".
func FormatEmission(value float64, unit string) string {
	if unit == "" {
		unit = DefaultUnit
	}
	switch {
	case value >= millionThreshold:
		return ToFixed(value/millionThreshold, 2) + " M " + unit
	case value >= thousandThreshold:
		return ToFixed(value/thousandThreshold, 2) + " k " + unit
	default:
		return ToFixed(value, 2) + " " + unit
	}
}

// FormatQuantity formats a value with thousand separators and the given precision.
// Example: FormatQuantity(12345.678, 2) returns "12,345.68".
func FormatQuantity(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%v", v)
	}
	return printer.Sprintf("%.*f", precision, v)
}

// fixedPrec is enough mantissa bits to scale a float64 by 10^p exactly.
const fixedPrec = 256

// ToFixed formats v with precision decimals. The exact binary value of v is
// rounded to nearest; an exact tie goes away from zero, so 0.125 becomes
// "0.13" and 6.25 with one decimal becomes "6.3". Reports use it for every
// fixed-precision number.
func ToFixed(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || precision < 0 || precision > 22 { //nolint:mnd // 10^22 is the largest exact power.
		return strconv.FormatFloat(v, 'f', precision, 64)
	}

	scaled := new(big.Float).SetPrec(fixedPrec).SetFloat64(math.Abs(v))
	scaled.Mul(scaled, new(big.Float).SetPrec(fixedPrec).SetFloat64(math.Pow10(precision)))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(fixedPrec).Sub(scaled, new(big.Float).SetPrec(fixedPrec).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		// No tie: strconv rounds the exact value correctly.
		return strconv.FormatFloat(v, 'f', precision, 64)
	}

	digits := whole.Add(whole, big.NewInt(1)).String()
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	out := digits
	if precision > 0 {
		out = digits[:len(digits)-precision] + "." + digits[len(digits)-precision:]
	}
	if v < 0 {
		out = "-" + out
	}
	return out
}
