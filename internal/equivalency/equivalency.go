package equivalency

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // x/text printers are safe for concurrent use.
var printer = message.NewPrinter(language.English)

// ToKg converts value in unit (g, kg, t, lb, case-insensitive, with an
// optional "CO2e" suffix; "tons" is accepted for t) to kilograms.
func ToKg(value float64, unit string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	var factor float64
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), "co2e") {
	case "g":
		factor = gramsToKg
	case "kg":
		factor = 1
	case "t", "tons":
		factor = tonsToKg
	case "lb":
		factor = poundsToKg
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrOverflow
	}
	return kg, nil
}

// Compute returns every equivalent of kg CO2e. Totals below MinThresholdKg
// yield an empty Summary without error.
func Compute(kg float64) (Summary, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Summary{Empty: true}, ErrOverflow
	}
	if kg < 0 {
		return Summary{Empty: true}, ErrNegativeValue
	}
	if kg < MinThresholdKg {
		return Summary{InputKg: kg, Empty: true}, nil
	}

	summary := Summary{InputKg: kg}
	for _, k := range Kinds() {
		v := kg / k.Factor()
		summary.Equivalents = append(summary.Equivalents, Equivalent{
			Kind:      k,
			Value:     v,
			Formatted: FormatCount(v),
			Label:     k.Label(),
		})
	}

	trees := summary.Equivalents[KindTreeSeedlings].Formatted
	miles := summary.Equivalents[KindMilesDriven].Formatted
	summary.Text = fmt.Sprintf("Equivalent to ~%s %s or driving ~%s miles",
		trees, KindTreeSeedlings.Label(), miles)
	return summary, nil
}

// FromQuantity normalizes value in unit with ToKg and runs Compute.
func FromQuantity(value float64, unit string) (Summary, error) {
	kg, err := ToKg(value, unit)
	if err != nil {
		return Summary{Empty: true}, err
	}
	return Compute(kg)
}

// FormatCount rounds v to a whole count with thousand separators, switching
// to "~X.X million" and "~X.X billion" for large values.
func FormatCount(v float64) string {
	switch {
	case v >= billionThreshold:
		return fmt.Sprintf("%.1f billion", v/billionThreshold)
	case v >= millionThreshold:
		return fmt.Sprintf("%.1f million", v/millionThreshold)
	default:
		return printer.Sprintf("%d", int64(math.Round(v)))
	}
}
