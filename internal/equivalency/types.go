// Package equivalency restates an emission total as everyday equivalents.
//
// A mine manager reading "808 kg CO2e" gets a better sense of scale from
// "13 tree seedlings grown for 10 years". The conversion divides kilograms
// of CO2e by published EPA per-item factors.
package equivalency

import "fmt"

// Kind is a category of equivalent.
type Kind int

const (
	// KindTreeSeedlings is tree seedlings grown for 10 years to absorb the CO2e.
	KindTreeSeedlings Kind = iota

	// KindHomeDays is days of average home electricity use.
	KindHomeDays

	// KindMilesDriven is miles driven by an average passenger vehicle.
	KindMilesDriven

	// KindSmartphones is full smartphone charges.
	KindSmartphones
)

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindTreeSeedlings, KindHomeDays, KindMilesDriven, KindSmartphones}
}

func (k Kind) String() string {
	switch k {
	case KindTreeSeedlings:
		return "tree_seedlings"
	case KindHomeDays:
		return "home_days"
	case KindMilesDriven:
		return "miles_driven"
	case KindSmartphones:
		return "smartphones_charged"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for _, candidate := range Kinds() {
		if candidate.String() == string(b) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown equivalency kind %q", b)
}

// Factor returns kg CO2e per item of the kind.
func (k Kind) Factor() float64 {
	switch k {
	case KindTreeSeedlings:
		return TreeSeedlingFactor
	case KindHomeDays:
		return HomeDayFactor
	case KindMilesDriven:
		return MilesDrivenFactor
	case KindSmartphones:
		return SmartphoneChargeFactor
	default:
		return 0
	}
}

// Label describes one item of the kind in prose.
func (k Kind) Label() string {
	switch k {
	case KindTreeSeedlings:
		return "tree seedlings grown for 10 years"
	case KindHomeDays:
		return "days of home electricity"
	case KindMilesDriven:
		return "miles driven"
	case KindSmartphones:
		return "smartphones charged"
	default:
		return k.String()
	}
}

// Equivalent is one converted quantity.
type Equivalent struct {
	Kind      Kind    `json:"kind" yaml:"kind"`
	Value     float64 `json:"value" yaml:"value"`
	Formatted string  `json:"formatted" yaml:"formatted"`
	Label     string  `json:"label" yaml:"label"`
}

// Summary holds every equivalent of one emission total.
type Summary struct {
	InputKg     float64      `json:"inputKg" yaml:"input_kg"`
	Equivalents []Equivalent `json:"equivalents,omitempty" yaml:"equivalents,omitempty"`

	// Text is the one-line prose form, e.g.
	// "Equivalent to ~13 tree seedlings grown for 10 years or driving ~4,208 miles".
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Empty is set when the total is below MinThresholdKg.
	Empty bool `json:"empty" yaml:"empty"`
}
