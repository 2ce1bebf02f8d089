// Package emissions computes CO2-equivalent emissions for coal-mining activities.
//
// Four activity quantities (diesel, electricity, explosives, methane) are
// multiplied by fixed emission factors. The totals can then be compared with
// a monthly target and a sequestration capacity in a gap analysis.
package emissions

import "fmt"

// Activity identifies an emitting activity at the mine.
type Activity int

const (
	// ActivityDiesel is diesel fuel burned by haul trucks and equipment, in litres.
	ActivityDiesel Activity = iota

	// ActivityElectricity is grid electricity consumed, in kWh.
	ActivityElectricity

	// ActivityExplosives is blasting explosives detonated, in kg.
	ActivityExplosives

	// ActivityMethane is coal-seam methane released, in tons.
	ActivityMethane
)

// Activities lists every activity in canonical order.
func Activities() []Activity {
	return []Activity{ActivityDiesel, ActivityElectricity, ActivityExplosives, ActivityMethane}
}

// String returns the lower-case key of the activity.
func (a Activity) String() string {
	switch a {
	case ActivityDiesel:
		return "diesel"
	case ActivityElectricity:
		return "electricity"
	case ActivityExplosives:
		return "explosives"
	case ActivityMethane:
		return "methane"
	default:
		return fmt.Sprintf("Activity(%d)", int(a))
	}
}

// Label returns the display label used in breakdowns and exports.
func (a Activity) Label() string {
	switch a {
	case ActivityDiesel:
		return "Diesel"
	case ActivityElectricity:
		return "Electricity"
	case ActivityExplosives:
		return "Explosives"
	case ActivityMethane:
		return "Methane"
	default:
		return a.String()
	}
}

// Unit returns the measurement unit of the activity quantity.
func (a Activity) Unit() string {
	switch a {
	case ActivityDiesel:
		return "litres"
	case ActivityElectricity:
		return "kWh"
	case ActivityExplosives:
		return "kg"
	case ActivityMethane:
		return "tons"
	default:
		return ""
	}
}

// Factor returns the emission factor of the activity in kg CO2e per unit.
func (a Activity) Factor() float64 {
	switch a {
	case ActivityDiesel:
		return DieselFactor
	case ActivityElectricity:
		return ElectricityFactor
	case ActivityExplosives:
		return ExplosivesFactor
	case ActivityMethane:
		return MethaneFactor
	default:
		return 0
	}
}

// Description explains what the emission factor of the activity measures.
func (a Activity) Description() string {
	switch a {
	case ActivityDiesel:
		return "CO₂ emissions per litre of diesel fuel consumed"
	case ActivityElectricity:
		return "CO₂ emissions per kilowatt-hour (India grid average)"
	case ActivityExplosives:
		return "CO₂ emissions per kilogram of explosives used"
	case ActivityMethane:
		return "CO₂ equivalent per ton of methane (25-year GWP)"
	default:
		return ""
	}
}

// Inputs holds the activity quantities for one calculation.
type Inputs struct {
	// Diesel is litres of diesel consumed.
	Diesel float64 `json:"diesel" yaml:"diesel"`

	// Electricity is kWh of electricity consumed.
	Electricity float64 `json:"electricity" yaml:"electricity"`

	// Explosives is kg of explosives used.
	Explosives float64 `json:"explosives" yaml:"explosives"`

	// Methane is tons of methane released.
	Methane float64 `json:"methane" yaml:"methane"`
}

// Quantity returns the input quantity recorded for an activity.
func (in Inputs) Quantity(a Activity) float64 {
	switch a {
	case ActivityDiesel:
		return in.Diesel
	case ActivityElectricity:
		return in.Electricity
	case ActivityExplosives:
		return in.Explosives
	case ActivityMethane:
		return in.Methane
	default:
		return 0
	}
}

// BreakdownItem is one activity's share of the total.
type BreakdownItem struct {
	Label      string  `json:"label" yaml:"label"`
	Value      float64 `json:"value" yaml:"value"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Results holds per-activity emissions in kg CO2e.
type Results struct {
	Diesel      float64 `json:"diesel" yaml:"diesel"`
	Electricity float64 `json:"electricity" yaml:"electricity"`
	Explosives  float64 `json:"explosives" yaml:"explosives"`
	Methane     float64 `json:"methane" yaml:"methane"`
	Total       float64 `json:"total" yaml:"total"`

	// Breakdown is sorted by value, largest first.
	Breakdown []BreakdownItem `json:"breakdown" yaml:"breakdown"`
}

// Emission returns the emission computed for an activity.
func (r *Results) Emission(a Activity) float64 {
	switch a {
	case ActivityDiesel:
		return r.Diesel
	case ActivityElectricity:
		return r.Electricity
	case ActivityExplosives:
		return r.Explosives
	case ActivityMethane:
		return r.Methane
	default:
		return 0
	}
}

// Percentage returns the breakdown percentage recorded under label, or 0 if absent.
func (r *Results) Percentage(label string) float64 {
	for _, item := range r.Breakdown {
		if item.Label == label {
			return item.Percentage
		}
	}
	return 0
}

// GapStatus compares total emissions with the target.
type GapStatus string

const (
	// StatusAbove means emissions exceed the target.
	StatusAbove GapStatus = "above"

	// StatusBelow means emissions are under the target.
	StatusBelow GapStatus = "below"

	// StatusOnTarget means emissions equal the target.
	StatusOnTarget GapStatus = "on-target"
)

// GapAnalysis compares total emissions with a target and a sequestration offset.
type GapAnalysis struct {
	TotalEmissions      float64 `json:"totalEmissions" yaml:"total_emissions"`
	TargetEmissions     float64 `json:"targetEmissions" yaml:"target_emissions"`
	CarbonSequestration float64 `json:"carbonSequestration" yaml:"carbon_sequestration"`

	// Gap is measured against sequestration, not the target.
	Gap float64 `json:"gap" yaml:"gap"`

	// GapPercentage is measured against the target.
	GapPercentage float64 `json:"gapPercentage" yaml:"gap_percentage"`

	Status GapStatus `json:"status" yaml:"status"`

	// CarbonCreditsNeeded is the excess over target in tons (one credit per ton).
	CarbonCreditsNeeded float64 `json:"carbonCreditsNeeded" yaml:"carbon_credits_needed"`
}
