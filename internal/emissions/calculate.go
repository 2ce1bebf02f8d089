package emissions

import (
	"fmt"
	"math"
	"sort"
)

// Calculate converts activity quantities into CO2-equivalent emissions.
//
// Each quantity is multiplied by its fixed emission factor and the products
// are summed into Total. Breakdown lists every activity with its share of the
// total, largest first; activities with equal values keep canonical order.
// Percentages are 0 when the total is 0.
//
// Every input must be finite and non-negative. The first offending activity
// (in canonical order) is reported as an ErrValidation and no Results are
// returned.
func Calculate(inputs Inputs) (*Results, error) {
	if err := Validate(inputs); err != nil {
		return nil, err
	}

	results := &Results{
		Diesel:      inputs.Diesel * DieselFactor,
		Electricity: inputs.Electricity * ElectricityFactor,
		Explosives:  inputs.Explosives * ExplosivesFactor,
		Methane:     inputs.Methane * MethaneFactor,
	}
	results.Total = results.Diesel + results.Electricity + results.Explosives + results.Methane

	activities := Activities()
	breakdown := make([]BreakdownItem, 0, len(activities))
	for _, a := range activities {
		value := results.Emission(a)
		breakdown = append(breakdown, BreakdownItem{
			Label:      a.Label(),
			Value:      value,
			Percentage: share(value, results.Total),
		})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Value > breakdown[j].Value
	})
	results.Breakdown = breakdown

	return results, nil
}

// Validate reports the first input that is negative or not a finite number.
func Validate(inputs Inputs) error {
	for _, a := range Activities() {
		v := inputs.Quantity(a)
		if v < 0 {
			return fmt.Errorf("%w: %s %s", ErrValidation, a, reasonNegative)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %s", ErrValidation, a, reasonNotFinite)
		}
	}
	return nil
}

func share(value, total float64) float64 {
	if total > 0 {
		return value / total * percentScale
	}
	return 0
}

// CalculateGap compares total emissions against a target and a sequestration capacity.
//
// Gap is total minus sequestration while Status, GapPercentage and
// CarbonCreditsNeeded are measured against the target. Credits are the excess
// over target converted to tons and are never negative. Target and
// sequestration are not validated.
func CalculateGap(total, target, sequestration float64) GapAnalysis {
	var gapPercentage float64
	if target > 0 {
		gapPercentage = (total - target) / target * percentScale
	}

	status := StatusOnTarget
	switch {
	case total > target:
		status = StatusAbove
	case total < target:
		status = StatusBelow
	}

	return GapAnalysis{
		TotalEmissions:      total,
		TargetEmissions:     target,
		CarbonSequestration: sequestration,
		Gap:                 total - sequestration,
		GapPercentage:       gapPercentage,
		Status:              status,
		CarbonCreditsNeeded: math.Max(0, total-target) / KgPerTon,
	}
}

// CalculateGapDefault runs CalculateGap with DefaultTarget and DefaultSequestration.
func CalculateGapDefault(total float64) GapAnalysis {
	return CalculateGap(total, DefaultTarget, DefaultSequestration)
}
