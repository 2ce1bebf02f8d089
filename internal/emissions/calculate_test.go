package emissions

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floatTolerance = 1e-9

func TestCalculate_ReferenceScenario(t *testing.T) {
	got, err := Calculate(Inputs{Diesel: 500, Electricity: 500, Explosives: 200, Methane: 20})
	require.NoError(t, err)

	want := &Results{
		Diesel:      1340,
		Electricity: 325,
		Explosives:  640,
		Methane:     500,
		Total:       2805,
		Breakdown: []BreakdownItem{
			{Label: "Diesel", Value: 1340, Percentage: 1340.0 / 2805 * 100},
			{Label: "Explosives", Value: 640, Percentage: 640.0 / 2805 * 100},
			{Label: "Methane", Value: 500, Percentage: 500.0 / 2805 * 100},
			{Label: "Electricity", Value: 325, Percentage: 325.0 / 2805 * 100},
		},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, floatTolerance)); diff != "" {
		t.Errorf("Calculate() mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculate_Properties(t *testing.T) {
	tests := []struct {
		name   string
		inputs Inputs
	}{
		{"all zero", Inputs{}},
		{"single activity", Inputs{Methane: 3}},
		{"fractional", Inputs{Diesel: 0.1, Electricity: 0.2, Explosives: 0.3, Methane: 0.4}},
		{"large", Inputs{Diesel: 1e9, Electricity: 4e8, Explosives: 2e7, Methane: 1e5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.inputs)
			require.NoError(t, err)

			wantTotal := tt.inputs.Diesel*2.68 + tt.inputs.Electricity*0.65 +
				tt.inputs.Explosives*3.2 + tt.inputs.Methane*25
			assert.InDelta(t, wantTotal, got.Total, math.Max(1, wantTotal)*floatTolerance)

			require.Len(t, got.Breakdown, 4)
			var sumValues, sumPct float64
			for i, item := range got.Breakdown {
				sumValues += item.Value
				sumPct += item.Percentage
				if i > 0 {
					assert.GreaterOrEqual(t, got.Breakdown[i-1].Value, item.Value, "breakdown must be descending")
				}
				if got.Total == 0 {
					assert.Zero(t, item.Percentage)
				}
			}
			assert.InDelta(t, got.Total, sumValues, math.Max(1, got.Total)*floatTolerance)
			if got.Total > 0 {
				assert.InDelta(t, 100, sumPct, 1e-6)
			}
		})
	}
}

func TestCalculate_TiesKeepCanonicalOrder(t *testing.T) {
	got, err := Calculate(Inputs{})
	require.NoError(t, err)

	labels := make([]string, 0, len(got.Breakdown))
	for _, item := range got.Breakdown {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Diesel", "Electricity", "Explosives", "Methane"}, labels)

	got, err = Calculate(Inputs{Diesel: 1})
	require.NoError(t, err)
	labels = labels[:0]
	for _, item := range got.Breakdown {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Diesel", "Electricity", "Explosives", "Methane"}, labels)

	got, err = Calculate(Inputs{Methane: 1})
	require.NoError(t, err)
	labels = labels[:0]
	for _, item := range got.Breakdown {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Methane", "Diesel", "Electricity", "Explosives"}, labels)
}

func TestCalculate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		inputs      Inputs
		errContains string
	}{
		{"negative diesel", Inputs{Diesel: -5}, "diesel must be non-negative"},
		{"negative methane", Inputs{Methane: -0.001}, "methane must be non-negative"},
		{"NaN electricity", Inputs{Electricity: math.NaN()}, "electricity must be valid numbers"},
		{"positive infinity", Inputs{Explosives: math.Inf(1)}, "explosives must be valid numbers"},
		{"negative infinity", Inputs{Diesel: math.Inf(-1)}, "diesel must be non-negative"},
		{"first offender reported", Inputs{Electricity: -1, Methane: -1}, "electricity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.inputs)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Nil(t, got, "no partial result on validation failure")
		})
	}
}

func TestCalculateGap(t *testing.T) {
	tests := []struct {
		name          string
		total         float64
		target        float64
		sequestration float64
		want          GapAnalysis
	}{
		{
			name:  "reference scenario above target",
			total: 2805, target: 2500, sequestration: 300,
			want: GapAnalysis{
				TotalEmissions: 2805, TargetEmissions: 2500, CarbonSequestration: 300,
				Gap: 2505, GapPercentage: 12.2, Status: StatusAbove, CarbonCreditsNeeded: 0.305,
			},
		},
		{
			name:  "below target",
			total: 800, target: 1000, sequestration: 200,
			want: GapAnalysis{
				TotalEmissions: 800, TargetEmissions: 1000, CarbonSequestration: 200,
				Gap: 600, GapPercentage: -20, Status: StatusBelow, CarbonCreditsNeeded: 0,
			},
		},
		{
			name:  "on target",
			total: 1000, target: 1000, sequestration: 200,
			want: GapAnalysis{
				TotalEmissions: 1000, TargetEmissions: 1000, CarbonSequestration: 200,
				Gap: 800, GapPercentage: 0, Status: StatusOnTarget, CarbonCreditsNeeded: 0,
			},
		},
		{
			name:  "zero target gives zero percentage",
			total: 50, target: 0, sequestration: 0,
			want: GapAnalysis{
				TotalEmissions: 50, Gap: 50, Status: StatusAbove, CarbonCreditsNeeded: 0.05,
			},
		},
		{
			name:  "negative parameters accepted unchecked",
			total: 10, target: -100, sequestration: -5,
			want: GapAnalysis{
				TotalEmissions: 10, TargetEmissions: -100, CarbonSequestration: -5,
				Gap: 15, GapPercentage: 0, Status: StatusAbove, CarbonCreditsNeeded: 0.11,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGap(tt.total, tt.target, tt.sequestration)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.InDelta(t, tt.want.Gap, got.Gap, floatTolerance)
			assert.InDelta(t, tt.want.GapPercentage, got.GapPercentage, 0.01)
			assert.InDelta(t, tt.want.CarbonCreditsNeeded, got.CarbonCreditsNeeded, floatTolerance)
			assert.GreaterOrEqual(t, got.CarbonCreditsNeeded, 0.0)
			assert.Equal(t, tt.want.TotalEmissions, got.TotalEmissions)
			assert.Equal(t, tt.want.TargetEmissions, got.TargetEmissions)
			assert.Equal(t, tt.want.CarbonSequestration, got.CarbonSequestration)
		})
	}
}

// The gap is measured from sequestration while the status is measured from the
// target, so a result can be "below" target and still report a positive gap.
func TestCalculateGap_MixedBaselines(t *testing.T) {
	got := CalculateGap(900, 1000, 200)
	assert.Equal(t, StatusBelow, got.Status)
	assert.InDelta(t, 700, got.Gap, floatTolerance)
	assert.Zero(t, got.CarbonCreditsNeeded)
}

func TestCalculateGapDefault(t *testing.T) {
	got := CalculateGapDefault(1500)
	assert.InDelta(t, DefaultTarget, got.TargetEmissions, 0)
	assert.InDelta(t, DefaultSequestration, got.CarbonSequestration, 0)
	assert.InDelta(t, 1300, got.Gap, floatTolerance)
	assert.InDelta(t, 50, got.GapPercentage, floatTolerance)
	assert.InDelta(t, 0.5, got.CarbonCreditsNeeded, floatTolerance)
}
