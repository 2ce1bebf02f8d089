package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rshade/coalcarbon/internal/dashboard"
	"github.com/rshade/coalcarbon/internal/emissions"
)

// EncodeCSV writes sectioned comma-separated tables.
//
// Calculator exports list every emission source in canonical order with the
// CO2 amount (2 decimals) and percentage (1 decimal), then the optional gap
// analysis. Realtime exports emit the daily, monthly, source and accuracy
// tables with raw values.
func (e *Exporter) EncodeCSV(data *Data) ([]byte, error) {
	if err := checkPayload(data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	generated := e.now().Format(generatedLayout)

	var records [][]string
	if data.Type == KindCalculator {
		results, _ := data.Calculator()
		records = calculatorCSV(results, data.GapAnalysis, generated)
	} else {
		rt, _ := data.Realtime()
		records = realtimeCSV(rt, generated)
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func calculatorCSV(results *emissions.Results, gap *emissions.GapAnalysis, generated string) [][]string {
	records := [][]string{
		{"Carbon Emissions Calculator Results"},
		{"Generated", generated},
		{},
		{"Emission Source", "CO2 (kg)", "Percentage (%)"},
	}
	for _, a := range emissions.Activities() {
		records = append(records, []string{
			a.Label(),
			fixed(results.Emission(a), 2),
			fixed(results.Percentage(a.Label()), 1),
		})
	}
	records = append(records, []string{"Total", fixed(results.Total, 2), "100"})

	if gap != nil {
		records = append(records,
			[]string{},
			[]string{"Gap Analysis"},
			[]string{"Target Emissions (kg CO2)", fixed(gap.TargetEmissions, 2)},
			[]string{"Total Emissions (kg CO2)", fixed(gap.TotalEmissions, 2)},
			[]string{"Carbon Sequestration (kg CO2)", fixed(gap.CarbonSequestration, 2)},
			[]string{"Emission Gap (kg CO2)", fixed(gap.Gap, 2)},
			[]string{"Gap Percentage (%)", fixed(gap.GapPercentage, 1)},
			[]string{"Status", string(gap.Status)},
			[]string{"Carbon Credits Needed", fixed(gap.CarbonCreditsNeeded, 3)},
		)
	}
	return records
}

func realtimeCSV(rt *dashboard.RealtimeData, generated string) [][]string {
	records := [][]string{
		{"Real-Time Carbon Emissions Dashboard"},
		{"Generated", generated},
		{},
		{"Daily Emissions Data"},
		{"Day", "Actual (tons)", "Predicted (tons)", "Target (tons)"},
	}
	for _, d := range rt.DailyData {
		records = append(records, []string{d.Day, raw(d.Actual), raw(d.Predicted), raw(d.Target)})
	}

	records = append(records, []string{}, []string{"Monthly Trends"},
		[]string{"Month", "Emissions (tons)", "Credits Earned"})
	for _, m := range rt.MonthlyData {
		records = append(records, []string{m.Month, raw(m.Emissions), raw(m.Credits)})
	}

	records = append(records, []string{}, []string{"Emission Sources"},
		[]string{"Source", "Percentage (%)"})
	for _, s := range rt.SourceData {
		records = append(records, []string{s.Name, raw(s.Value)})
	}

	records = append(records, []string{}, []string{"Prediction Accuracy"},
		[]string{"Week", "Actual (tons)", "Predicted (tons)", "Difference"})
	for _, a := range rt.AccuracyData {
		records = append(records, []string{a.Week, raw(a.Actual), raw(a.Predicted), raw(a.Diff)})
	}
	return records
}

// fixed formats v with a fixed number of decimals, ties away from zero.
func fixed(v float64, precision int) string {
	return emissions.ToFixed(v, precision)
}

// raw formats v with the fewest digits that round-trip.
func raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
