// Package dashboard supplies the series shown on the real-time dashboard.
//
// The data is sample data: it is loaded from an embedded fixture or from a
// user-provided YAML file and is never computed or persisted.
package dashboard

// DailyPoint is one day of emissions in tons.
type DailyPoint struct {
	Day       string  `json:"day" yaml:"day"`
	Actual    float64 `json:"actual" yaml:"actual"`
	Predicted float64 `json:"predicted" yaml:"predicted"`
	Target    float64 `json:"target" yaml:"target"`
}

// MonthlyPoint is one month of emissions and credits earned.
type MonthlyPoint struct {
	Month     string  `json:"month" yaml:"month"`
	Emissions float64 `json:"emissions" yaml:"emissions"`
	Credits   float64 `json:"credits" yaml:"credits"`
}

// SourceShare is the percentage of emissions attributed to a source category.
type SourceShare struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// AccuracyPoint compares actual and predicted weekly emissions.
type AccuracyPoint struct {
	Week      string  `json:"week" yaml:"week"`
	Actual    float64 `json:"actual" yaml:"actual"`
	Predicted float64 `json:"predicted" yaml:"predicted"`
	Diff      float64 `json:"diff" yaml:"diff"`
}

// Trend is the change of a KPI against the previous period.
type Trend struct {
	Value      float64 `json:"value" yaml:"value"`
	IsPositive bool    `json:"isPositive" yaml:"isPositive"`
}

// Stat is a KPI card. Value is preformatted text.
type Stat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Trend *Trend `json:"trend,omitempty" yaml:"trend,omitempty"`
}

// RealtimeData bundles every dashboard series.
type RealtimeData struct {
	DailyData    []DailyPoint    `json:"dailyData" yaml:"daily"`
	MonthlyData  []MonthlyPoint  `json:"monthlyData" yaml:"monthly"`
	SourceData   []SourceShare   `json:"sourceData" yaml:"sources"`
	AccuracyData []AccuracyPoint `json:"accuracyData" yaml:"accuracy"`
	Stats        []Stat          `json:"stats" yaml:"stats"`
}

// DailyAverages holds the mean of each daily series.
type DailyAverages struct {
	Actual    float64
	Predicted float64
	Target    float64
}

// Averages returns the mean actual, predicted and target values of the daily
// series. An empty series averages to zero.
func (rt *RealtimeData) Averages() DailyAverages {
	if rt == nil || len(rt.DailyData) == 0 {
		return DailyAverages{}
	}
	var avg DailyAverages
	for _, d := range rt.DailyData {
		avg.Actual += d.Actual
		avg.Predicted += d.Predicted
		avg.Target += d.Target
	}
	n := float64(len(rt.DailyData))
	avg.Actual /= n
	avg.Predicted /= n
	avg.Target /= n
	return avg
}
