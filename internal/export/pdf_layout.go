package export

import (
	"fmt"

	"github.com/rshade/coalcarbon/internal/dashboard"
	"github.com/rshade/coalcarbon/internal/emissions"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	marginMM     = 20.0

	// sectionBreakY forces a new page before the realtime detail sections.
	sectionBreakY = 200.0
)

// Font sizes in points.
const (
	sizeTitle   = 20
	sizeHeading = 16
	sizeTotal   = 14
	sizeMeta    = 12
	sizeBody    = 11
)

// Vertical advances in millimetres.
const (
	stepTitle     = 15
	stepMeta      = 8
	stepHeading   = 10
	stepBody      = 7
	stepSection   = 15
	stepParagraph = 10
)

// Align is the horizontal placement of a layout line.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Line is a single positioned text run in a PDF layout.
type Line struct {
	Page  int
	Y     float64
	Size  float64
	Align Align
	Text  string
}

// Layout is the page-by-page plan of a PDF report.
type Layout struct {
	Lines []Line
	Pages int
}

// layoutBuilder tracks the cursor while lines are placed.
type layoutBuilder struct {
	layout Layout
	y      float64
}

func newLayoutBuilder() *layoutBuilder {
	return &layoutBuilder{layout: Layout{Pages: 1}, y: marginMM}
}

// text places a line at the cursor, starting a new page when the cursor has
// passed the bottom margin.
func (b *layoutBuilder) text(size float64, align Align, format string, args ...any) {
	if b.y > pageHeightMM-marginMM {
		b.newPage()
	}
	b.layout.Lines = append(b.layout.Lines, Line{
		Page:  b.layout.Pages,
		Y:     b.y,
		Size:  size,
		Align: align,
		Text:  fmt.Sprintf(format, args...),
	})
}

func (b *layoutBuilder) advance(dy float64) {
	b.y += dy
}

func (b *layoutBuilder) newPage() {
	b.layout.Pages++
	b.y = marginMM
}

// BuildLayout plans the PDF report for data without rendering it.
func BuildLayout(data *Data, generated string) (Layout, error) {
	if err := checkPayload(data); err != nil {
		return Layout{}, err
	}

	b := newLayoutBuilder()
	b.text(sizeTitle, AlignCenter, "Carbon Emissions Report")
	b.advance(stepTitle)

	typeLabel := "Real-Time Dashboard"
	if data.Type == KindCalculator {
		typeLabel = "Calculator Results"
	}
	b.text(sizeMeta, AlignLeft, "Type: %s", typeLabel)
	b.advance(stepMeta)
	b.text(sizeMeta, AlignLeft, "Generated: %s", generated)
	b.advance(stepSection)

	if data.Type == KindCalculator {
		results, _ := data.Calculator()
		layoutCalculator(b, results, data.GapAnalysis)
	} else {
		rt, _ := data.Realtime()
		layoutRealtime(b, rt)
	}
	return b.layout, nil
}

func layoutCalculator(b *layoutBuilder, results *emissions.Results, gap *emissions.GapAnalysis) {
	b.text(sizeHeading, AlignLeft, "Total Emissions")
	b.advance(stepHeading)
	b.text(sizeTotal, AlignLeft, "%s kg CO2", fixed(results.Total, 2))
	if results.Total >= emissions.KgPerTon {
		b.advance(stepMeta)
		b.text(sizeTotal, AlignLeft, "= %s tons CO2", fixed(results.Total/emissions.KgPerTon, 2))
	}
	b.advance(stepSection)

	b.text(sizeHeading, AlignLeft, "Emission Breakdown")
	b.advance(stepHeading)
	for _, item := range results.Breakdown {
		b.text(sizeBody, AlignLeft, "%s: %s kg CO2 (%s%%)", item.Label, fixed(item.Value, 2), fixed(item.Percentage, 1))
		b.advance(stepBody)
	}

	if gap == nil {
		return
	}
	b.advance(stepParagraph)
	b.text(sizeHeading, AlignLeft, "Gap Analysis")
	b.advance(stepHeading)
	body := []string{
		"Target Emissions: " + fixed(gap.TargetEmissions, 2) + " kg CO2",
		"Total Emissions: " + fixed(gap.TotalEmissions, 2) + " kg CO2",
		"Carbon Sequestration: " + fixed(gap.CarbonSequestration, 2) + " kg CO2",
		"Emission Gap: " + fixed(gap.Gap, 2) + " kg CO2",
		"Gap Percentage: " + fixed(gap.GapPercentage, 1) + "%",
		"Status: " + string(gap.Status),
	}
	if gap.CarbonCreditsNeeded > 0 {
		body = append(body, "Carbon Credits Needed: " + fixed(gap.CarbonCreditsNeeded, 3))
	}
	for _, line := range body {
		b.text(sizeBody, AlignLeft, "%s", line)
		b.advance(stepBody)
	}
}

func layoutRealtime(b *layoutBuilder, rt *dashboard.RealtimeData) {
	b.text(sizeHeading, AlignLeft, "Key Metrics")
	b.advance(stepHeading)
	for _, stat := range rt.Stats {
		trend := ""
		if stat.Trend != nil {
			sign := "-"
			if stat.Trend.IsPositive {
				sign = "+"
			}
			trend = fmt.Sprintf(" (%s%s%%)", sign, raw(stat.Trend.Value))
		}
		b.text(sizeBody, AlignLeft, "%s: %s%s", stat.Label, stat.Value, trend)
		b.advance(stepBody)
	}

	if b.y > sectionBreakY {
		b.newPage()
	}

	avg := rt.Averages()
	b.advance(stepParagraph)
	b.text(sizeHeading, AlignLeft, "Daily Emissions Summary")
	b.advance(stepHeading)
	b.text(sizeBody, AlignLeft, "Average Actual: %s tons", fixed(avg.Actual, 0))
	b.advance(stepBody)
	b.text(sizeBody, AlignLeft, "Average Predicted: %s tons", fixed(avg.Predicted, 0))
	b.advance(stepBody)
	b.text(sizeBody, AlignLeft, "Target: %s tons", fixed(avg.Target, 0))
	b.advance(stepBody)

	b.advance(stepParagraph)
	b.text(sizeHeading, AlignLeft, "Emission Sources")
	b.advance(stepHeading)
	for _, s := range rt.SourceData {
		b.text(sizeBody, AlignLeft, "%s: %s%%", s.Name, raw(s.Value))
		b.advance(stepBody)
	}
}
