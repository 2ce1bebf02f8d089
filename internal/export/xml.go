package export

import (
	"encoding/xml"
	"time"
)

type xmlReport struct {
	XMLName           xml.Name       `xml:"CarbonEmissionsReport"`
	Type              Kind           `xml:"Type"`
	Timestamp         string         `xml:"Timestamp"`
	Generated         string         `xml:"Generated"`
	CalculatorResults *xmlCalculator `xml:"CalculatorResults,omitempty"`
}

type xmlCalculator struct {
	TotalEmissions string        `xml:"TotalEmissions"`
	Breakdown      xmlBreakdown  `xml:"Breakdown"`
	GapAnalysis    *xmlGapReport `xml:"GapAnalysis,omitempty"`
}

type xmlBreakdown struct {
	Diesel      string `xml:"Diesel"`
	Electricity string `xml:"Electricity"`
	Explosives  string `xml:"Explosives"`
	Methane     string `xml:"Methane"`
}

type xmlGapReport struct {
	TargetEmissions     string `xml:"TargetEmissions"`
	CarbonSequestration string `xml:"CarbonSequestration"`
	Gap                 string `xml:"Gap"`
	GapPercentage       string `xml:"GapPercentage"`
	Status              string `xml:"Status"`
	CarbonCreditsNeeded string `xml:"CarbonCreditsNeeded"`
}

// EncodeXML writes a CarbonEmissionsReport document.
//
// Only calculator exports carry a body. Realtime exports produce the report
// header (type, timestamp, generated) with no data section.
func (e *Exporter) EncodeXML(data *Data) ([]byte, error) {
	if err := checkPayload(data); err != nil {
		return nil, err
	}

	report := xmlReport{
		Type:      data.Type,
		Timestamp: data.Timestamp,
		Generated: e.now().UTC().Format(time.RFC3339Nano),
	}

	if data.Type == KindCalculator {
		results, _ := data.Calculator()
		calc := &xmlCalculator{
			TotalEmissions: fixed(results.Total, 2),
			Breakdown: xmlBreakdown{
				Diesel:      fixed(results.Diesel, 2),
				Electricity: fixed(results.Electricity, 2),
				Explosives:  fixed(results.Explosives, 2),
				Methane:     fixed(results.Methane, 2),
			},
		}
		if gap := data.GapAnalysis; gap != nil {
			calc.GapAnalysis = &xmlGapReport{
				TargetEmissions:     fixed(gap.TargetEmissions, 2),
				CarbonSequestration: fixed(gap.CarbonSequestration, 2),
				Gap:                 fixed(gap.Gap, 2),
				GapPercentage:       fixed(gap.GapPercentage, 1),
				Status:              string(gap.Status),
				CarbonCreditsNeeded: fixed(gap.CarbonCreditsNeeded, 3),
			}
		}
		report.CalculatorResults = calc
	} else {
		e.logger.Debug().Msg("xml export has no realtime section, writing header only")
	}

	body, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
