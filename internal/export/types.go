// Package export serializes calculator results and dashboard data into the
// downloadable report formats: JSON, CSV, PDF and XML.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rshade/coalcarbon/internal/dashboard"
	"github.com/rshade/coalcarbon/internal/emissions"
)

// Kind identifies what an export contains.
type Kind string

const (
	// KindCalculator exports emissions calculator results.
	KindCalculator Kind = "calculator"

	// KindRealtime exports the real-time dashboard series.
	KindRealtime Kind = "realtime"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCalculator, KindRealtime:
		return k, nil
	default:
		return "", fmt.Errorf("unknown export source %q (expected calculator or realtime)", s)
	}
}

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXML  Format = "xml"
)

// AllFormats lists every format in menu order.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatPDF, FormatXML}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPDF, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension without a dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the encoded artifact.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv;charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXML:
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}

// Data is one export request.
//
// Data holds *emissions.Results when Type is KindCalculator and
// *dashboard.RealtimeData when Type is KindRealtime. GapAnalysis only
// applies to calculator exports.
type Data struct {
	Type        Kind                   `json:"type"`
	Timestamp   string                 `json:"timestamp"`
	Data        any                    `json:"data"`
	GapAnalysis *emissions.GapAnalysis `json:"gapAnalysis,omitempty"`
}

// NewCalculatorData wraps calculator results for export.
func NewCalculatorData(results *emissions.Results, gap *emissions.GapAnalysis, now time.Time) *Data {
	return &Data{
		Type:        KindCalculator,
		Timestamp:   now.UTC().Format(time.RFC3339Nano),
		Data:        results,
		GapAnalysis: gap,
	}
}

// NewRealtimeData wraps dashboard series for export.
func NewRealtimeData(rt *dashboard.RealtimeData, now time.Time) *Data {
	return &Data{
		Type:      KindRealtime,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Data:      rt,
	}
}

// Calculator returns the calculator payload.
func (d *Data) Calculator() (*emissions.Results, error) {
	if d == nil || d.Type != KindCalculator {
		return nil, ErrInvalidPayload
	}
	results, ok := d.Data.(*emissions.Results)
	if !ok || results == nil {
		return nil, fmt.Errorf("%w: calculator export holds %T", ErrInvalidPayload, d.Data)
	}
	return results, nil
}

// Realtime returns the dashboard payload.
func (d *Data) Realtime() (*dashboard.RealtimeData, error) {
	if d == nil || d.Type != KindRealtime {
		return nil, ErrInvalidPayload
	}
	rt, ok := d.Data.(*dashboard.RealtimeData)
	if !ok || rt == nil {
		return nil, fmt.Errorf("%w: realtime export holds %T", ErrInvalidPayload, d.Data)
	}
	return rt, nil
}

// UnmarshalJSON decodes the payload into the concrete type named by "type".
func (d *Data) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type        Kind                   `json:"type"`
		Timestamp   string                 `json:"timestamp"`
		Data        json.RawMessage        `json:"data"`
		GapAnalysis *emissions.GapAnalysis `json:"gapAnalysis,omitempty"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var payload any
	switch raw.Type {
	case KindCalculator:
		var results emissions.Results
		if err := json.Unmarshal(raw.Data, &results); err != nil {
			return fmt.Errorf("decoding calculator payload: %w", err)
		}
		payload = &results
	case KindRealtime:
		var rt dashboard.RealtimeData
		if err := json.Unmarshal(raw.Data, &rt); err != nil {
			return fmt.Errorf("decoding realtime payload: %w", err)
		}
		payload = &rt
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, raw.Type)
	}

	*d = Data{
		Type:        raw.Type,
		Timestamp:   raw.Timestamp,
		Data:        payload,
		GapAnalysis: raw.GapAnalysis,
	}
	return nil
}
