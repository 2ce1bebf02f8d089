package dashboard

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// ErrEmptyData indicates a data file without any series.
var ErrEmptyData = errors.New("dashboard data contains no series")

// Provider returns the data shown on the real-time dashboard.
type Provider interface {
	Realtime(ctx context.Context) (*RealtimeData, error)
}

// SampleProvider serves the embedded sample series.
type SampleProvider struct{}

// Realtime decodes a fresh copy of the embedded sample series.
func (SampleProvider) Realtime(ctx context.Context) (*RealtimeData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decode(sampleYAML)
}

// FileProvider loads dashboard series from a YAML file with the same shape as
// the embedded sample.
type FileProvider struct {
	Path string
}

// Realtime reads and decodes the file on every call.
func (p FileProvider) Realtime(ctx context.Context) (*RealtimeData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("reading dashboard data %s: %w", p.Path, err)
	}
	rt, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading dashboard data %s: %w", p.Path, err)
	}
	return rt, nil
}

// NewProvider returns a FileProvider for path, or the SampleProvider when path is empty.
func NewProvider(path string) Provider {
	if path == "" {
		return SampleProvider{}
	}
	return FileProvider{Path: path}
}

func decode(data []byte) (*RealtimeData, error) {
	var rt RealtimeData
	if err := yaml.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("parsing dashboard YAML: %w", err)
	}
	if len(rt.DailyData) == 0 && len(rt.MonthlyData) == 0 && len(rt.SourceData) == 0 &&
		len(rt.AccuracyData) == 0 && len(rt.Stats) == 0 {
		return nil, ErrEmptyData
	}
	return &rt, nil
}
