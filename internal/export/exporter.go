package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Human-readable timestamp used in report bodies.
const generatedLayout = "2006-01-02 15:04:05 MST"

// Observer is notified after every encode attempt.
type Observer interface {
	ObserveExport(format, kind string, err error)
}

// Exporter encodes Data into report artifacts. It holds no mutable state, so
// a single Exporter may serve concurrent calls.
type Exporter struct {
	now      func() time.Time
	logger   zerolog.Logger
	observer Observer
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the time source used for generated timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithLogger sets the logger that receives export failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

// WithObserver registers an Observer, typically a metrics recorder.
func WithObserver(o Observer) Option {
	return func(e *Exporter) { e.observer = o }
}

// New creates an Exporter. Without options it uses time.Now and a disabled logger.
func New(opts ...Option) *Exporter {
	e := &Exporter{now: time.Now, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultFilename returns carbon-emissions-<kind>-<YYYY-MM-DD>.<ext> for the current UTC date.
func (e *Exporter) DefaultFilename(kind Kind, format Format) string {
	return fmt.Sprintf("carbon-emissions-%s-%s.%s", kind, e.now().UTC().Format(time.DateOnly), format.Extension())
}

// Encode produces the artifact bytes for data in the requested format.
// Failures are wrapped in ErrExport and logged.
func (e *Exporter) Encode(format Format, data *Data) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = e.EncodeJSON(data)
	case FormatCSV:
		out, err = e.EncodeCSV(data)
	case FormatPDF:
		out, err = e.EncodePDF(data)
	case FormatXML:
		out, err = e.EncodeXML(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	kind := ""
	if data != nil {
		kind = string(data.Type)
	}
	if err != nil {
		err = fmt.Errorf("%w: %s %s: %w", ErrExport, kind, format, err)
		e.logger.Error().Err(err).Str("format", string(format)).Str("kind", kind).Msg("export failed")
	} else {
		e.logger.Debug().Str("format", string(format)).Str("kind", kind).Int("bytes", len(out)).Msg("export encoded")
	}
	if e.observer != nil {
		e.observer.ObserveExport(string(format), kind, err)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateFileName rejects names that would place the artifact outside dir.
func ValidateFileName(name string) error {
	if name == "" {
		return nil
	}
	if filepath.IsAbs(name) || filepath.Base(name) != name || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return nil
}

// WriteFile encodes data and writes it to dir/name. An empty name uses DefaultFilename.
// The directory always comes from dir; a name with a directory part is rejected.
func (e *Exporter) WriteFile(dir, name string, format Format, data *Data) (string, error) {
	if err := ValidateFileName(name); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}
	out, err := e.Encode(format, data)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = e.DefaultFilename(data.Type, format)
	}
	path := filepath.Join(dir, name)
	//nolint:gosec // Reports are meant to be readable by the user's other tools.
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %w", ErrExport, path, err)
	}
	return path, nil
}

// WriteFiles writes one artifact per format into dir using default file names.
// Formats are encoded concurrently; the returned paths follow the order of formats.
func (e *Exporter) WriteFiles(ctx context.Context, dir string, formats []Format, data *Data) ([]string, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, ErrInvalidPayload)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %w", ErrExport, dir, err)
	}

	paths := make([]string, len(formats))
	g, gCtx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			path, err := e.WriteFile(dir, "", format, data)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
