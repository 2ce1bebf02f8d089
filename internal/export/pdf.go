package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const pdfFont = "Helvetica"

// EncodePDF renders the report layout into an A4 PDF document.
func (e *Exporter) EncodePDF(data *Data) ([]byte, error) {
	now := e.now()
	layout, err := BuildLayout(data, now.Format(generatedLayout))
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetTitle("Carbon Emissions Report", true)
	pdf.SetAutoPageBreak(false, marginMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	page := 0
	for _, line := range layout.Lines {
		for page < line.Page {
			pdf.AddPage()
			page++
		}
		pdf.SetFont(pdfFont, "", line.Size)
		text := tr(line.Text)
		x := marginMM
		if line.Align == AlignCenter {
			x = (pageWidthMM - pdf.GetStringWidth(text)) / 2
		}
		pdf.Text(x, line.Y, text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
