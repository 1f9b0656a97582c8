// Package export writes roster messages in downloadable formats.
package export

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mcoot/cwlroster/internal/dependencies/clock"
	"github.com/mcoot/cwlroster/internal/model"
)

const (
	// Filename is the attachment name used for downloads
	Filename = "cwl-message.pdf"
	// Title is printed at the top of the first page
	Title = "Messaggio CWL"

	titleSize = 16
	bodySize  = 12
	lineMM    = 6
)

// Exporter renders roster messages to PDF
type Exporter struct {
	clock    clock.Clock
	compress bool
}

// New creates an Exporter. Creation dates come from the clock.
func New(clock clock.Clock) *Exporter {
	return &Exporter{clock: clock, compress: true}
}

// PDF writes an A4 document holding the title and the message text
func (e *Exporter) PDF(w io.Writer, message string) error {
	if strings.TrimSpace(message) == "" {
		return model.ErrMessageEmpty
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(e.clock.Now())
	pdf.SetModificationDate(e.clock.Now())
	pdf.SetTitle(Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; accented Italian text needs translating
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.CellFormat(0, 10, tr(Title), "", 1, "C", false, 0, "")
	pdf.Ln(lineMM)

	pdf.SetFont("Helvetica", "", bodySize)
	for _, line := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		if line == "" {
			pdf.Ln(lineMM)
			continue
		}
		pdf.MultiCell(0, lineMM, tr(line), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
