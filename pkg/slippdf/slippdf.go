// Package slippdf lays out a UPN payment slip description and its QR image on
// an A4 PDF page.
package slippdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// Document is the content of one slip page.
type Document struct {
	Title        string
	Locale       string
	Instructions string
	Rows         []upn.Row
	Amount       string
	DueDate      string
	QR           []byte // PNG, optional
}

const (
	pageMargin  = 15.0
	labelWidth  = 70.0
	valueWidth  = 110.0
	lineHeight  = 6.0
	qrImageSize = 50.0
	qrImageName = "upn-qr"
)

// Write renders doc as PDF into w.
func Write(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	// Core fonts are cp1252; runes outside it are replaced.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if doc.Instructions != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(doc.Instructions), "", "L", false)
		pdf.Ln(4)
	}

	labels := upn.LabelsFor(doc.Locale)
	for _, row := range doc.Rows {
		writeRow(pdf, tr(row.Label), tr(strings.Join(row.Lines, "\n")))
	}
	if doc.Amount != "" {
		writeRow(pdf, tr(labels.Amount), doc.Amount)
	}
	if doc.DueDate != "" {
		writeRow(pdf, tr(labels.DueDate), doc.DueDate)
	}

	if len(doc.QR) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(doc.QR))
		pdf.Ln(6)
		pdf.ImageOptions(qrImageName, pageMargin, pdf.GetY(), qrImageSize, qrImageSize, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("slippdf: layout failed: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("slippdf: write failed: %w", err)
	}
	return nil
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	x, y := pdf.GetXY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(labelWidth, lineHeight, label, "1", "L", false)
	labelBottom := pdf.GetY()

	pdf.SetXY(x+labelWidth, y)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(valueWidth, lineHeight, value, "1", "L", false)
	valueBottom := pdf.GetY()

	if labelBottom > valueBottom {
		pdf.SetY(labelBottom)
	}
	pdf.SetX(x)
}
