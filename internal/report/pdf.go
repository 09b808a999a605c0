// Package report renders the printable attendance sheet ("hoja de
// control de asistencia") for one date.
package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"asistencia/internal/asistencia"
)

// Options parameterizes the sheet header. Responsable and DNIResponsable
// are optional; blank values render as fill-in lines for handwriting.
type Options struct {
	Empresa        string
	Fecha          string
	Responsable    string
	DNIResponsable string
}

// The sheet always has room for handwritten additions below the printed rows.
const minFilas = 10

// Render writes the A4 sheet to w: company header, responsable line, date,
// and a signature grid with one row per report entry.
func Render(w io.Writer, rows []asistencia.ReportRow, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()

	// Two-square logo mark, as on the original sheet.
	pdf.SetFillColor(0, 128, 0)
	pdf.Rect(14, 10, 8, 8, "F")
	pdf.SetFillColor(255, 193, 7)
	pdf.Rect(22, 10, 8, 8, "F")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 128, 0)
	pdf.Text(35, 16, tr(opts.Empresa))
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(35, 21, "SERVICE")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(0, 32)
	pdf.CellFormat(pageW, 6, tr(opts.Empresa), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pageW, 6, "HOJA DE CONTROL DE ASISTENCIA", "", 1, "C", false, 0, "")

	pdf.SetDrawColor(0, 128, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(14, 48, pageW-14, 48)

	responsable := opts.Responsable
	if responsable == "" {
		responsable = "_________________"
	}
	dniResp := opts.DNIResponsable
	if dniResp == "" {
		dniResp = "________"
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(14, 58, tr("Responsable: "+responsable))
	pdf.Text(100, 58, tr("DNI: "+dniResp))
	pdf.Text(145, 58, "Firma: _________________")
	pdf.Text(14, 68, "Fecha: "+opts.Fecha)

	renderTabla(pdf, tr, rows)
	return pdf.Output(w)
}

func renderTabla(pdf *gofpdf.Fpdf, tr func(string) string, rows []asistencia.ReportRow) {
	headers := []string{"N.°", "Apellidos y Nombres", "Hora de Entrada", "Firma", "Hora de Salida", "Firma"}
	widths := []float64{10, 66, 24, 28, 24, 28}

	pdf.SetY(75)
	pdf.SetX(14)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "CM", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetLineWidth(0.2)
	total := len(rows)
	if total < minFilas {
		total = minFilas
	}
	for i := 0; i < total; i++ {
		nombre, entrada, salida := "", "", ""
		if i < len(rows) {
			nombre = fmt.Sprintf("%s, %s", rows[i].Apellido, rows[i].Nombre)
			entrada = rows[i].HoraEntrada
			salida = rows[i].HoraSalida
		}
		pdf.SetX(14)
		pdf.CellFormat(widths[0], 8, fmt.Sprintf("%d", i+1), "1", 0, "CM", false, 0, "")
		pdf.CellFormat(widths[1], 8, tr(nombre), "1", 0, "LM", false, 0, "")
		pdf.CellFormat(widths[2], 8, entrada, "1", 0, "CM", false, 0, "")
		pdf.CellFormat(widths[3], 8, "", "1", 0, "CM", false, 0, "")
		pdf.CellFormat(widths[4], 8, salida, "1", 0, "CM", false, 0, "")
		pdf.CellFormat(widths[5], 8, "", "1", 1, "CM", false, 0, "")
	}
}
