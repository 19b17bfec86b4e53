package infra

// pdf.go: Daily cash report rendered with go-pdf/fpdf.
// A4 portrait document with:
//   - Title with the report date
//   - Per-user summary (total and by payment method)
//   - Withdrawals table
//   - Payments table
//   - Payment method summary
//   - Grand total
//
// The document is rendered in memory; nothing is written to disk.

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/45061/Hotelregistryapp/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pdfMargin = 12.0
	rowH      = 6.0
)

// GenerateReportePDF renders the daily report and returns the PDF bytes.
func GenerateReportePDF(r *dto.ReporteDiario) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Reporte de Caja - "+r.Fecha), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, tr("Desde "+r.Desde+" hasta "+r.Hasta), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Per-user summary ─────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Resumen por usuario")
	if len(r.PorUsuario) == 0 {
		emptyRow(pdf, tr, contentW, "Sin pagos registrados")
	}
	for _, u := range r.PorUsuario {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.7, rowH, tr(u.Usuario), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, rowH, FormatCOP(u.Total), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, metodo := range sortedKeys(u.TotalesPorMetodo) {
			pdf.CellFormat(contentW*0.7, 5, tr("    "+metodo), "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.3, 5, FormatCOP(u.TotalesPorMetodo[metodo]), "", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(3)

	// ── Withdrawals ──────────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Retiros")
	retCols := []float64{contentW * 0.22, contentW * 0.22, contentW * 0.2, contentW * 0.18, contentW * 0.18}
	tableHeader(pdf, tr, retCols, "Usuario", "Motivo", "Concepto", "Hora", "Monto")
	if len(r.Retiros) == 0 {
		emptyRow(pdf, tr, contentW, "Sin retiros")
	}
	for _, rt := range r.Retiros {
		tableRow(pdf, tr, retCols, rt.Usuario, rt.MotivoRetiro, rt.Concepto, rt.HoraTransaccion, FormatCOP(rt.Monto))
	}
	totalRow(pdf, tr, contentW, "Total retirado", r.TotalRetirado)
	pdf.Ln(3)

	// ── Payments ─────────────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Pagos")
	pagoCols := []float64{contentW * 0.18, contentW * 0.1, contentW * 0.16, contentW * 0.2, contentW * 0.18, contentW * 0.18}
	tableHeader(pdf, tr, pagoCols, "Usuario", "Hab.", "Tipo", "Concepto", "Hora", "Monto")
	if len(r.Pagos) == 0 {
		emptyRow(pdf, tr, contentW, "Sin pagos")
	}
	for _, p := range r.Pagos {
		tableRow(pdf, tr, pagoCols, p.Usuario, p.Habitacion, p.TipoPago, p.Concepto, p.HoraTransaccion, FormatCOP(p.Monto))
	}
	pdf.Ln(3)

	// ── Payment methods ──────────────────────────────────────────────────────
	section(pdf, tr, contentW, "Resumen por tipo de pago")
	for _, metodo := range sortedKeys(r.TotalesPorMetodo) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.7, rowH, tr(metodo), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, rowH, FormatCOP(r.TotalesPorMetodo[metodo]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// ── Grand total ──────────────────────────────────────────────────────────
	pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW*0.7, 8, "TOTAL RECIBIDO:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.3, 8, FormatCOP(r.TotalRecibido), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatCOP formats an amount as Colombian pesos: "$ 1.234.567", no decimals.
func FormatCOP(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if d.Round(0).IsNegative() {
		return "-$ " + b.String()
	}
	return "$ " + b.String()
}

func section(pdf *fpdf.Fpdf, tr func(string) string, w float64, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(w, 7, tr(title), "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func tableHeader(pdf *fpdf.Fpdf, tr func(string) string, cols []float64, titles ...string) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, t := range titles {
		align := "L"
		if i == len(titles)-1 {
			align = "R"
		}
		pdf.CellFormat(cols[i], rowH, tr(t), "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *fpdf.Fpdf, tr func(string) string, cols []float64, values ...string) {
	pdf.SetFont("Helvetica", "", 8)
	for i, v := range values {
		align := "L"
		if i == len(values)-1 {
			align = "R"
		}
		pdf.CellFormat(cols[i], rowH, tr(truncate(v, 28)), "", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func totalRow(pdf *fpdf.Fpdf, tr func(string) string, w float64, label string, amount decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(w*0.7, rowH, tr(label+":"), "T", 0, "L", false, 0, "")
	pdf.CellFormat(w*0.3, rowH, FormatCOP(amount), "T", 1, "R", false, 0, "")
}

func emptyRow(pdf *fpdf.Fpdf, tr func(string) string, w float64, text string) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(w, rowH, tr(text), "", 1, "L", false, 0, "")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
