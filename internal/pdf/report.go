package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"ayvcodr/internal/models"
)

// Generator - интерфейс (удобно мокать в тестах)
type Generator interface {
	RenderAuditReport(username string, entries []*models.AuditLogEntry, w io.Writer) error
}

// ReportGenerator строит compliance-отчёт по журналу аудита.
type ReportGenerator struct {
	fontName string
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{fontName: "Helvetica"}
}

func (g *ReportGenerator) RenderAuditReport(username string, entries []*models.AuditLogEntry, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Audit log - %s", username), false)
	pdf.SetAuthor("AyvCodr", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Privacy Audit Log", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	sub := fmt.Sprintf("Account: %s    Generated: %s", username, time.Now().Format("02.01.2006 15:04"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	// шапка таблицы
	pdf.SetFont(g.fontName, "B", 10)
	pdf.CellFormat(45, 8, "Timestamp", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Action", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Details", "1", 1, "L", false, 0, "")

	pdf.SetFont(g.fontName, "", 9)
	for _, e := range entries {
		pdf.CellFormat(45, 7, e.Timestamp.Format("2006-01-02 15:04:05"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, e.Action, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, e.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, e.Details, "1", 1, "L", false, 0, "")
	}
	if len(entries) == 0 {
		pdf.CellFormat(170, 7, "No audit entries recorded.", "1", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	x, y := pdf.GetXY()
	pdf.Line(x, y, 190, y)
	pdf.Ln(4)
}
