package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"stockroom/internal/models"
)

type Generator interface {
	InventoryReport(w io.Writer, data ReportData) error
}

type ReportData struct {
	Products    []*models.Product
	GeneratedAt time.Time
}

// ReportGenerator renders inventory reports. With an empty FontPath the core
// Helvetica font is used and text is translated to cp1252.
type ReportGenerator struct {
	FontPath string
	fontName string
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	name := "Helvetica"
	if fontPath != "" {
		name = "DejaVu"
	}
	return &ReportGenerator{FontPath: fontPath, fontName: name}
}

func (g *ReportGenerator) InventoryReport(w io.Writer, data ReportData) error {
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now().UTC()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Inventory report", false)
	pdf.SetAuthor("stockroom", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	g.addFont(pdf)
	tr := g.translator(pdf)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "INVENTORY REPORT", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 12)
	pdf.CellFormat(0, 7, data.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	g.hr(pdf)

	sum := models.Summarize(data.Products, data.GeneratedAt)
	g.sectionTitle(pdf, "Summary")
	g.kvLine(pdf, "Products", fmt.Sprintf("%d", sum.Total))
	g.kvLine(pdf, "Expired", fmt.Sprintf("%d", sum.Expired))
	g.kvLine(pdf, "Expiring soon", fmt.Sprintf("%d", sum.ExpiringSoon))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Products")
	if len(data.Products) == 0 {
		pdf.MultiCell(0, 6, "No products on record.", "", "L", false)
	} else {
		g.tableHeader(pdf)
		for _, p := range data.Products {
			pdf.CellFormat(20, 7, fmt.Sprintf("%d", p.ID), "1", 0, "R", false, 0, "")
			pdf.CellFormat(80, 7, tr(p.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, p.ExpirationDate.String(), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 7, p.ExpiryStatus(data.GeneratedAt), "1", 1, "C", false, 0, "")
		}
	}

	return pdf.Output(w)
}

func (g *ReportGenerator) tableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(20, 7, "ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(80, 7, "Name", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Expires", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 1, "C", true, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

// ===== helpers =====

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) addFont(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		return
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

func (g *ReportGenerator) translator(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath != "" {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}
