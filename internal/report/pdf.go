package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/leadai/readiness/internal/domain"
)

// Filename builds the download filename for a report.
func Filename(dom string, meta Meta) string {
	return fmt.Sprintf("LeadAI-Audit-Report-%s-%s.pdf", dom, meta.GeneratedAt.Format("2006-01-02"))
}

// RenderPDF composes the structured audit result into an A4 PDF. The PDF is
// built from the result directly rather than from the HTML report, so no
// browser engine is involved.
func RenderPDF(result *domain.AuditResult, meta Meta) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header block.
	pdf.SetFillColor(102, 126, 234)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, "AI Readiness Audit Report", "", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s | %s", meta.BusinessEmail, meta.Domain), "", 1, "C", true, 0, "")
	pdf.CellFormat(0, 8, "Generated on "+meta.GeneratedAt.Format("January 2, 2006"), "", 1, "C", true, 0, "")
	pdf.Ln(6)

	// Overall score.
	pdf.SetTextColor(31, 41, 55)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 16, fmt.Sprintf("%d/100", result.OverallScore), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(75, 85, 99)
	pdf.MultiCell(0, 6, ScoreDescription(result.OverallScore), "", "C", false)
	pdf.Ln(4)

	sectionTitle(pdf, "Executive Summary")
	bodyText(pdf, result.Summary)

	sectionTitle(pdf, "Parameter Analysis")
	for _, cat := range domain.Categories() {
		cr, ok := result.Categories[cat]
		if !ok {
			continue
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(31, 41, 55)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s - %d/100 (%s priority)", cat.Label(), cr.Score, cr.Priority), "", 1, "L", false, 0, "")
		bodyText(pdf, cr.Narrative)
		bulletList(pdf, cr.Recommendations)
		pdf.Ln(2)
	}

	sectionTitle(pdf, "Strategic Action Plan")
	numberedList(pdf, result.ActionPlan)

	sectionTitle(pdf, "Business Opportunities")
	bulletList(pdf, result.Opportunities)

	sectionTitle(pdf, "Risk Assessment")
	bulletList(pdf, result.Risks)

	sectionTitle(pdf, "Competitive Advantage")
	bulletList(pdf, result.CompetitiveAdvantages)

	sectionTitle(pdf, "Implementation Roadmap")
	for _, phase := range result.Roadmap {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(31, 41, 55)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s (%s, ROI: %s)", phase.Name, phase.Duration, phase.ExpectedROI), "", 1, "L", false, 0, "")
		bulletList(pdf, phase.Actions)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report.RenderPDF: %w", err)
	}

	return buf.Bytes(), nil
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(31, 41, 55)
	pdf.SetDrawColor(102, 126, 234)
	pdf.CellFormat(0, 10, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func bodyText(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(75, 85, 99)
	pdf.MultiCell(0, 5, text, "", "L", false)
	pdf.Ln(1)
}

func bulletList(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(75, 85, 99)
	for _, item := range items {
		pdf.MultiCell(0, 5, "- "+item, "", "L", false)
	}
}

func numberedList(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(75, 85, 99)
	for i, item := range items {
		pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, item), "", "L", false)
	}
}
