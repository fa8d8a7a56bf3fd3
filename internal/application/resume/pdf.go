package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/vitern/vitern-api/internal/domain"
)

// renderPDF lays out a one-page A4 resume from the student's profile and badges.
func renderPDF(st *domain.Student, badges []domain.Badge) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(st.Name+" - Resume", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, st.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s  |  %s  |  Year: %s", st.Email, st.RegNumber, st.YearOfStudy), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("CGPA: %.2f", st.CGPA), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if len(st.Skills) > 0 {
		sectionHeader(pdf, "Skills")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, strings.Join(st.Skills, ", "), "", "L", false)
		pdf.Ln(3)
	}

	if st.Experience != "" {
		sectionHeader(pdf, "Experience")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, st.Experience, "", "L", false)
		pdf.Ln(3)
	}

	if len(st.Projects) > 0 {
		sectionHeader(pdf, "Projects")
		for _, p := range st.Projects {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 5, p.Title, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			if p.Description != "" {
				pdf.MultiCell(0, 5, p.Description, "", "L", false)
			}
			if p.Link != "" {
				pdf.SetTextColor(0, 0, 200)
				pdf.CellFormat(0, 5, p.Link, "", 1, "L", false, 0, "")
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	if len(badges) > 0 {
		sectionHeader(pdf, "Achievements")
		pdf.SetFont("Helvetica", "", 10)
		for _, b := range badges {
			line := b.Title
			if b.Description != "" {
				line += " - " + b.Description
			}
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}
