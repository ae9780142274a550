// Package pdf renders generated medical reports as paginated PDF documents.
package pdf

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Layout constants, A4 portrait in millimeters.
const (
	headerHeight = 40.0
	marginLeft   = 20.0
	bodyWidth    = 170.0
	lineHeight   = 7.0
	footerRuleY  = 280.0
	footerTextY  = 287.0
)

var (
	concerningRe = regexp.MustCompile(`(?i)high|elevated|abnormal|concerning|borderline`)
	lowRe        = regexp.MustCompile(`(?i)low|decreased|deficient`)
	normalRe     = regexp.MustCompile(`(?i)normal|stable|healthy`)
)

type rgb struct{ r, g, b int }

var (
	colorAccent     = rgb{36, 99, 235}
	colorConcerning = rgb{220, 53, 69}
	colorLow        = rgb{255, 193, 7}
	colorNormal     = rgb{40, 167, 69}
	colorBody       = rgb{0, 0, 0}
	colorFooter     = rgb{128, 128, 128}
)

// classify picks the text color for a report line from the clinical terms
// it contains. Concerning terms win over low, low over normal.
func classify(line string) rgb {
	switch {
	case concerningRe.MatchString(line):
		return colorConcerning
	case lowRe.MatchString(line):
		return colorLow
	case normalRe.MatchString(line):
		return colorNormal
	default:
		return colorBody
	}
}

// Exporter renders report text into a branded, paginated PDF.
type Exporter struct {
	title string
	now   func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{
		title: "Sahayak Medical AI Report",
		now:   time.Now,
	}
}

// Render produces the PDF bytes for a generated report. Output is
// deterministic apart from the generation date.
func (e *Exporter) Render(reportText string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 297-footerRuleY+10)
	doc.AliasNbPages("")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		doc.SetDrawColor(colorAccent.r, colorAccent.g, colorAccent.b)
		doc.SetLineWidth(0.5)
		doc.Line(marginLeft, footerRuleY, marginLeft+bodyWidth, footerRuleY)

		doc.SetY(footerTextY - 4)
		doc.SetFont("Helvetica", "I", 10)
		doc.SetTextColor(colorFooter.r, colorFooter.g, colorFooter.b)
		doc.CellFormat(bodyWidth/2, 8, "Sahayak - AI-Powered Medical Report", "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(bodyWidth/2, 8, "Page "+strconv.Itoa(doc.PageNo())+" of {nb}", "", 0, "R", false, 0, "")
	})

	doc.AddPage()
	e.renderHeader(doc)

	sections := strings.Split(reportText, "\n\n")
	for _, section := range sections {
		heading := strings.Contains(section, "**")
		if heading {
			section = strings.ReplaceAll(section, "**", "")
			doc.SetFont("Helvetica", "B", 14)
			doc.SetTextColor(colorAccent.r, colorAccent.g, colorAccent.b)
		} else {
			doc.SetFont("Helvetica", "", 12)
			doc.SetTextColor(colorBody.r, colorBody.g, colorBody.b)
		}

		for _, line := range strings.Split(section, "\n") {
			if !heading {
				c := classify(line)
				doc.SetTextColor(c.r, c.g, c.b)
			}
			if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "*") {
				line = "• " + strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
			}
			doc.SetX(marginLeft)
			doc.MultiCell(bodyWidth, lineHeight, tr(line), "", "L", false)
		}
		doc.Ln(5)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderHeader draws the title band and the generation date on the first
// page.
func (e *Exporter) renderHeader(doc *gofpdf.Fpdf) {
	pageWidth, _ := doc.GetPageSize()

	doc.SetFillColor(colorAccent.r, colorAccent.g, colorAccent.b)
	doc.Rect(0, 0, pageWidth, headerHeight, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 24)
	doc.SetXY(0, 15)
	doc.CellFormat(pageWidth, 12, e.title, "", 1, "C", false, 0, "")

	doc.SetTextColor(colorBody.r, colorBody.g, colorBody.b)
	doc.SetFont("Helvetica", "", 12)
	doc.SetXY(marginLeft, 46)
	doc.CellFormat(bodyWidth, 8, "Date: "+e.now().Format("1/2/2006"), "", 1, "L", false, 0, "")

	doc.SetDrawColor(colorAccent.r, colorAccent.g, colorAccent.b)
	doc.SetLineWidth(0.5)
	doc.Line(marginLeft, 55, marginLeft+bodyWidth, 55)

	doc.SetY(65)
}
