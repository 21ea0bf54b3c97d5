package export

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/sales-insight-go/internal/domain/entity"
)

const (
	pageWidth    = 190.0
	chartHeight  = 70.0
	maxChartBars = 12
	maxAxisTicks = 8
)

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
	kpiRowColor       = [3]int{245, 240, 225}
	trendColor        = [3]int{16, 185, 129}
	categoryColor     = [3]int{59, 130, 246}
)

// RenderPDF escreve o relatório completo em w.
func (r *ExportRepositoryImpl) RenderPDF(data entity.Analysis, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 14, tr("  Sales Analysis Report"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("  Generated at %s", r.now().Format("2006-01-02 15:04"))), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	drawSectionTitle(pdf, "Key Performance Indicators")
	drawKPITable(pdf, tr, data.KPIs)
	pdf.Ln(10)

	if data.Trend != nil && len(*data.Trend) > 0 {
		ensureSpace(pdf, chartHeight+25)
		drawSectionTitle(pdf, "Daily Sales Trend")
		points := make([]chartPoint, len(*data.Trend))
		for i, d := range *data.Trend {
			points[i] = chartPoint{label: d.Date, value: d.Revenue}
		}
		drawLineChart(pdf, tr, points)
		pdf.Ln(10)
	}

	if data.Categories != nil && len(*data.Categories) > 0 {
		ensureSpace(pdf, chartHeight+25)
		drawSectionTitle(pdf, "Revenue by Category")
		drawBarChart(pdf, tr, topCategories(*data.Categories, maxChartBars))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing PDF: %w", err)
	}
	return nil
}

type chartPoint struct {
	label string
	value float64
}

// topCategories keeps the n-1 largest categories and folds the rest into "Other".
func topCategories(categories entity.CategoryBreakdown, n int) []chartPoint {
	points := make([]chartPoint, 0, n)
	var other float64
	for i, c := range categories {
		if len(categories) > n && i >= n-1 {
			other += c.Revenue
			continue
		}
		label := c.Category
		if label == "" {
			label = "(blank)"
		}
		points = append(points, chartPoint{label: label, value: c.Revenue})
	}
	if len(categories) > n {
		points = append(points, chartPoint{label: "Other", value: other})
	}
	return points
}

func ensureSpace(pdf *gofpdf.Fpdf, needed float64) {
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+needed > pageHeight-bottom-15 {
		pdf.AddPage()
	}
}

func drawSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
	pdf.Cell(0, 8, title)
	pdf.Ln(7)

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pageWidth, pdf.GetY())
	pdf.Ln(4)
}

func drawKPITable(pdf *gofpdf.Fpdf, tr func(string) string, kpis entity.KPISummary) {
	colWidth := 80.0
	left := (210.0 - 2*colWidth) / 2

	pdf.SetX(left)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetDrawColor(0, 0, 0)
	pdf.CellFormat(colWidth, 9, "Metric", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidth, 9, "Value", "1", 1, "C", true, 0, "")

	rows := [][2]string{
		{"Total Revenue", formatMoney(kpis.TotalRevenue)},
		{"Total Orders", fmt.Sprintf("%d", kpis.TotalOrders)},
		{"Average Order Value", formatMoney(kpis.AverageOrderValue)},
		{"Total Items Sold", formatQuantity(kpis.TotalItems)},
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(kpiRowColor[0], kpiRowColor[1], kpiRowColor[2])
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for _, row := range rows {
		pdf.SetX(left)
		pdf.CellFormat(colWidth, 8, tr(row[0]), "1", 0, "C", true, 0, "")
		pdf.CellFormat(colWidth, 8, tr(row[1]), "1", 1, "C", true, 0, "")
	}
}

// chartFrame draws the axes and returns the plot origin and scale.
func chartFrame(pdf *gofpdf.Fpdf, tr func(string) string, points []chartPoint) (x0, y0, plotW, plotH, maxValue float64) {
	x0 = pdf.GetX() + 22
	top := pdf.GetY() + 2
	plotW = pageWidth - 26
	plotH = chartHeight - 22
	y0 = top + plotH

	for _, p := range points {
		maxValue = math.Max(maxValue, p.value)
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.SetLineWidth(0.1)
	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(100, 100, 100)
	for i := 0; i <= 4; i++ {
		y := y0 - plotH*float64(i)/4
		pdf.Line(x0, y, x0+plotW, y)
		pdf.SetXY(x0-22, y-2)
		pdf.CellFormat(20, 4, tr(formatMoney(maxValue*float64(i)/4)), "", 0, "R", false, 0, "")
	}

	pdf.SetDrawColor(80, 80, 80)
	pdf.SetLineWidth(0.3)
	pdf.Line(x0, top, x0, y0)
	pdf.Line(x0, y0, x0+plotW, y0)
	return x0, y0, plotW, plotH, maxValue
}

func drawLineChart(pdf *gofpdf.Fpdf, tr func(string) string, points []chartPoint) {
	startY := pdf.GetY()
	x0, y0, plotW, plotH, maxValue := chartFrame(pdf, tr, points)

	step := plotW
	if len(points) > 1 {
		step = plotW / float64(len(points)-1)
	}
	xAt := func(i int) float64 {
		if len(points) == 1 {
			return x0 + plotW/2
		}
		return x0 + step*float64(i)
	}
	yAt := func(v float64) float64 {
		return y0 - plotH*math.Max(v, 0)/maxValue
	}

	pdf.SetDrawColor(trendColor[0], trendColor[1], trendColor[2])
	pdf.SetFillColor(trendColor[0], trendColor[1], trendColor[2])
	pdf.SetLineWidth(0.6)
	for i := 1; i < len(points); i++ {
		pdf.Line(xAt(i-1), yAt(points[i-1].value), xAt(i), yAt(points[i].value))
	}
	for i, p := range points {
		pdf.Circle(xAt(i), yAt(p.value), 0.9, "F")
	}

	// rótulos espaçados para não sobrepor
	every := int(math.Ceil(float64(len(points)) / maxAxisTicks))
	pdf.SetFont("Arial", "", 6)
	pdf.SetTextColor(100, 100, 100)
	for i, p := range points {
		if i%every != 0 && i != len(points)-1 {
			continue
		}
		pdf.SetXY(xAt(i)-10, y0+1.5)
		pdf.CellFormat(20, 4, tr(p.label), "", 0, "C", false, 0, "")
	}

	pdf.SetLineWidth(0.2)
	pdf.SetXY(10, startY+chartHeight)
}

func drawBarChart(pdf *gofpdf.Fpdf, tr func(string) string, points []chartPoint) {
	startY := pdf.GetY()
	x0, y0, plotW, plotH, maxValue := chartFrame(pdf, tr, points)

	slot := plotW / float64(len(points))
	barW := slot * 0.6

	pdf.SetFillColor(categoryColor[0], categoryColor[1], categoryColor[2])
	pdf.SetFont("Arial", "", 6)
	pdf.SetTextColor(100, 100, 100)
	for i, p := range points {
		h := plotH * math.Max(p.value, 0) / maxValue
		x := x0 + slot*float64(i) + (slot-barW)/2
		if h > 0 {
			pdf.Rect(x, y0-h, barW, h, "F")
		}

		label := []rune(p.label)
		for len(label) > 3 && pdf.GetStringWidth(tr(string(label))) > slot {
			label = append(label[:len(label)-2], '.')
		}
		pdf.SetXY(x0+slot*float64(i), y0+1.5)
		pdf.CellFormat(slot, 4, tr(string(label)), "", 0, "C", false, 0, "")
	}

	pdf.SetLineWidth(0.2)
	pdf.SetXY(10, startY+chartHeight)
}
