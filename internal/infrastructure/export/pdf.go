package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

const (
	pageMargin = 15.0
	rowHeight  = 8.0
)

// PDF 生成A4表格报表
// 1. 标题、副标题
// 2. 灰底表头，每页重复
// 3. 列宽按页面宽度平均分配，第一列加宽
func PDF(t Table) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := columnWidths(pdf, len(t.Header))
	header := func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range t.Header {
			pdf.CellFormat(widths[i], rowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetFillColor(245, 245, 220)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(t.Title), "", 1, "C", false, 0, "")
	if t.Subtitle != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 10, tr(t.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
			header()
		}
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], rowHeight, tr(cell), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Wrap(err, "生成PDF失败")
	}
	return buf.Bytes(), nil
}

func columnWidths(pdf *fpdf.Fpdf, n int) []float64 {
	if n == 0 {
		return nil
	}
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin
	if n == 1 {
		return []float64{usable}
	}

	// 第一列（名称）占两份
	unit := usable / float64(n+1)
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = unit
	}
	widths[0] = 2 * unit
	return widths
}
