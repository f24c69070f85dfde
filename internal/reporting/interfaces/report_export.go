package interfaces

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"advisory-portal/internal/reporting/application"
)

// ReportRenderer renders projected reports as CSV, XLSX or PDF.
type ReportRenderer struct{}

// Render dispatches on format and returns the payload with its MIME type.
func (ReportRenderer) Render(report *application.Report, columns []application.Column, format application.Format) ([]byte, string, error) {
	switch format {
	case application.FormatCSV:
		payload, err := buildReportCSV(report, columns)
		return payload, "text/csv", err
	case application.FormatXLSX:
		payload, err := buildReportXLSX(report, columns)
		return payload, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case application.FormatPDF:
		payload, err := buildReportPDF(report, columns)
		return payload, "application/pdf", err
	}
	return nil, "", application.ErrUnknownFormat
}

func buildReportCSV(report *application.Report, columns []application.Column) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, column := range columns {
		header[i] = column.Label
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	cells := make([]string, len(columns))
	for _, row := range report.Rows {
		for i, column := range columns {
			cells[i] = column.Cell(row)
		}
		if err := writer.Write(cells); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildReportXLSX(report *application.Report, columns []application.Column) ([]byte, error) {
	f := excelize.NewFile()
	detailSheet := "detail"
	summarySheet := "summary"
	f.SetSheetName("Sheet1", detailSheet)
	f.NewSheet(summarySheet)

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(detailSheet, cell, column.Label)
	}
	for rowIndex, row := range report.Rows {
		for i, column := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIndex+2)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(detailSheet, cell, column.Cell(row))
		}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Commission Report")
	_ = f.SetCellValue(summarySheet, "A3", "Rows")
	_ = f.SetCellValue(summarySheet, "B3", len(report.Rows))
	_ = f.SetCellValue(summarySheet, "A4", "Total")
	_ = f.SetCellValue(summarySheet, "B4", report.Total.RoundBank(2).StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A5", "Growth %")
	_ = f.SetCellValue(summarySheet, "B5", report.Growth.RoundBank(2).StringFixed(2))

	_ = f.SetCellValue(summarySheet, "A7", "Month")
	_ = f.SetCellValue(summarySheet, "B7", "Total")
	for i, point := range report.Series {
		row := i + 8
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), point.Month.Format("2006-01"))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), point.Total.RoundBank(2).StringFixed(2))
	}

	mixStart := len(report.Series) + 10
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", mixStart), "Product")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", mixStart), "Total")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", mixStart), "Mix %")
	for i, slice := range report.Mix {
		row := mixStart + i + 1
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), slice.ProductName)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), slice.Total.RoundBank(2).StringFixed(2))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), slice.Percent.RoundBank(2).StringFixed(2))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildReportPDF(report *application.Report, columns []application.Column) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Commission Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Rows: %d", len(report.Rows)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %s", report.Total.RoundBank(2).StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Growth: %s%%", report.Growth.RoundBank(2).StringFixed(2)))
	pdf.Ln(8)

	// Detail table. Column widths share the printable landscape width.
	width := 277.0 / float64(len(columns))
	pdf.SetFont("Arial", "B", 8)
	for _, column := range columns {
		pdf.CellFormat(width, 6, column.Label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 8)
	for _, row := range report.Rows {
		for _, column := range columns {
			pdf.CellFormat(width, 6, column.Cell(row), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
