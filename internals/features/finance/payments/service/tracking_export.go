package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var trackingHeaderPrefix = []string{"Room", "Tenant", "Username", "Move-in"}

// ExportTracking renders the grid to an xlsx workbook.
// Paid cells read "PAID", months before move-in read "N/A", the rest stay blank.
func ExportTracking(g *TrackingGrid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Payments %d", g.Year)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	paidStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("paid style: %w", err)
	}
	invalidStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "#999999"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#EEEEEE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}

	headers := append([]string{}, trackingHeaderPrefix...)
	for m := time.January; m <= time.December; m++ {
		headers = append(headers, m.String()[:3])
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i, r := range g.Rows {
		rowNum := i + 2
		values := []any{r.RoomNumber, r.TenantName, r.UserName, r.MoveInDate}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
		}
		for m, state := range r.Months {
			if state == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(len(trackingHeaderPrefix)+m+1, rowNum)
			label, style := "PAID", paidStyle
			if *state == CellInvalid {
				label, style = "N/A", invalidStyle
			}
			if err := f.SetCellValue(sheet, cell, label); err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 22)
	_ = f.SetColWidth(sheet, "D", "D", 12)
	_ = f.SetColWidth(sheet, "E", "P", 7)
	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      len(trackingHeaderPrefix),
		YSplit:      1,
		TopLeftCell: "E2",
		ActivePane:  "bottomRight",
	})

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// TrackingFilename is the download name for ExportTracking output.
func TrackingFilename(year int) string {
	return fmt.Sprintf("payment_tracking_%d.xlsx", year)
}
