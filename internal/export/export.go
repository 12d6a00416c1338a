package export // export renders listings to downloadable files

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/prajnahall/studyhall-admin/internal/model"
)

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}

// StudentsXLSX renders the student register to a spreadsheet.
func StudentsXLSX(students []model.Student) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Name", "Phone", "Email", "Joined", "Seat", "Valid From", "Valid To"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, s := range students {
		vals := []string{
			s.Name, s.Phone, s.Email,
			s.JoinDate.Format(model.DateLayout),
			s.SeatNo, optDate(s.ValidFrom), optDate(s.ValidTo),
		}
		for i, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SeatsXLSX renders the seat inventory to a spreadsheet.
func SeatsXLSX(seats []model.Seat) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Seat", "Type", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, s := range seats {
		vals := []string{s.SeatNo, s.SeatType, s.Status}
		for i, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfTable renders one table with a bold header row.
func pdfTable(title string, headers []string, widths []float64, rows [][]string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// StudentsPDF renders the student register as a PDF table.
func StudentsPDF(students []model.Student) ([]byte, error) {
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			s.Name, s.Phone, s.JoinDate.Format(model.DateLayout),
			s.SeatNo, optDate(s.ValidFrom), optDate(s.ValidTo),
		})
	}
	return pdfTable("Students",
		[]string{"Name", "Phone", "Joined", "Seat", "Valid From", "Valid To"},
		[]float64{45, 30, 25, 20, 35, 35}, rows)
}

// SeatsPDF renders the seat inventory as a PDF table.
func SeatsPDF(seats []model.Seat) ([]byte, error) {
	rows := make([][]string, 0, len(seats))
	for _, s := range seats {
		rows = append(rows, []string{s.SeatNo, s.SeatType, s.Status})
	}
	return pdfTable("Seats",
		[]string{"Seat", "Type", "Status"},
		[]float64{60, 60, 60}, rows)
}
