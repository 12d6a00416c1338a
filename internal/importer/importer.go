package importer // importer loads seat inventory from spreadsheet uploads

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one mapped spreadsheet line.
type Row struct {
	SeatNo   string
	SeatType string
}

// RowWriter receives mapped rows one at a time. The importer stays
// transport-agnostic: a handler wires in the seats collection, tests wire
// in a recorder, and a batched transport could be substituted without
// touching the mapping.
type RowWriter interface {
	WriteRow(ctx context.Context, row Row) error
}

// ReadSeats parses the first sheet of an xlsx upload into rows. The first
// line is assumed to be a header and skipped. Column A holds the seat
// number, column B the seat type; blank seat numbers end up skipped, not
// failed, so trailing empty rows in hand-edited sheets are harmless.
func ReadSeats(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	lines, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var rows []Row
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		var seatNo, seatType string
		if len(line) > 0 {
			seatNo = strings.TrimSpace(line[0])
		}
		if len(line) > 1 {
			seatType = strings.TrimSpace(line[1])
		}
		if seatNo == "" {
			continue
		}
		// normalize the two known spellings, pass anything else through
		switch {
		case strings.EqualFold(seatType, "AC"):
			seatType = "AC"
		case seatType == "" || strings.EqualFold(seatType, "Non-AC"):
			seatType = "Non-AC"
		}
		rows = append(rows, Row{SeatNo: seatNo, SeatType: seatType})
	}
	return rows, nil
}

// Run writes rows sequentially and reports how many succeeded. It stops at
// the first failure; rows already written stay written.
func Run(ctx context.Context, rows []Row, w RowWriter) (int, error) {
	for i, row := range rows {
		if err := w.WriteRow(ctx, row); err != nil {
			return i, fmt.Errorf("row %d (%s): %w", i+2, row.SeatNo, err)
		}
	}
	return len(rows), nil
}
