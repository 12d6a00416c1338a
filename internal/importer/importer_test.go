package importer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sheetBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadSeats(t *testing.T) {
	data := sheetBytes(t, [][]string{
		{"Seat", "Type"},
		{"A 1", "ac"},
		{"A 2", ""},
		{"", "AC"}, // blank seat number, skipped
		{"B 1", "non-ac"},
	})

	rows, err := ReadSeats(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSeats: %v", err)
	}
	want := []Row{
		{SeatNo: "A 1", SeatType: "AC"},
		{SeatNo: "A 2", SeatType: "Non-AC"},
		{SeatNo: "B 1", SeatType: "Non-AC"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestReadSeatsRejectsGarbage(t *testing.T) {
	if _, err := ReadSeats(bytes.NewReader([]byte("not a spreadsheet"))); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}

type recordingWriter struct {
	rows   []Row
	failAt int // fail when writing this index; -1 never fails
}

func (w *recordingWriter) WriteRow(_ context.Context, row Row) error {
	if w.failAt >= 0 && len(w.rows) == w.failAt {
		return errors.New("store down")
	}
	w.rows = append(w.rows, row)
	return nil
}

func TestRunSequential(t *testing.T) {
	rows := []Row{{SeatNo: "A 1", SeatType: "AC"}, {SeatNo: "A 2", SeatType: "Non-AC"}}
	w := &recordingWriter{failAt: -1}

	n, err := Run(context.Background(), rows, w)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 2 || len(w.rows) != 2 {
		t.Fatalf("wrote %d rows, want 2", len(w.rows))
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	rows := []Row{
		{SeatNo: "A 1", SeatType: "AC"},
		{SeatNo: "A 2", SeatType: "AC"},
		{SeatNo: "A 3", SeatType: "AC"},
	}
	w := &recordingWriter{failAt: 1}

	n, err := Run(context.Background(), rows, w)
	if err == nil {
		t.Fatal("expected error")
	}
	if n != 1 {
		t.Fatalf("reported %d written, want 1", n)
	}
	// rows already written stay written
	if len(w.rows) != 1 || w.rows[0].SeatNo != "A 1" {
		t.Fatalf("writer saw %+v", w.rows)
	}
}
