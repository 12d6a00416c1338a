package booking

import (
	"reflect"
	"testing"

	"github.com/prajnahall/studyhall-admin/internal/model"
)

func mkSeat(no, typ, status string) model.Seat {
	return model.Seat{ID: "id-" + no, SeatNo: no, SeatType: typ, Status: status}
}

func TestSeatOptions(t *testing.T) {
	t.Parallel()

	seats := []model.Seat{
		mkSeat("A 1", "AC", model.SeatAvailable),
		mkSeat("A 2", "AC", model.SeatOccupied),
		mkSeat("B 1", "Non-AC", model.SeatAvailable),
		mkSeat("B 2", "Non-AC", model.SeatOccupied),
	}

	t.Run("unseated student sees only available seats", func(t *testing.T) {
		t.Parallel()
		got := SeatOptions(seats, "")
		want := []SeatOption{
			{Value: "A 1", Label: "A 1 - (AC)"},
			{Value: "B 1", Label: "B 1 - (Non-AC)"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SeatOptions = %+v, want %+v", got, want)
		}
	})

	t.Run("student keeps their own occupied seat in the list", func(t *testing.T) {
		t.Parallel()
		got := SeatOptions(seats, "B 2")
		want := []SeatOption{
			{Value: "A 1", Label: "A 1 - (AC)"},
			{Value: "B 1", Label: "B 1 - (Non-AC)"},
			{Value: "B 2", Label: "B 2 - (Non-AC)"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SeatOptions = %+v, want %+v", got, want)
		}
	})

	t.Run("no occupied seat leaks in unless held by the subject", func(t *testing.T) {
		t.Parallel()
		for _, opt := range SeatOptions(seats, "A 2") {
			var status string
			for _, s := range seats {
				if s.SeatNo == opt.Value {
					status = s.Status
				}
			}
			if status == model.SeatOccupied && opt.Value != "A 2" {
				t.Errorf("occupied seat %s offered to a student holding A 2", opt.Value)
			}
		}
	})
}

func TestAvailableBoard(t *testing.T) {
	t.Parallel()

	seats := []model.Seat{
		mkSeat("A 3", "AC", model.SeatAvailable),
		mkSeat("A 1", "AC", model.SeatAvailable),
		mkSeat("A 2", "AC", model.SeatOccupied),
		mkSeat("B 5", "Non-AC", model.SeatAvailable),
		mkSeat("OPEN 1", "Non-AC", model.SeatAvailable), // open zone stays off the board
	}
	got := AvailableBoard(seats)
	want := map[string][]int{
		"A": {1, 3},
		"B": {5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableBoard = %v, want %v", got, want)
	}
}
