package booking

import (
	"sort"
	"strings"

	"github.com/prajnahall/studyhall-admin/internal/model"
)

// SeatOption is one bookable seat as presented to the operator.
type SeatOption struct {
	Value string `json:"value"` // seat number
	Label string `json:"label"` // seat number plus category
}

// SeatOptions derives the candidate seats for a booking dialog: every seat
// whose status is Available, plus the subject student's own seat even
// though it is Occupied: it is occupied by this very student and stays
// selectable for a rebooking or extension. heldSeatNo is empty for an
// unseated student. Source order is preserved.
func SeatOptions(seats []model.Seat, heldSeatNo string) []SeatOption {
	out := make([]SeatOption, 0, len(seats))
	for _, s := range seats {
		if s.Status != model.SeatAvailable && s.SeatNo != heldSeatNo {
			continue
		}
		out = append(out, SeatOption{
			Value: s.SeatNo,
			Label: s.SeatNo + " - (" + s.SeatType + ")",
		})
	}
	return out
}

// AvailableBoard groups the Available seats by zone prefix for the
// wall-board view, ordinals sorted ascending. Zones whose name starts
// with "OPEN" are not shown on the board. Seat numbers without a parsable
// ordinal are skipped.
func AvailableBoard(seats []model.Seat) map[string][]int {
	board := make(map[string][]int)
	for _, s := range seats {
		if s.Status != model.SeatAvailable {
			continue
		}
		zone, ordinal, ok := model.SplitSeatNo(s.SeatNo)
		if !ok || strings.HasPrefix(strings.ToUpper(zone), "OPEN") {
			continue
		}
		board[zone] = append(board[zone], ordinal)
	}
	for zone := range board {
		sort.Ints(board[zone])
	}
	return board
}
