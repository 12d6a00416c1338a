package booking

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlan_ThreeEvenMonths(t *testing.T) {
	t.Parallel()

	got, err := Plan("B 2", date(2025, time.January, 15), 3, 3000)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []Installment{
		{Month: "Jan", SeatNo: "B 2", From: date(2025, time.January, 15), To: date(2025, time.February, 14), Amount: 1000},
		{Month: "Feb", SeatNo: "B 2", From: date(2025, time.February, 15), To: date(2025, time.March, 14), Amount: 1000},
		{Month: "Mar", SeatNo: "B 2", From: date(2025, time.March, 15), To: date(2025, time.April, 14), Amount: 1000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Plan = %+v\nwant %+v", got, want)
	}
}

func TestPlan_MonthEndStart(t *testing.T) {
	t.Parallel()

	// Jan 31 + 1 month clamps to the last day of February rather than
	// normalizing into March; the single installment therefore ends the
	// day before that clamped boundary.
	got, err := Plan("A 1", date(2025, time.January, 31), 1, 500)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d installments, want 1", len(got))
	}
	if !got[0].From.Equal(date(2025, time.January, 31)) {
		t.Errorf("From = %v", got[0].From)
	}
	if !got[0].To.Equal(date(2025, time.February, 27)) {
		t.Errorf("To = %v, want 2025-02-27 (clamped boundary Feb 28 minus one day)", got[0].To)
	}
	if got[0].Amount != 500 {
		t.Errorf("Amount = %v, want 500", got[0].Amount)
	}
}

func TestPlan_Contiguity(t *testing.T) {
	t.Parallel()

	starts := []time.Time{
		date(2025, time.January, 1),
		date(2025, time.January, 15),
		date(2025, time.January, 31), // clamps through Feb
		date(2024, time.December, 30),
		date(2024, time.October, 31), // crosses 30-day months and Feb of a leap year
	}
	for _, start := range starts {
		for months := 1; months <= 14; months++ {
			plan, err := Plan("C 3", start, months, 12345)
			if err != nil {
				t.Fatalf("Plan(%v, %d): %v", start, months, err)
			}
			if len(plan) != months {
				t.Fatalf("Plan(%v, %d) returned %d installments", start, months, len(plan))
			}
			for i := range plan {
				if !plan[i].From.Before(plan[i].To.AddDate(0, 0, 1)) {
					t.Errorf("installment %d has empty range %v..%v", i, plan[i].From, plan[i].To)
				}
				if i == 0 {
					continue
				}
				if !plan[i-1].From.Before(plan[i].From) {
					t.Errorf("from dates not strictly increasing at %d: %v then %v", i, plan[i-1].From, plan[i].From)
				}
				if !plan[i-1].To.Equal(plan[i].From.AddDate(0, 0, -1)) {
					t.Errorf("gap between installment %d and %d: to=%v next from=%v",
						i-1, i, plan[i-1].To, plan[i].From)
				}
			}
		}
	}
}

func TestPlan_AmountRounding(t *testing.T) {
	t.Parallel()

	// Sum equals round(total/K)*K and may drift from the total by at most
	// K-1 units; the drift is accepted, not corrected.
	cases := []struct {
		total  float64
		months int
	}{
		{3000, 3}, {1000, 3}, {5000, 6}, {999, 2}, {100, 7}, {0, 4},
	}
	for _, tc := range cases {
		plan, err := Plan("A 1", date(2025, time.March, 1), tc.months, tc.total)
		if err != nil {
			t.Fatalf("Plan(%v, %d): %v", tc.total, tc.months, err)
		}
		per := math.Round(tc.total / float64(tc.months))
		var sum float64
		for _, inst := range plan {
			if inst.Amount != per {
				t.Errorf("installment amount %v, want %v", inst.Amount, per)
			}
			sum += inst.Amount
		}
		if sum != per*float64(tc.months) {
			t.Errorf("sum = %v, want %v", sum, per*float64(tc.months))
		}
		if drift := math.Abs(sum - tc.total); drift > float64(tc.months-1) {
			t.Errorf("total=%v months=%d: drift %v exceeds bound %d", tc.total, tc.months, drift, tc.months-1)
		}
	}
}

func TestPlan_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := Plan("D 7", date(2025, time.May, 20), 4, 4400)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	b, err := Plan("D 7", date(2025, time.May, 20), 4, 4400)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different plans:\n%+v\n%+v", a, b)
	}
}

func TestPlan_RejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := Plan("A 1", date(2025, time.January, 1), 0, 100); !errors.Is(err, ErrValidation) {
		t.Errorf("zero months: err = %v, want ErrValidation", err)
	}
	if _, err := Plan("A 1", date(2025, time.January, 1), 3, -10); !errors.Is(err, ErrValidation) {
		t.Errorf("negative total: err = %v, want ErrValidation", err)
	}
}
