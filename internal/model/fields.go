// Package model defines the typed records the application works with and
// the decode functions that sit at the store boundary. The remote store is
// schemaless, so every attribute is parsed and validated here; code above
// this layer never touches raw documents.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by every date attribute in
// the store (no time component).
const DateLayout = "2006-01-02"

// parseDate parses a required calendar date.
func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: bad date %q", field, s)
	}
	return t, nil
}

// parseOptionalDate parses a date that may legitimately be absent. Empty
// input yields nil rather than an error.
func parseOptionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// flexAmount accepts an amount stored either as a JSON number or as a
// numeric string. The historical data contains both shapes.
type flexAmount float64

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = flexAmount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount is neither number nor string: %s", data)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*a = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("bad amount %q", s)
	}
	*a = flexAmount(n)
	return nil
}

// SplitSeatNo breaks a seat number like "A 12" or "B7" into its zone
// prefix and ordinal. ok is false when no trailing ordinal can be found.
func SplitSeatNo(seatNo string) (zone string, ordinal int, ok bool) {
	s := strings.TrimSpace(seatNo)
	if fields := strings.Fields(s); len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return "", 0, false
		}
		return fields[0], n, true
	}
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) || i == 0 {
		return "", 0, false
	}
	n, _ := strconv.Atoi(s[i:])
	return s[:i], n, true
}
