package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// seatStore is a stateful fake for the seats collection: it keeps whatever
// Create sends and serves it back on list calls, honoring equal()
// predicates. Listing through the same decoder that reads production
// documents is the point; a field misnamed on write surfaces here.
func seatStore(t *testing.T) *httptest.Server {
	t.Helper()
	type stored struct {
		id     string
		fields map[string]any
	}
	var docs []stored

	render := func(d stored) map[string]any {
		out := map[string]any{"$id": d.id, "$createdAt": "2025-01-10T08:00:00.000+00:00"}
		for k, v := range d.fields {
			out[k] = v
		}
		return out
	}
	// matches equal("field",["value"]) against the stored fields; other
	// predicates (limit, offset, order) pass everything through.
	matches := func(d stored, queries []string) bool {
		for _, q := range queries {
			if !strings.HasPrefix(q, "equal(") {
				continue
			}
			var pair [2]json.RawMessage
			if err := json.Unmarshal([]byte("["+strings.TrimSuffix(strings.TrimPrefix(q, "equal("), ")")+"]"), &pair); err != nil {
				continue
			}
			var field string
			var values []any
			_ = json.Unmarshal(pair[0], &field)
			_ = json.Unmarshal(pair[1], &values)
			if len(values) == 1 && fmt.Sprint(d.fields[field]) != fmt.Sprint(values[0]) {
				return false
			}
		}
		return true
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			var body struct {
				DocumentID string         `json:"documentId"`
				Data       map[string]any `json:"data"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			d := stored{id: body.DocumentID, fields: body.Data}
			docs = append(docs, d)
			_ = json.NewEncoder(w).Encode(render(d))
		case http.MethodGet:
			queries := r.URL.Query()["queries[]"]
			out := []map[string]any{}
			for _, d := range docs {
				if matches(d, queries) {
					out = append(out, render(d))
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"total": len(out), "documents": out})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestSeatCreateRoundTrip(t *testing.T) {
	srv := seatStore(t)
	defer srv.Close()

	repo := NewSeatRepo(store.NewClient(srv.URL, "proj", "key", "db"), "seats")
	ctx := context.Background()

	id, err := repo.Create(ctx, model.Seat{
		SeatNo: "A 1", SeatType: model.SeatTypeAC,
		Status: model.SeatAvailable, HallCode: "PRAJNA",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	// The document written above must decode back through the same repo.
	seats, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll after Create: %v", err)
	}
	if len(seats) != 1 || seats[0].SeatNo != "A 1" {
		t.Fatalf("ListAll = %+v, want one seat A 1", seats)
	}

	got, err := repo.FindBySeatNo(ctx, "A 1")
	if err != nil {
		t.Fatalf("FindBySeatNo: %v", err)
	}
	if got.ID != id || got.Status != model.SeatAvailable {
		t.Fatalf("FindBySeatNo = %+v, want id %s Available", got, id)
	}
}

func TestFindBySeatNoFiltersServerSide(t *testing.T) {
	srv := seatStore(t)
	defer srv.Close()

	repo := NewSeatRepo(store.NewClient(srv.URL, "proj", "key", "db"), "seats")
	ctx := context.Background()

	for _, no := range []string{"A 1", "A 2"} {
		if _, err := repo.Create(ctx, model.Seat{
			SeatNo: no, SeatType: model.SeatTypeNonAC,
			Status: model.SeatAvailable, HallCode: "PRAJNA",
		}); err != nil {
			t.Fatalf("Create %s: %v", no, err)
		}
	}

	got, err := repo.FindBySeatNo(ctx, "A 2")
	if err != nil {
		t.Fatalf("FindBySeatNo: %v", err)
	}
	if got.SeatNo != "A 2" {
		t.Fatalf("FindBySeatNo returned %q, want A 2", got.SeatNo)
	}

	if _, err := repo.FindBySeatNo(ctx, "Z 9"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("FindBySeatNo on an unknown number = %v, want ErrNotFound", err)
	}
}
