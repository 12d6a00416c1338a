package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/prajnahall/studyhall-admin/internal/repository"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// fakeStore serves canned documents per collection, ignoring query
// predicates; the handlers under test do their own filtering or only
// aggregate what comes back.
func fakeStore(t *testing.T, byCollection map[string][]map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		// databases/{db}/collections/{col}/documents
		if len(parts) < 5 || parts[4] != "documents" {
			http.NotFound(w, r)
			return
		}
		docs, ok := byCollection[parts[3]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total":     len(docs),
			"documents": docs,
		})
	}))
}

func doc(id, createdAt string, fields map[string]any) map[string]any {
	out := map[string]any{"$id": id, "$createdAt": createdAt}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func bookingDoc(id, createdAt, payment, receivedBy string, amount float64) map[string]any {
	return doc(id, createdAt, map[string]any{
		"seat_id":      "A 1",
		"student_id":   "stu-1",
		"student_name": "Asha",
		"from_date":    "2025-01-01",
		"to_date":      "2025-01-31",
		"amount":       amount,
		"payment_type": payment,
		"received_by":  receivedBy,
		"created_by":   receivedBy,
		"hall_code":    "PRAJNA",
	})
}

func TestDashboardSummary(t *testing.T) {
	srv := fakeStore(t, map[string][]map[string]any{
		"bookings": {
			bookingDoc("b1", "2025-01-05T10:00:00.000+00:00", "UPI", "Venkatesh", 1200),
			bookingDoc("b2", "2025-01-07T10:00:00.000+00:00", "Cash", "Venkatesh", 800),
			bookingDoc("b3", "2025-01-09T10:00:00.000+00:00", "UPI", "Ravi", 300),
		},
		"maintenance": {
			doc("m1", "2025-01-03T08:00:00.000+00:00", map[string]any{
				"category": "Rent", "amount": 5000, "created_by": "Venkatesh", "hall_code": "PRAJNA",
			}),
		},
		"students": {
			doc("s1", "2025-01-02T08:00:00.000+00:00", map[string]any{
				"name": "Asha", "join_date": "2025-01-02", "hall_code": "PRAJNA",
			}),
			doc("s2", "2024-11-20T08:00:00.000+00:00", map[string]any{
				"name": "Kiran", "join_date": "2024-11-20", "hall_code": "PRAJNA",
			}),
		},
	})
	defer srv.Close()

	sc := store.NewClient(srv.URL, "proj", "key", "db")
	h := NewDashboardHandler(
		repository.NewStudentRepo(sc, "students"),
		repository.NewBookingRepo(sc, "bookings"),
		repository.NewMaintenanceRepo(sc, "maintenance"),
	)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?month=2025-01", nil)
	rec := httptest.NewRecorder()
	if err := h.Summary(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var got struct {
		UPITotal         float64 `json:"upi_total"`
		CashTotal        float64 `json:"cash_total"`
		CollectionTotal  float64 `json:"collection_total"`
		StudentsJoined   int     `json:"students_joined"`
		MaintenanceTotal float64 `json:"maintenance_total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.UPITotal != 1500 || got.CashTotal != 800 || got.CollectionTotal != 2300 {
		t.Errorf("collections = %+v", got)
	}
	if got.StudentsJoined != 1 {
		t.Errorf("students_joined = %d, want 1", got.StudentsJoined)
	}
	if got.MaintenanceTotal != 5000 {
		t.Errorf("maintenance_total = %v, want 5000", got.MaintenanceTotal)
	}
}

func TestBookingListFiltersByReceiver(t *testing.T) {
	srv := fakeStore(t, map[string][]map[string]any{
		"bookings": {
			bookingDoc("b1", "2025-01-05T10:00:00.000+00:00", "UPI", "Venkatesh", 1200),
			bookingDoc("b2", "2025-01-07T10:00:00.000+00:00", "Cash", "Ravi", 800),
		},
	})
	defer srv.Close()

	sc := store.NewClient(srv.URL, "proj", "key", "db")
	h := NewBookingHandler(repository.NewBookingRepo(sc, "bookings"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings?month=2025-01&received_by=ravi", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}

	var got struct {
		Total       int     `json:"total"`
		TotalAmount float64 `json:"total_amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 1 || got.TotalAmount != 800 {
		t.Errorf("got total=%d amount=%v, want 1 row worth 800", got.Total, got.TotalAmount)
	}
}

func TestBookingListRejectsBadMonth(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(store.NewClient("http://unused", "p", "k", "d"), "bookings"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings?month=January", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}
