// Package queue defines message payloads exchanged over the message broker
// and the background consumers that turn them into log entries. Nothing is
// transmitted to students from here: the notify queue is a stub that only
// records what an operator asked to send.
package queue

// Queue names. Both queues are durable.
const (
	BookingConfirmedQueue = "booking.confirmed"
	NotifyRequestedQueue  = "notify.requested"
)

// BookingConfirmedEvent is published after a booking commit completes. It
// carries enough for downstream consumers to log or notify without
// querying the document store.
type BookingConfirmedEvent struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	SeatNo      string  `json:"seat_no"`
	FromDate    string  `json:"from_date"`
	ToDate      string  `json:"to_date"`
	Months      int     `json:"months"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"payment_type"`
	ReceivedBy  string  `json:"received_by"`
	HallCode    string  `json:"hall_code"`
	ConfirmedAt string  `json:"confirmed_at"`
}

// NotifyRequestedEvent is published when an operator asks to message a set
// of students. The consumer appends it to logs/notify.log; no outbound
// transport exists.
type NotifyRequestedEvent struct {
	Message     string   `json:"message"`
	Phones      []string `json:"phones"`
	RequestedBy string   `json:"requested_by"`
	HallCode    string   `json:"hall_code"`
	RequestedAt string   `json:"requested_at"`
}
