package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy the lab.
var ActiveStatuses = []BookingStatus{BookingPending, BookingConfirmed}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
	BookingCancelled: {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type Booking struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Attendees   []string      `json:"attendees"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingSummary is what clients see about a colliding booking.
type BookingSummary struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    BookingStatus `json:"status"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
}

func (b Booking) Summary() BookingSummary {
	return BookingSummary{
		ID:        b.ID,
		Title:     b.Title,
		Status:    b.Status,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}
