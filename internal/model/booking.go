package model

import "time"

// BookingStatus follows pending -> confirmed | declined.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
)

// CanTransition reports whether a booking may move from s to next.
// Only pending bookings can be decided.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s != BookingPending {
		return false
	}
	return next == BookingConfirmed || next == BookingDeclined
}

// Booking reserves an expert for a user at DateTime. UserDisplayName and
// UserEmail are a snapshot of the user taken at booking time.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	ExpertID        string        `json:"expert_id"`
	DateTime        time.Time     `json:"date_time"`
	Status          BookingStatus `json:"status"`
	UserDisplayName string        `json:"user_display_name,omitempty"`
	UserEmail       string        `json:"user_email,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NeedsUserSnapshot reports whether the user snapshot is incomplete.
func (b *Booking) NeedsUserSnapshot() bool {
	return b.UserDisplayName == "" || b.UserEmail == ""
}
