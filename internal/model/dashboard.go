package model

// AdminStats are the counters on the admin dashboard.
type AdminStats struct {
	Categories int `json:"categories"`
	Experts    int `json:"experts"`
	Users      int `json:"users"`
	Bookings   int `json:"bookings"`
}

// ExpertBooking is a booking as an expert sees it.
type ExpertBooking struct {
	Booking
	ClientLabel   string `json:"client_label"`
	ClientInitial string `json:"client_initial"`
}

// ExpertDashboard is the expert's own profile with their bookings.
type ExpertDashboard struct {
	Expert         Expert          `json:"expert"`
	Bookings       []ExpertBooking `json:"bookings"`
	ConfirmedCount int             `json:"confirmed_count"`
	PendingCount   int             `json:"pending_count"`
}

// UserBooking is a booking as the booking user sees it.
type UserBooking struct {
	Booking
	ExpertName   string `json:"expert_name"`
	CategoryName string `json:"category_name"`
}

// UserDashboard lists the caller's bookings.
type UserDashboard struct {
	Bookings []UserBooking `json:"bookings"`
}

// BackfillResult reports a user snapshot backfill over bookings.
type BackfillResult struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}
