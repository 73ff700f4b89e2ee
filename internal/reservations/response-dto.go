package reservations

import "time"

type ReservationResponse struct {
	ID          string     `json:"id"`
	BookingRef  string     `json:"booking_ref"`
	UserID      string     `json:"user_id"`
	ClubID      string     `json:"club_id"`
	CourtID     string     `json:"court_id"`
	SlotID      string     `json:"slot_id"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	ClubName    string     `json:"club_name"`
	CourtName   string     `json:"court_name"`
	SlotLabel   string     `json:"slot_label"`
	Price       float64    `json:"price"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type PaginatedReservations struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// BookedOccurrences lists the slot ids already taken on one court+date.
// This is the wizard's availability feed.
type BookedOccurrences struct {
	CourtID string   `json:"court_id"`
	Date    string   `json:"date"`
	SlotIDs []string `json:"slot_ids"`
}
