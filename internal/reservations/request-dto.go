package reservations

// CreateReservationRequest carries the wizard's finalize payload. Display
// fields are trusted for display only; slot price and label are re-read from
// the catalog server-side.
type CreateReservationRequest struct {
	ClubID    string `json:"club_id" binding:"required,uuid"`
	CourtID   string `json:"court_id" binding:"required,uuid"`
	SlotID    string `json:"slot_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required,isodate"`
	ClubName  string `json:"club_name" binding:"max=255"`
	CourtName string `json:"court_name" binding:"max=255"`
	ReturnTo  string `json:"return_to" binding:"max=500"`
}
