package wizard

type CreateSessionRequest struct {
	ClubID  string `json:"club_id" binding:"required,uuid"`
	CourtID string `json:"court_id" binding:"required,uuid"`
}

type SelectCourtRequest struct {
	CourtID string `json:"court_id" binding:"required,uuid"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required,isodate"`
}

type SelectSlotRequest struct {
	SlotID string `json:"slot_id" binding:"required,uuid"`
}

type NavigateMonthRequest struct {
	Month string `json:"month" binding:"required,yearmonth"`
}
