package slots

type CreateSlotRequest struct {
	CourtID string  `json:"court_id" binding:"required,uuid"`
	From    string  `json:"from" binding:"required,hhmm"`
	To      string  `json:"to" binding:"required,hhmm"`
	Price   float64 `json:"price" binding:"required,gt=0"`
}

type UpdateSlotRequest struct {
	From  *string  `json:"from,omitempty" binding:"omitempty,hhmm"`
	To    *string  `json:"to,omitempty" binding:"omitempty,hhmm"`
	Price *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
}
