package slots

type SlotResponse struct {
	ID      string  `json:"id"`
	CourtID string  `json:"court_id"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Label   string  `json:"label"`
	Price   float64 `json:"price"`
	Active  bool    `json:"active"`
}

type SlotListResponse struct {
	CourtID string         `json:"court_id"`
	Slots   []SlotResponse `json:"slots"`
	Total   int            `json:"total"`
}
