package courts

type CreateCourtRequest struct {
	ClubID     string `json:"club_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required,min=2,max=255"`
	Type       string `json:"type" binding:"omitempty,oneof=INDOOR OUTDOOR"`
	Surface    string `json:"surface" binding:"max=100"`
	MaxPlayers int    `json:"max_players" binding:"omitempty,min=2,max=8"`
	Position   int    `json:"position" binding:"omitempty,min=0"`
	ImageURL   string `json:"image_url" binding:"omitempty,url"`
}

type UpdateCourtRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=255"`
	Type       *string `json:"type" binding:"omitempty,oneof=INDOOR OUTDOOR"`
	Surface    *string `json:"surface" binding:"omitempty,max=100"`
	MaxPlayers *int    `json:"max_players" binding:"omitempty,min=2,max=8"`
	Position   *int    `json:"position" binding:"omitempty,min=0"`
	ImageURL   *string `json:"image_url" binding:"omitempty,url"`
}
