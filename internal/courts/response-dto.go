package courts

import "time"

type CourtResponse struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id"`
	Name       string    `json:"name"`
	Type       CourtType `json:"type"`
	Surface    string    `json:"surface"`
	MaxPlayers int       `json:"max_players"`
	Position   int       `json:"position"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
