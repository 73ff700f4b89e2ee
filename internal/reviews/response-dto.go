package reviews

import "time"

type ReviewResponse struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaginatedReviews struct {
	Reviews    []ReviewResponse `json:"reviews"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type ClubRatingResponse struct {
	ClubID        string  `json:"club_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}
