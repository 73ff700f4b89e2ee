package clubs

type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=255"`
	Description string  `json:"description" binding:"max=2000"`
	Address     string  `json:"address" binding:"max=500"`
	City        string  `json:"city" binding:"required,min=2,max=100"`
	Latitude    float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	LogoURL     string  `json:"logo_url" binding:"omitempty,url"`
	CoverURL    string  `json:"cover_url" binding:"omitempty,url"`
	Amenities   []string `json:"amenities" binding:"omitempty,max=20,dive,min=2,max=50"`
}

type UpdateClubRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Address     *string  `json:"address" binding:"omitempty,max=500"`
	City        *string  `json:"city" binding:"omitempty,min=2,max=100"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	LogoURL     *string  `json:"logo_url" binding:"omitempty,url"`
	CoverURL    *string  `json:"cover_url" binding:"omitempty,url"`
	Amenities   *[]string `json:"amenities" binding:"omitempty,max=20,dive,min=2,max=50"`
}

type ClubListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	City   string `form:"city"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name city created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
