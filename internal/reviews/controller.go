package reviews

import (
	"errors"
	"net/http"
	"strconv"

	"padelhub/internal/shared/middleware"
	"padelhub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetReviewsByClub(c *gin.Context)
	GetClubRating(c *gin.Context)
	CreateReview(c *gin.Context)
	UpdateReview(c *gin.Context)
	DeleteReview(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	return userUUID, true
}

func (ctrl *controller) GetReviewsByClub(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("clubId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid club ID", nil, err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := ctrl.service.GetReviewsByClub(c.Request.Context(), clubID, page, limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reviews retrieved successfully", result, nil)
}

func (ctrl *controller) GetClubRating(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("clubId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid club ID", nil, err.Error())
		return
	}

	average, count, err := ctrl.service.GetClubRating(c.Request.Context(), clubID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	result := ClubRatingResponse{
		ClubID:        clubID.String(),
		AverageRating: average,
		ReviewCount:   count,
	}

	response.RespondJSON(c, "success", http.StatusOK, "Club rating retrieved successfully", result, nil)
}

func (ctrl *controller) CreateReview(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	review, err := ctrl.service.CreateReview(c.Request.Context(), userUUID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrAlreadyReviewed) {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Review created successfully", review, nil)
}

func (ctrl *controller) UpdateReview(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid review ID", nil, err.Error())
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	review, err := ctrl.service.UpdateReview(c.Request.Context(), userUUID, reviewID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrReviewNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotReviewAuthor):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Review updated successfully", review, nil)
}

func (ctrl *controller) DeleteReview(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid review ID", nil, err.Error())
		return
	}

	role, _ := c.Get("user_role")
	isAdmin := role == middleware.RoleAdmin

	if err := ctrl.service.DeleteReview(c.Request.Context(), userUUID, reviewID, isAdmin); err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrReviewNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotReviewAuthor):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Review deleted successfully", nil, nil)
}
