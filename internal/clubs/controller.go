package clubs

import (
	"errors"
	"net/http"

	"padelhub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetClub(c *gin.Context)
	GetAllClubs(c *gin.Context)
	CreateClub(c *gin.Context)
	UpdateClub(c *gin.Context)
	DeleteClub(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetClub(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("clubId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid club ID", nil, err.Error())
		return
	}

	club, err := ctrl.service.GetClubByID(c.Request.Context(), clubID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrClubNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Club retrieved successfully", club, nil)
}

func (ctrl *controller) GetAllClubs(c *gin.Context) {
	var query ClubListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	clubsList, err := ctrl.service.GetAllClubs(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Clubs retrieved successfully", clubsList, nil)
}

func (ctrl *controller) CreateClub(c *gin.Context) {
	var req CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return
	}

	club, err := ctrl.service.CreateClub(c.Request.Context(), userUUID, req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Club created successfully", club, nil)
}

func (ctrl *controller) UpdateClub(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("clubId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid club ID", nil, err.Error())
		return
	}

	var req UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	club, err := ctrl.service.UpdateClub(c.Request.Context(), clubID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrClubNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Club updated successfully", club, nil)
}

func (ctrl *controller) DeleteClub(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("clubId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid club ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteClub(c.Request.Context(), clubID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrClubNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Club deleted successfully", nil, nil)
}
