package courts

import (
	"errors"
	"net/http"

	"padelhub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetCourt(c *gin.Context)
	GetCourtsByClub(c *gin.Context)
	CreateCourt(c *gin.Context)
	UpdateCourt(c *gin.Context)
	DeleteCourt(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetCourt(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	court, err := ctrl.service.GetCourtByID(c.Request.Context(), courtID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrCourtNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Court retrieved successfully", court, nil)
}

func (ctrl *controller) GetCourtsByClub(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("clubId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid club ID", nil, err.Error())
		return
	}

	courtsList, err := ctrl.service.GetCourtsByClub(c.Request.Context(), clubID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Courts retrieved successfully", courtsList, nil)
}

func (ctrl *controller) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	court, err := ctrl.service.CreateCourt(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Court created successfully", court, nil)
}

func (ctrl *controller) UpdateCourt(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	court, err := ctrl.service.UpdateCourt(c.Request.Context(), courtID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrCourtNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Court updated successfully", court, nil)
}

func (ctrl *controller) DeleteCourt(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteCourt(c.Request.Context(), courtID); err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrCourtNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Court deleted successfully", nil, nil)
}
