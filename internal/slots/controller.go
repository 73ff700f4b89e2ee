package slots

import (
	"errors"
	"net/http"

	"padelhub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetSlotsByCourt(c *gin.Context)
	CreateSlot(c *gin.Context)
	UpdateSlot(c *gin.Context)
	DeactivateSlot(c *gin.Context)
	ActivateSlot(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetSlotsByCourt(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetSlotsByCourt(c.Request.Context(), courtID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Slots retrieved successfully", result, nil)
}

func (ctrl *controller) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	slot, err := ctrl.service.CreateSlot(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Slot created successfully", slot, nil)
}

func (ctrl *controller) UpdateSlot(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid slot ID", nil, err.Error())
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	slot, err := ctrl.service.UpdateSlot(c.Request.Context(), slotID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrSlotNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Slot updated successfully", slot, nil)
}

func (ctrl *controller) DeactivateSlot(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid slot ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeactivateSlot(c.Request.Context(), slotID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrSlotNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Slot deactivated successfully", nil, nil)
}

func (ctrl *controller) ActivateSlot(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid slot ID", nil, err.Error())
		return
	}

	if err := ctrl.service.ActivateSlot(c.Request.Context(), slotID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrSlotNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Slot activated successfully", nil, nil)
}
