package reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"padelhub/internal/shared/middleware"
	"padelhub/internal/shared/utils/response"
	"padelhub/internal/slots"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateReservation(c *gin.Context)
	CancelReservation(c *gin.Context)
	GetReservation(c *gin.Context)
	GetMyReservations(c *gin.Context)
	GetBookedSlots(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, "", false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, "", false
	}
	email, _ := c.Get("user_email")
	emailStr, _ := email.(string)
	return userUUID, emailStr, true
}

func isAdminRequest(c *gin.Context) bool {
	role, _ := c.Get("user_role")
	return role == middleware.RoleAdmin
}

func (ctrl *controller) CreateReservation(c *gin.Context) {
	userUUID, userEmail, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reservation, err := ctrl.service.CreateReservation(c.Request.Context(), userUUID, userEmail, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrOccurrenceBooked):
			statusCode = http.StatusConflict
		case errors.Is(err, slots.ErrSlotNotFound):
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Reservation created successfully", reservation, nil)
}

func (ctrl *controller) CancelReservation(c *gin.Context) {
	userUUID, _, ok := currentUser(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	if err := ctrl.service.CancelReservation(c.Request.Context(), userUUID, reservationID, isAdminRequest(c)); err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrReservationNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotReservationOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrAlreadyCancelled):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation cancelled successfully", nil, nil)
}

func (ctrl *controller) GetReservation(c *gin.Context) {
	userUUID, _, ok := currentUser(c)
	if !ok {
		return
	}

	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	reservation, err := ctrl.service.GetReservationByID(c.Request.Context(), userUUID, reservationID, isAdminRequest(c))
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrReservationNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotReservationOwner):
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation retrieved successfully", reservation, nil)
}

func (ctrl *controller) GetMyReservations(c *gin.Context) {
	userUUID, _, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := ctrl.service.GetUserReservations(c.Request.Context(), userUUID, page, limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservations retrieved successfully", result, nil)
}

// GetBookedSlots serves the booked-occurrence set for one court+date. Public:
// the wizard calls it before any authentication happens.
func (ctrl *controller) GetBookedSlots(c *gin.Context) {
	courtID, err := uuid.Parse(c.Param("courtId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid court ID", nil, err.Error())
		return
	}

	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, err.Error())
		return
	}

	slotIDs, err := ctrl.service.ListBookedSlotIDs(c.Request.Context(), courtID, date)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	result := BookedOccurrences{
		CourtID: courtID.String(),
		Date:    date,
		SlotIDs: slotIDs,
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booked slots retrieved successfully", result, nil)
}
