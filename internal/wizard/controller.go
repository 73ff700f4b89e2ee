package wizard

import (
	"errors"
	"net/http"

	"padelhub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	SelectCourt(c *gin.Context)
	SelectDate(c *gin.Context)
	SelectSlot(c *gin.Context)
	NavigateMonth(c *gin.Context)
	Next(c *gin.Context)
	Back(c *gin.Context)
	Finalize(c *gin.Context)
	MarkResume(c *gin.Context)
}

type controller struct {
	registry *Registry
}

func NewController(registry *Registry) Controller {
	return &controller{registry: registry}
}

func (ctrl *controller) session(c *gin.Context) (*Machine, bool) {
	machine, err := ctrl.registry.Get(c.Param("sessionId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusNotFound, "Wizard session not found", nil, nil)
		return nil, false
	}
	return machine, true
}

func (ctrl *controller) respondState(c *gin.Context, machine *Machine, message string) {
	result := SessionResponse{
		SessionID: c.Param("sessionId"),
		State:     machine.Snapshot(),
	}
	response.RespondJSON(c, "success", http.StatusOK, message, result, nil)
}

func transitionStatus(err error) int {
	switch {
	case errors.Is(err, ErrClubNotFound), errors.Is(err, ErrCourtNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDateOutsideWindow), errors.Is(err, ErrSlotUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrDateRequired), errors.Is(err, ErrWrongStep), errors.Is(err, ErrAtFinalStep):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (ctrl *controller) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	sessionID, machine, err := ctrl.registry.Create(c.Request.Context(), req.ClubID, req.CourtID)
	if err != nil {
		response.RespondJSON(c, "error", transitionStatus(err), err.Error(), nil, nil)
		return
	}

	result := SessionResponse{
		SessionID: sessionID,
		State:     machine.Snapshot(),
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Wizard session created", result, nil)
}

func (ctrl *controller) GetSession(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}
	ctrl.respondState(c, machine, "Wizard session retrieved")
}

func (ctrl *controller) SelectCourt(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	var req SelectCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := machine.SelectCourt(c.Request.Context(), req.CourtID); err != nil {
		response.RespondJSON(c, "error", transitionStatus(err), err.Error(), nil, nil)
		return
	}
	ctrl.respondState(c, machine, "Court selected")
}

func (ctrl *controller) SelectDate(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := machine.SelectDate(c.Request.Context(), req.Date); err != nil {
		response.RespondJSON(c, "error", transitionStatus(err), err.Error(), nil, nil)
		return
	}
	ctrl.respondState(c, machine, "Date selected")
}

func (ctrl *controller) SelectSlot(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := machine.SelectSlot(c.Request.Context(), req.SlotID); err != nil {
		response.RespondJSON(c, "error", transitionStatus(err), err.Error(), nil, nil)
		return
	}
	ctrl.respondState(c, machine, "Slot selected")
}

func (ctrl *controller) NavigateMonth(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	var req NavigateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := machine.NavigateMonth(c.Request.Context(), req.Month); err != nil {
		response.RespondJSON(c, "error", transitionStatus(err), err.Error(), nil, nil)
		return
	}
	ctrl.respondState(c, machine, "Month changed")
}

func (ctrl *controller) Next(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	if err := machine.Next(c.Request.Context()); err != nil {
		response.RespondJSON(c, "error", transitionStatus(err), err.Error(), nil, nil)
		return
	}
	ctrl.respondState(c, machine, "Advanced to next step")
}

func (ctrl *controller) Back(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	if err := machine.Back(c.Request.Context()); err != nil {
		response.RespondJSON(c, "error", transitionStatus(err), err.Error(), nil, nil)
		return
	}
	ctrl.respondState(c, machine, "Returned to previous step")
}

func (ctrl *controller) Finalize(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	payload, finalized := machine.Finalize(c.Request.Context())
	if !finalized {
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Draft is not complete", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation payload ready", FinalizeResponse{Payload: payload}, nil)
}

func (ctrl *controller) MarkResume(c *gin.Context) {
	machine, ok := ctrl.session(c)
	if !ok {
		return
	}

	if err := machine.MarkResume(c.Request.Context()); err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Resume signal recorded", nil, nil)
}
