package wizard

type SessionResponse struct {
	SessionID string       `json:"session_id"`
	State     SessionState `json:"state"`
}

type FinalizeResponse struct {
	Payload *ReservationPayload `json:"payload"`
}
