package wizard

// Step is the wizard's current stage. Confirmation is a separate page, not a
// step of this machine.
type Step string

const (
	StepDetails  Step = "DETAILS"
	StepCalendar Step = "CALENDAR"
	StepSlots    Step = "SLOTS"
)

func (s Step) IsValid() bool {
	switch s {
	case StepDetails, StepCalendar, StepSlots:
		return true
	}
	return false
}

// SlotSnapshot freezes a slot's time range and price at selection time, so a
// later catalog edit cannot retroactively change an in-progress draft.
type SlotSnapshot struct {
	ID    string  `json:"id"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Price float64 `json:"price"`
}

// Draft is the in-progress, not-yet-persisted reservation intent. It is
// written to the draft store on every meaningful change, keyed by
// (ClubID, CourtID), and survives a full navigation away and back.
type Draft struct {
	ClubID     string `json:"club_id"`
	ClubName   string `json:"club_name"`
	ClubLogo   string `json:"club_logo"`
	CourtID    string `json:"court_id"`
	CourtName  string `json:"court_name"`
	CourtImage string `json:"court_image"`

	// PickedDate is a "YYYY-MM-DD" day; nil until the calendar step stores one.
	PickedDate *string `json:"picked_date,omitempty"`
	// PickedSlotID is only meaningful with a non-nil PickedDate.
	PickedSlotID *string       `json:"picked_slot_id,omitempty"`
	PickedSlot   *SlotSnapshot `json:"picked_slot,omitempty"`

	// ReturnTo is the navigation target the confirm page uses to come back.
	ReturnTo string `json:"return_to"`
}

// IsFinalizable reports whether the draft carries everything the confirm step
// needs: club, court, date and a slot snapshot consistent with the picked id.
func (d *Draft) IsFinalizable() bool {
	if d == nil {
		return false
	}
	if d.ClubID == "" || d.CourtID == "" {
		return false
	}
	if d.PickedDate == nil || *d.PickedDate == "" {
		return false
	}
	if d.PickedSlotID == nil || d.PickedSlot == nil {
		return false
	}
	return d.PickedSlot.ID == *d.PickedSlotID
}

// Clone returns an independent copy of the draft.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	if d.PickedDate != nil {
		v := *d.PickedDate
		out.PickedDate = &v
	}
	if d.PickedSlotID != nil {
		v := *d.PickedSlotID
		out.PickedSlotID = &v
	}
	if d.PickedSlot != nil {
		v := *d.PickedSlot
		out.PickedSlot = &v
	}
	return &out
}

// ReservationPayload is the finalized contract handed to the confirm step. It
// must match what CreateReservation expects.
type ReservationPayload struct {
	ClubID        string       `json:"club_id"`
	ClubName      string       `json:"club_name"`
	ClubLogo      string       `json:"club_logo"`
	CourtID       string       `json:"court_id"`
	CourtName     string       `json:"court_name"`
	CourtImage    string       `json:"court_image"`
	PickedDateISO string       `json:"picked_date_iso"`
	Date          string       `json:"date"`
	PickedSlotID  string       `json:"picked_slot_id"`
	PickedSlot    SlotSnapshot `json:"picked_slot"`
	ReturnTo      string       `json:"return_to"`
}
