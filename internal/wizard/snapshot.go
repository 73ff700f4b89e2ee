package wizard

// SessionState is the read view of a wizard session, the shape the HTTP layer
// returns on every call.
type SessionState struct {
	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`

	Club   *ClubInfo   `json:"club,omitempty"`
	Courts []CourtInfo `json:"courts"`

	// Slots is the catalog for the current court, annotated with per-date
	// selectability.
	Slots []SlotView `json:"slots"`

	VisibleMonth string `json:"visible_month"`
	WindowFirst  string `json:"window_first"`
	WindowLast   string `json:"window_last"`

	LoadingAvailability bool `json:"loading_availability"`
	Finalizable         bool `json:"finalizable"`
}

// SlotView is a catalog slot plus its availability for the picked date.
type SlotView struct {
	SlotInfo
	Label string `json:"label"`
	// Booked is only meaningful when a date is picked.
	Booked     bool `json:"booked"`
	Selectable bool `json:"selectable"`
}

// Snapshot renders the machine's current state.
func (m *Machine) Snapshot() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	first, last := WindowBounds(m.deps.Clock())

	catalog := m.catalog[m.draft.CourtID]
	slotViews := make([]SlotView, len(catalog))
	for i, slot := range catalog {
		_, booked := m.booked[slot.ID]
		slotViews[i] = SlotView{
			SlotInfo:   slot,
			Label:      SlotLabel(slot.From, slot.To),
			Booked:     booked,
			Selectable: slot.Active && !booked,
		}
	}

	return SessionState{
		Step:                m.step,
		Draft:               *m.draft.Clone(),
		Club:                m.club,
		Courts:              m.courts,
		Slots:               slotViews,
		VisibleMonth:        m.visibleMonth,
		WindowFirst:         FormatISODay(first),
		WindowLast:          FormatISODay(last),
		LoadingAvailability: m.loadingAvailability,
		Finalizable:         m.draft.IsFinalizable(),
	}
}
