package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"padelhub/pkg/logger"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrClubNotFound is returned when the session's club does not exist.
	ErrClubNotFound = errors.New("club not found")
	// ErrCourtNotFound is returned when a selected court is not part of the
	// session's club.
	ErrCourtNotFound = errors.New("court not found in this club")
	// ErrDateOutsideWindow is returned when a picked date falls outside the
	// rolling booking window.
	ErrDateOutsideWindow = errors.New("date is outside the booking window")
	// ErrDateRequired blocks the calendar -> slots transition without a date.
	ErrDateRequired = errors.New("pick a date first")
	// ErrSlotUnavailable is returned when a slot is inactive or already booked
	// for the picked date. The pick is refused and state is unchanged.
	ErrSlotUnavailable = errors.New("slot is not available for this date")
	// ErrWrongStep is returned when an operation is invoked outside the step
	// it belongs to.
	ErrWrongStep = errors.New("operation not allowed in current step")
	// ErrAtFinalStep is returned by Next on the slots step; the flow continues
	// on the external confirm page, not here.
	ErrAtFinalStep = errors.New("already at the final step")
)

// ClubInfo / CourtInfo / SlotInfo are the collaborator views the machine
// works with; adapters map the domain services onto them.

type ClubInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

type CourtInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type SlotInfo struct {
	ID     string  `json:"id"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

type ClubService interface {
	GetClub(ctx context.Context, clubID string) (*ClubInfo, error)
}

type CourtService interface {
	ListCourts(ctx context.Context, clubID string) ([]CourtInfo, error)
}

type SlotService interface {
	ListSlots(ctx context.Context, courtID string) ([]SlotInfo, error)
}

type AvailabilityService interface {
	ListBookedOccurrences(ctx context.Context, courtID, dateISO string) ([]string, error)
}

// Deps bundles the machine's collaborators.
type Deps struct {
	Drafts       DraftStore
	Signals      SignalStore
	Clubs        ClubService
	Courts       CourtService
	Slots        SlotService
	Availability AvailabilityService

	// Clock is swappable for window tests; defaults to time.Now.
	Clock func() time.Time
	// Spawn runs availability loads; defaults to `go fn()`. Tests inject an
	// inline runner to make loads deterministic.
	Spawn func(fn func())

	Logger *logger.Logger
}

func (d *Deps) fill() {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Spawn == nil {
		d.Spawn = func(fn func()) { go fn() }
	}
	if d.Logger == nil {
		d.Logger = logger.GetDefault()
	}
}

// Machine drives one booking wizard session: court -> date -> slot, with the
// draft persisted on every meaningful change. All exported methods are safe
// for concurrent use; state is guarded by a single mutex.
type Machine struct {
	deps Deps

	mu    sync.Mutex
	step  Step
	draft Draft

	club   *ClubInfo
	courts []CourtInfo

	// catalog caches the slot list per court; fetched once per court.
	catalog map[string][]SlotInfo
	// booked is the occurrence set for the current (court, date).
	booked map[string]struct{}

	// visibleMonth is "YYYY-MM"; month navigation never changes step.
	visibleMonth string

	loadingAvailability bool

	// fetchSeq orders availability loads. A response only applies if it
	// carries the latest sequence and its (court, date) still matches the
	// draft, so a slow superseded request cannot clobber fresher state.
	fetchSeq uint64
}

// NewMachine builds a machine for one (club, court) page scope. Start must be
// called before any transition.
func NewMachine(deps Deps) *Machine {
	deps.fill()
	return &Machine{
		deps:    deps,
		step:    StepDetails,
		catalog: make(map[string][]SlotInfo),
		booked:  make(map[string]struct{}),
	}
}

// Start loads the club and its courts concurrently, then runs the restoration
// protocol against the draft store and resume signal.
func (m *Machine) Start(ctx context.Context, clubID, courtID string) error {
	var (
		club   *ClubInfo
		courts []CourtInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := m.deps.Clubs.GetClub(gctx, clubID)
		if err != nil {
			return err
		}
		club = c
		return nil
	})
	g.Go(func() error {
		// A club without courts is an empty page, not an error
		list, err := m.deps.Courts.ListCourts(gctx, clubID)
		if err != nil {
			return err
		}
		courts = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	court, ok := findCourt(courts, courtID)
	if !ok {
		return ErrCourtNotFound
	}

	m.mu.Lock()
	m.club = club
	m.courts = courts
	m.draft = Draft{
		ClubID:     club.ID,
		ClubName:   club.Name,
		ClubLogo:   club.LogoURL,
		CourtID:    court.ID,
		CourtName:  court.Name,
		CourtImage: court.ImageURL,
		ReturnTo:   "/clubs/" + club.ID + "/courts/" + court.ID,
	}
	m.step = StepDetails
	m.visibleMonth = m.deps.Clock().Format("2006-01")
	m.mu.Unlock()

	m.restore(ctx, clubID, courtID)
	m.ensureCatalog(ctx, courtID)
	m.persist(ctx)

	return nil
}

// restore applies the stored draft, if its scope matches, and the one-shot
// resume signal.
func (m *Machine) restore(ctx context.Context, clubID, courtID string) {
	stored, err := m.deps.Drafts.Load(ctx, clubID, courtID)
	if err != nil {
		m.deps.Logger.WarnContext(ctx, "failed to load stored draft", "club_id", clubID, "court_id", courtID, "error", err)
		stored = nil
	}

	resume, err := m.deps.Signals.TakeResume(ctx, clubID, courtID)
	if err != nil {
		m.deps.Logger.WarnContext(ctx, "failed to take resume signal", "club_id", clubID, "court_id", courtID, "error", err)
		resume = false
	}

	m.mu.Lock()

	stale := stored != nil && (stored.ClubID != m.draft.ClubID || stored.CourtID != m.draft.CourtID)
	if stored == nil || stale {
		// Nothing to resume; a mismatched draft is discarded silently
		m.step = StepDetails
		m.mu.Unlock()
		if stale {
			m.deps.Logger.LogDraftRestored(ctx, clubID, courtID, string(StepDetails), true)
		}
		return
	}

	m.draft.PickedDate = stored.PickedDate
	m.draft.PickedSlotID = stored.PickedSlotID
	m.draft.PickedSlot = stored.PickedSlot
	if stored.ReturnTo != "" {
		m.draft.ReturnTo = stored.ReturnTo
	}

	switch {
	case m.draft.PickedSlotID != nil:
		m.step = StepSlots
	case m.draft.PickedDate != nil:
		m.step = StepCalendar
	default:
		m.step = StepDetails
	}
	if resume {
		m.step = StepSlots
	}

	step := m.step
	date := m.draft.PickedDate
	m.mu.Unlock()

	m.deps.Logger.LogDraftRestored(ctx, clubID, courtID, string(step), false)

	if date != nil {
		m.loadAvailability(ctx, courtID, *date)
	}
}

// SelectCourt switches the session to another court of the same club. Picks
// reset and the flow returns to the details step.
func (m *Machine) SelectCourt(ctx context.Context, courtID string) error {
	m.mu.Lock()
	court, ok := findCourt(m.courts, courtID)
	if !ok {
		m.mu.Unlock()
		return ErrCourtNotFound
	}

	m.draft.CourtID = court.ID
	m.draft.CourtName = court.Name
	m.draft.CourtImage = court.ImageURL
	m.draft.PickedDate = nil
	m.draft.PickedSlotID = nil
	m.draft.PickedSlot = nil
	m.draft.ReturnTo = "/clubs/" + m.draft.ClubID + "/courts/" + court.ID
	m.step = StepDetails
	m.booked = make(map[string]struct{})
	m.fetchSeq++ // orphan any in-flight availability load
	m.loadingAvailability = false
	m.mu.Unlock()

	m.ensureCatalog(ctx, courtID)
	m.persist(ctx)
	return nil
}

// Next advances details -> calendar unconditionally and calendar -> slots
// when a date is picked.
func (m *Machine) Next(ctx context.Context) error {
	m.mu.Lock()
	switch m.step {
	case StepDetails:
		m.step = StepCalendar
		m.mu.Unlock()
		return nil
	case StepCalendar:
		if m.draft.PickedDate == nil {
			m.mu.Unlock()
			return ErrDateRequired
		}
		m.step = StepSlots
		date := *m.draft.PickedDate
		courtID := m.draft.CourtID
		m.mu.Unlock()
		m.ensureCatalog(ctx, courtID)
		m.loadAvailability(ctx, courtID, date)
		return nil
	default:
		m.mu.Unlock()
		return ErrAtFinalStep
	}
}

// Back walks one step toward details. Leaving slots clears the picked slot
// but keeps the date; leaving calendar keeps the date too.
func (m *Machine) Back(ctx context.Context) error {
	m.mu.Lock()
	switch m.step {
	case StepSlots:
		m.draft.PickedSlotID = nil
		m.draft.PickedSlot = nil
		m.step = StepCalendar
		m.mu.Unlock()
		m.persist(ctx)
		return nil
	case StepCalendar:
		m.step = StepDetails
		m.mu.Unlock()
		return nil
	default:
		m.mu.Unlock()
		return nil
	}
}

// SelectDate stores a calendar day. Dates outside the rolling window are
// rejected with no state change. A new date clears any picked slot.
func (m *Machine) SelectDate(ctx context.Context, dateISO string) error {
	day, err := ParseISODay(dateISO)
	if err != nil {
		return err
	}

	m.mu.Lock()
	// Date picks are allowed while viewing slots too; the occurrence set is
	// re-fetched for the new date either way.
	if m.step != StepCalendar && m.step != StepSlots {
		m.mu.Unlock()
		return ErrWrongStep
	}
	if !IsSelectable(m.deps.Clock(), day) {
		m.mu.Unlock()
		return ErrDateOutsideWindow
	}

	normalized := FormatISODay(day)
	m.draft.PickedDate = &normalized
	m.draft.PickedSlotID = nil
	m.draft.PickedSlot = nil
	// The old date's booked set must not judge picks on the new one.
	m.booked = make(map[string]struct{})
	courtID := m.draft.CourtID
	m.mu.Unlock()

	m.persist(ctx)
	m.loadAvailability(ctx, courtID, normalized)
	return nil
}

// NavigateMonth changes the visible calendar month. The step is unchanged,
// but the picked date is re-validated against the now-anchored window and
// cleared, along with slot and derived state, if it has gone stale.
func (m *Machine) NavigateMonth(ctx context.Context, monthISO string) error {
	if _, err := time.ParseInLocation("2006-01", monthISO, time.Local); err != nil {
		return err
	}

	m.mu.Lock()
	if m.step != StepCalendar {
		m.mu.Unlock()
		return ErrWrongStep
	}
	m.visibleMonth = monthISO

	cleared := false
	if m.draft.PickedDate != nil {
		day, err := ParseISODay(*m.draft.PickedDate)
		if err != nil || !IsSelectable(m.deps.Clock(), day) {
			m.draft.PickedDate = nil
			m.draft.PickedSlotID = nil
			m.draft.PickedSlot = nil
			m.booked = make(map[string]struct{})
			m.fetchSeq++
			m.loadingAvailability = false
			cleared = true
		}
	}
	m.mu.Unlock()

	if cleared {
		m.persist(ctx)
	}
	return nil
}

// SelectSlot stores a slot pick with its snapshot. Inactive or booked slots
// are refused and the previous pick stands.
func (m *Machine) SelectSlot(ctx context.Context, slotID string) error {
	m.mu.Lock()
	if m.step != StepSlots {
		m.mu.Unlock()
		return ErrWrongStep
	}

	var picked *SlotInfo
	for i := range m.catalog[m.draft.CourtID] {
		if m.catalog[m.draft.CourtID][i].ID == slotID {
			picked = &m.catalog[m.draft.CourtID][i]
			break
		}
	}
	if picked == nil || !picked.Active {
		m.mu.Unlock()
		return ErrSlotUnavailable
	}
	if _, taken := m.booked[slotID]; taken {
		m.mu.Unlock()
		return ErrSlotUnavailable
	}

	id := picked.ID
	m.draft.PickedSlotID = &id
	m.draft.PickedSlot = &SlotSnapshot{
		ID:    picked.ID,
		From:  picked.From,
		To:    picked.To,
		Price: picked.Price,
	}
	m.mu.Unlock()

	m.persist(ctx)
	return nil
}

// Finalize produces the reservation payload for the confirm step. It returns
// ok=false, with no state change, while the draft is incomplete.
func (m *Machine) Finalize(ctx context.Context) (*ReservationPayload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.draft.IsFinalizable() {
		return nil, false
	}

	day, err := ParseISODay(*m.draft.PickedDate)
	if err != nil {
		return nil, false
	}

	return &ReservationPayload{
		ClubID:        m.draft.ClubID,
		ClubName:      m.draft.ClubName,
		ClubLogo:      m.draft.ClubLogo,
		CourtID:       m.draft.CourtID,
		CourtName:     m.draft.CourtName,
		CourtImage:    m.draft.CourtImage,
		PickedDateISO: ISODateTime(day),
		Date:          *m.draft.PickedDate,
		PickedSlotID:  *m.draft.PickedSlotID,
		PickedSlot:    *m.draft.PickedSlot,
		ReturnTo:      m.draft.ReturnTo,
	}, true
}

// MarkResume records the confirm page's back action so the next restoration
// lands directly on the slots step.
func (m *Machine) MarkResume(ctx context.Context) error {
	m.mu.Lock()
	clubID, courtID := m.draft.ClubID, m.draft.CourtID
	m.mu.Unlock()
	return m.deps.Signals.SetResume(ctx, clubID, courtID)
}

// persist writes the full draft snapshot to the store, overwriting the
// previous value for the scope.
func (m *Machine) persist(ctx context.Context) {
	m.mu.Lock()
	clubID, courtID := m.draft.ClubID, m.draft.CourtID
	snapshot := m.draft.Clone()
	m.mu.Unlock()

	if err := m.deps.Drafts.Save(ctx, clubID, courtID, snapshot); err != nil {
		m.deps.Logger.WarnContext(ctx, "failed to persist draft", "club_id", clubID, "court_id", courtID, "error", err)
	}
}

// ensureCatalog fetches the slot catalog for a court once and caches it. A
// fetch failure degrades to an empty catalog.
func (m *Machine) ensureCatalog(ctx context.Context, courtID string) {
	m.mu.Lock()
	if _, ok := m.catalog[courtID]; ok {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	slotsList, err := m.deps.Slots.ListSlots(ctx, courtID)
	if err != nil {
		m.deps.Logger.LogAvailabilityDegraded(ctx, courtID, "", err)
		slotsList = nil
	}

	m.mu.Lock()
	m.catalog[courtID] = slotsList
	m.mu.Unlock()
}

// loadAvailability kicks off an asynchronous booked-occurrences fetch for
// (courtID, dateISO). There is no cancellation of in-flight fetches; a
// superseded response is discarded by the sequence check in apply.
func (m *Machine) loadAvailability(ctx context.Context, courtID, dateISO string) {
	m.mu.Lock()
	m.fetchSeq++
	seq := m.fetchSeq
	m.loadingAvailability = true
	m.mu.Unlock()

	m.deps.Spawn(func() {
		booked, err := m.deps.Availability.ListBookedOccurrences(ctx, courtID, dateISO)
		if err != nil {
			// Degrade open: show nothing as booked rather than block the
			// page. CreateReservation re-checks server-side.
			m.deps.Logger.LogAvailabilityDegraded(ctx, courtID, dateISO, err)
			booked = nil
		}
		m.applyAvailability(ctx, seq, courtID, dateISO, booked)
	})
}

// applyAvailability installs a fetch result unless a newer fetch has been
// issued or the draft has moved to another (court, date) in the meantime.
func (m *Machine) applyAvailability(ctx context.Context, seq uint64, courtID, dateISO string, booked []string) {
	m.mu.Lock()
	if seq != m.fetchSeq {
		m.mu.Unlock()
		m.deps.Logger.LogStaleResponseDiscarded(ctx, courtID, dateISO)
		return
	}
	if m.draft.CourtID != courtID || m.draft.PickedDate == nil || *m.draft.PickedDate != dateISO {
		// Latest fetch, but the draft moved on; nothing else is outstanding.
		m.loadingAvailability = false
		m.mu.Unlock()
		m.deps.Logger.LogStaleResponseDiscarded(ctx, courtID, dateISO)
		return
	}

	set := make(map[string]struct{}, len(booked))
	for _, id := range booked {
		set[id] = struct{}{}
	}
	m.booked = set
	m.loadingAvailability = false
	m.mu.Unlock()
}

func findCourt(courts []CourtInfo, courtID string) (CourtInfo, bool) {
	for _, c := range courts {
		if c.ID == courtID {
			return c, true
		}
	}
	return CourtInfo{}, false
}
