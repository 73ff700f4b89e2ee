package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements every collaborator interface over fixtures.
type fakeBackend struct {
	mu sync.Mutex

	club    *ClubInfo
	clubErr error

	courts    []CourtInfo
	courtsErr error

	slots     map[string][]SlotInfo
	slotsErr  error
	slotCalls map[string]int

	booked    map[string][]string // courtID + "|" + date
	bookedErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		club: &ClubInfo{ID: "club-1", Name: "Center Padel", LogoURL: "/img/center.png"},
		courts: []CourtInfo{
			{ID: "court-1", Name: "Court 1", ImageURL: "/img/court1.jpg"},
			{ID: "court-2", Name: "Court 2", ImageURL: "/img/court2.jpg"},
		},
		slots: map[string][]SlotInfo{
			"court-1": {
				{ID: "s1", From: "08:00", To: "09:00", Price: 30, Active: true},
				{ID: "s2", From: "10:00", To: "11:00", Price: 30, Active: false},
				{ID: "s3", From: "18:00", To: "19:00", Price: 35, Active: true},
			},
			"court-2": {
				{ID: "s4", From: "09:00", To: "10:00", Price: 25, Active: true},
			},
		},
		slotCalls: make(map[string]int),
		booked: map[string][]string{
			"court-1|2025-06-10": {"s1"},
		},
	}
}

func (f *fakeBackend) GetClub(_ context.Context, clubID string) (*ClubInfo, error) {
	if f.clubErr != nil {
		return nil, f.clubErr
	}
	if f.club == nil || f.club.ID != clubID {
		return nil, ErrClubNotFound
	}
	return f.club, nil
}

func (f *fakeBackend) ListCourts(_ context.Context, _ string) ([]CourtInfo, error) {
	if f.courtsErr != nil {
		return nil, f.courtsErr
	}
	return f.courts, nil
}

func (f *fakeBackend) ListSlots(_ context.Context, courtID string) ([]SlotInfo, error) {
	f.mu.Lock()
	f.slotCalls[courtID]++
	f.mu.Unlock()
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return f.slots[courtID], nil
}

func (f *fakeBackend) ListBookedOccurrences(_ context.Context, courtID, dateISO string) ([]string, error) {
	if f.bookedErr != nil {
		return nil, f.bookedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booked[courtID+"|"+dateISO], nil
}

type testEnv struct {
	backend *fakeBackend
	drafts  *MemoryDraftStore
	signals *MemorySignalStore
	now     time.Time
	deps    Deps
}

func newTestEnv() *testEnv {
	env := &testEnv{
		backend: newFakeBackend(),
		drafts:  NewMemoryDraftStore(),
		signals: NewMemorySignalStore(),
		now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local),
	}
	env.deps = Deps{
		Drafts:       env.drafts,
		Signals:      env.signals,
		Clubs:        env.backend,
		Courts:       env.backend,
		Slots:        env.backend,
		Availability: env.backend,
		Clock:        func() time.Time { return env.now },
		Spawn:        func(fn func()) { fn() },
	}
	return env
}

func (env *testEnv) start(t *testing.T, clubID, courtID string) *Machine {
	t.Helper()
	m := NewMachine(env.deps)
	require.NoError(t, m.Start(context.Background(), clubID, courtID))
	return m
}

// toSlots walks a fresh machine to the slots step with the given date picked.
func toSlots(t *testing.T, m *Machine, date string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, m.Next(ctx)) // details -> calendar
	require.NoError(t, m.SelectDate(ctx, date))
	require.NoError(t, m.Next(ctx)) // calendar -> slots
}

func TestStartInitialState(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")

	state := m.Snapshot()
	assert.Equal(t, StepDetails, state.Step)
	assert.Equal(t, "club-1", state.Draft.ClubID)
	assert.Equal(t, "Center Padel", state.Draft.ClubName)
	assert.Equal(t, "court-1", state.Draft.CourtID)
	assert.Equal(t, "Court 1", state.Draft.CourtName)
	assert.Nil(t, state.Draft.PickedDate)
	assert.Nil(t, state.Draft.PickedSlotID)
	assert.Len(t, state.Courts, 2)
	assert.False(t, state.Finalizable)

	// The fresh draft is persisted immediately
	stored, err := env.drafts.Load(context.Background(), "club-1", "court-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "court-1", stored.CourtID)
}

func TestStartUnknownClub(t *testing.T) {
	env := newTestEnv()
	m := NewMachine(env.deps)
	err := m.Start(context.Background(), "club-404", "court-1")
	assert.ErrorIs(t, err, ErrClubNotFound)
}

func TestStartUnknownCourt(t *testing.T) {
	env := newTestEnv()
	m := NewMachine(env.deps)
	err := m.Start(context.Background(), "club-1", "court-404")
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestSelectCourtResetsPicksAndStep(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	toSlots(t, m, "2025-06-05")
	require.NoError(t, m.SelectSlot(context.Background(), "s3"))

	require.NoError(t, m.SelectCourt(context.Background(), "court-2"))

	state := m.Snapshot()
	assert.Equal(t, StepDetails, state.Step)
	assert.Equal(t, "court-2", state.Draft.CourtID)
	assert.Equal(t, "Court 2", state.Draft.CourtName)
	assert.Nil(t, state.Draft.PickedDate)
	assert.Nil(t, state.Draft.PickedSlotID)
	assert.Nil(t, state.Draft.PickedSlot)
}

func TestSelectCourtUnknownRefused(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	err := m.SelectCourt(context.Background(), "court-404")
	assert.ErrorIs(t, err, ErrCourtNotFound)
	assert.Equal(t, "court-1", m.Snapshot().Draft.CourtID)
}

func TestSelectDateClearsSlotKeepsDate(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	toSlots(t, m, "2025-06-05")
	require.NoError(t, m.SelectSlot(context.Background(), "s3"))

	require.NoError(t, m.SelectDate(context.Background(), "2025-06-06"))

	state := m.Snapshot()
	require.NotNil(t, state.Draft.PickedDate)
	assert.Equal(t, "2025-06-06", *state.Draft.PickedDate)
	assert.Nil(t, state.Draft.PickedSlotID)
	assert.Nil(t, state.Draft.PickedSlot)
}

func TestSelectDateWindow(t *testing.T) {
	env := newTestEnv() // today = 2025-06-01
	m := env.start(t, "club-1", "court-1")
	require.NoError(t, m.Next(context.Background()))

	// Within the window
	require.NoError(t, m.SelectDate(context.Background(), "2025-06-10"))

	// Outside the window: rejected with no state change
	err := m.SelectDate(context.Background(), "2025-06-20")
	assert.ErrorIs(t, err, ErrDateOutsideWindow)
	state := m.Snapshot()
	require.NotNil(t, state.Draft.PickedDate)
	assert.Equal(t, "2025-06-10", *state.Draft.PickedDate)

	// Boundary days
	require.NoError(t, m.SelectDate(context.Background(), "2025-06-01"))
	require.NoError(t, m.SelectDate(context.Background(), "2025-06-16"))
	assert.ErrorIs(t, m.SelectDate(context.Background(), "2025-05-31"), ErrDateOutsideWindow)
	assert.ErrorIs(t, m.SelectDate(context.Background(), "2025-06-17"), ErrDateOutsideWindow)
}

func TestNextFromCalendarRequiresDate(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	require.NoError(t, m.Next(context.Background()))
	assert.ErrorIs(t, m.Next(context.Background()), ErrDateRequired)
	assert.Equal(t, StepCalendar, m.Snapshot().Step)
}

func TestSlotSelectability(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	toSlots(t, m, "2025-06-10") // s1 booked on this date

	ctx := context.Background()

	// Booked slot: refused, pick unchanged
	err := m.SelectSlot(ctx, "s1")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, m.Snapshot().Draft.PickedSlotID)

	// Inactive slot: refused
	assert.ErrorIs(t, m.SelectSlot(ctx, "s2"), ErrSlotUnavailable)

	// Unknown slot: refused
	assert.ErrorIs(t, m.SelectSlot(ctx, "s99"), ErrSlotUnavailable)

	// Active and unbooked: stored with snapshot
	require.NoError(t, m.SelectSlot(ctx, "s3"))
	state := m.Snapshot()
	require.NotNil(t, state.Draft.PickedSlotID)
	assert.Equal(t, "s3", *state.Draft.PickedSlotID)
	assert.Equal(t, &SlotSnapshot{ID: "s3", From: "18:00", To: "19:00", Price: 35}, state.Draft.PickedSlot)

	// The snapshot view agrees
	for _, sv := range state.Slots {
		switch sv.ID {
		case "s1":
			assert.True(t, sv.Booked)
			assert.False(t, sv.Selectable)
		case "s2":
			assert.False(t, sv.Booked)
			assert.False(t, sv.Selectable)
		case "s3":
			assert.True(t, sv.Selectable)
			assert.Equal(t, "18:00 – 19:00", sv.Label)
		}
	}
}

func TestSlotSnapshotSurvivesCatalogEdit(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	toSlots(t, m, "2025-06-05")
	require.NoError(t, m.SelectSlot(context.Background(), "s3"))

	// A later catalog price change must not touch the in-progress draft
	env.backend.mu.Lock()
	env.backend.slots["court-1"][2].Price = 99
	env.backend.mu.Unlock()

	payload, ok := m.Finalize(context.Background())
	require.True(t, ok)
	assert.Equal(t, 35.0, payload.PickedSlot.Price)
}

func TestBackFromSlotsClearsSlotKeepsDate(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	toSlots(t, m, "2025-06-05")
	require.NoError(t, m.SelectSlot(context.Background(), "s3"))

	require.NoError(t, m.Back(context.Background()))

	state := m.Snapshot()
	assert.Equal(t, StepCalendar, state.Step)
	require.NotNil(t, state.Draft.PickedDate)
	assert.Equal(t, "2025-06-05", *state.Draft.PickedDate)
	assert.Nil(t, state.Draft.PickedSlotID)

	// Back from calendar keeps the date too
	require.NoError(t, m.Back(context.Background()))
	state = m.Snapshot()
	assert.Equal(t, StepDetails, state.Step)
	assert.Equal(t, "2025-06-05", *state.Draft.PickedDate)
}

func TestRestoreMismatchedScopeDiscarded(t *testing.T) {
	env := newTestEnv()
	date := "2025-06-10"
	slotID := "s1"
	// A draft for another court stored under this scope key
	require.NoError(t, env.drafts.Save(context.Background(), "club-1", "court-2", &Draft{
		ClubID:       "club-1",
		CourtID:      "court-1",
		PickedDate:   &date,
		PickedSlotID: &slotID,
		PickedSlot:   &SlotSnapshot{ID: "s1", From: "08:00", To: "09:00", Price: 30},
	}))

	m := env.start(t, "club-1", "court-2")

	state := m.Snapshot()
	assert.Equal(t, StepDetails, state.Step)
	assert.Nil(t, state.Draft.PickedDate)
	assert.Nil(t, state.Draft.PickedSlotID)
}

func TestRestoreMatchingDraftResumesAtSlots(t *testing.T) {
	env := newTestEnv()
	date := "2025-06-10"
	slotID := "s3"
	require.NoError(t, env.drafts.Save(context.Background(), "club-1", "court-1", &Draft{
		ClubID:       "club-1",
		CourtID:      "court-1",
		PickedDate:   &date,
		PickedSlotID: &slotID,
		PickedSlot:   &SlotSnapshot{ID: "s3", From: "18:00", To: "19:00", Price: 35},
	}))

	m := env.start(t, "club-1", "court-1")

	state := m.Snapshot()
	assert.Equal(t, StepSlots, state.Step)
	require.NotNil(t, state.Draft.PickedDate)
	assert.Equal(t, "2025-06-10", *state.Draft.PickedDate)
	require.NotNil(t, state.Draft.PickedSlotID)
	assert.Equal(t, "s3", *state.Draft.PickedSlotID)

	// Availability was re-fetched for the restored date
	for _, sv := range state.Slots {
		if sv.ID == "s1" {
			assert.True(t, sv.Booked)
		}
	}
}

func TestRestoreDateOnlyResumesAtCalendar(t *testing.T) {
	env := newTestEnv()
	date := "2025-06-10"
	require.NoError(t, env.drafts.Save(context.Background(), "club-1", "court-1", &Draft{
		ClubID:     "club-1",
		CourtID:    "court-1",
		PickedDate: &date,
	}))

	m := env.start(t, "club-1", "court-1")
	assert.Equal(t, StepCalendar, m.Snapshot().Step)
}

func TestResumeSignalOverridesStepAndIsConsumed(t *testing.T) {
	env := newTestEnv()
	date := "2025-06-10"
	require.NoError(t, env.drafts.Save(context.Background(), "club-1", "court-1", &Draft{
		ClubID:     "club-1",
		CourtID:    "court-1",
		PickedDate: &date,
	}))
	require.NoError(t, env.signals.SetResume(context.Background(), "club-1", "court-1"))

	// Signal bumps the computed step (calendar) to slots
	m := env.start(t, "club-1", "court-1")
	assert.Equal(t, StepSlots, m.Snapshot().Step)

	// A second restoration (page refresh) must not replay it
	m2 := env.start(t, "club-1", "court-1")
	assert.Equal(t, StepCalendar, m2.Snapshot().Step)
}

func TestFinalizeRefusedWhileIncomplete(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()

	before := m.Snapshot()
	payload, ok := m.Finalize(ctx)
	assert.False(t, ok)
	assert.Nil(t, payload)
	assert.Equal(t, before, m.Snapshot())

	// Date but no slot: still refused
	toSlots(t, m, "2025-06-05")
	payload, ok = m.Finalize(ctx)
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestFinalizePayloadVerbatim(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()

	require.NoError(t, m.SelectCourt(ctx, "court-2"))
	toSlots(t, m, "2025-06-10")
	require.NoError(t, m.SelectSlot(ctx, "s4"))

	payload, ok := m.Finalize(ctx)
	require.True(t, ok)
	assert.Equal(t, "club-1", payload.ClubID)
	assert.Equal(t, "Center Padel", payload.ClubName)
	assert.Equal(t, "/img/center.png", payload.ClubLogo)
	assert.Equal(t, "court-2", payload.CourtID)
	assert.Equal(t, "Court 2", payload.CourtName)
	assert.Equal(t, "/img/court2.jpg", payload.CourtImage)
	assert.Equal(t, "2025-06-10", payload.Date)
	assert.Equal(t, "s4", payload.PickedSlotID)
	assert.Equal(t, SlotSnapshot{ID: "s4", From: "09:00", To: "10:00", Price: 25}, payload.PickedSlot)
	assert.Equal(t, "/clubs/club-1/courts/court-2", payload.ReturnTo)

	parsed, err := time.Parse(time.RFC3339, payload.PickedDateISO)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", FormatISODay(parsed))
}

func TestStaleAvailabilityResponseDiscarded(t *testing.T) {
	env := newTestEnv()
	env.backend.booked["court-1|2025-06-05"] = []string{"s1"}
	env.backend.booked["court-1|2025-06-06"] = []string{"s3"}

	// Defer spawned loads so they can be completed out of order
	var pending []func()
	env.deps.Spawn = func(fn func()) { pending = append(pending, fn) }

	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()
	require.NoError(t, m.Next(ctx))
	require.NoError(t, m.SelectDate(ctx, "2025-06-05"))
	require.NoError(t, m.SelectDate(ctx, "2025-06-06"))
	require.NoError(t, m.Next(ctx))

	// Newest request resolves first; the superseded one lands late
	require.GreaterOrEqual(t, len(pending), 2)
	for i := len(pending) - 1; i >= 0; i-- {
		pending[i]()
	}

	state := m.Snapshot()
	bookedByID := map[string]bool{}
	for _, sv := range state.Slots {
		bookedByID[sv.ID] = sv.Booked
	}
	assert.True(t, bookedByID["s3"], "newer date's booked set must win")
	assert.False(t, bookedByID["s1"], "stale response must not clobber fresher state")
}

func TestAvailabilityFetchFailureDegradesOpen(t *testing.T) {
	env := newTestEnv()
	env.backend.bookedErr = errors.New("availability service down")

	m := env.start(t, "club-1", "court-1")
	toSlots(t, m, "2025-06-10")

	// Nothing marked booked, no error surfaced
	state := m.Snapshot()
	for _, sv := range state.Slots {
		assert.False(t, sv.Booked)
	}
	require.NoError(t, m.SelectSlot(context.Background(), "s1"))
}

func TestCatalogFetchFailureDegradesOpen(t *testing.T) {
	env := newTestEnv()
	env.backend.slotsErr = errors.New("catalog service down")

	m := env.start(t, "club-1", "court-1")
	toSlots(t, m, "2025-06-05")

	state := m.Snapshot()
	assert.Empty(t, state.Slots)
	assert.ErrorIs(t, m.SelectSlot(context.Background(), "s1"), ErrSlotUnavailable)
}

func TestCatalogFetchedOncePerCourt(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()

	toSlots(t, m, "2025-06-05")
	require.NoError(t, m.Back(ctx))
	require.NoError(t, m.Next(ctx))

	env.backend.mu.Lock()
	calls := env.backend.slotCalls["court-1"]
	env.backend.mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestMonthNavigationClearsStaleDate(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()

	require.NoError(t, m.Next(ctx))
	require.NoError(t, m.SelectDate(ctx, "2025-06-10"))

	// Same window: date survives month navigation
	require.NoError(t, m.NavigateMonth(ctx, "2025-06"))
	require.NotNil(t, m.Snapshot().Draft.PickedDate)

	// Real time moves past the picked date; the window is anchored to now
	env.now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, m.NavigateMonth(ctx, "2025-07"))

	state := m.Snapshot()
	assert.Nil(t, state.Draft.PickedDate)
	assert.Nil(t, state.Draft.PickedSlotID)
	assert.Nil(t, state.Draft.PickedSlot)
}

func TestDraftPersistedOnEveryChange(t *testing.T) {
	env := newTestEnv()
	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()

	toSlots(t, m, "2025-06-05")
	stored, err := env.drafts.Load(ctx, "club-1", "court-1")
	require.NoError(t, err)
	require.NotNil(t, stored.PickedDate)
	assert.Equal(t, "2025-06-05", *stored.PickedDate)

	require.NoError(t, m.SelectSlot(ctx, "s3"))
	stored, err = env.drafts.Load(ctx, "club-1", "court-1")
	require.NoError(t, err)
	require.NotNil(t, stored.PickedSlotID)
	assert.Equal(t, "s3", *stored.PickedSlotID)

	// Court switch persists the reset draft under the new scope
	require.NoError(t, m.SelectCourt(ctx, "court-2"))
	stored, err = env.drafts.Load(ctx, "club-1", "court-2")
	require.NoError(t, err)
	assert.Nil(t, stored.PickedDate)
	assert.Nil(t, stored.PickedSlotID)
}

func TestDateChangeResetsBookedSet(t *testing.T) {
	env := newTestEnv()
	env.backend.booked["court-1|2025-06-05"] = []string{"s3"}
	// s3 is free on 2025-06-06

	var pending []func()
	env.deps.Spawn = func(fn func()) { pending = append(pending, fn) }

	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()
	require.NoError(t, m.Next(ctx))
	require.NoError(t, m.SelectDate(ctx, "2025-06-05"))
	require.NoError(t, m.Next(ctx)) // re-fetches availability for the step change
	require.Len(t, pending, 2)
	pending[0]() // superseded by the fetch from Next
	pending[1]() // 2025-06-05 occurrences land: s3 booked

	assert.ErrorIs(t, m.SelectSlot(ctx, "s3"), ErrSlotUnavailable)

	// New date: the old booked set must not judge picks while the new
	// fetch is still in flight.
	require.NoError(t, m.SelectDate(ctx, "2025-06-06"))
	require.NoError(t, m.SelectSlot(ctx, "s3"))

	state := m.Snapshot()
	require.NotNil(t, state.Draft.PickedSlotID)
	assert.Equal(t, "s3", *state.Draft.PickedSlotID)

	// The resolved fetch agrees once it lands
	require.Len(t, pending, 3)
	pending[2]()
	for _, sv := range m.Snapshot().Slots {
		if sv.ID == "s3" {
			assert.False(t, sv.Booked)
			assert.True(t, sv.Selectable)
		}
	}
}

func TestOrphanedFetchClearsLoadingFlag(t *testing.T) {
	env := newTestEnv()

	var pending []func()
	env.deps.Spawn = func(fn func()) { pending = append(pending, fn) }

	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()
	require.NoError(t, m.Next(ctx))
	require.NoError(t, m.SelectDate(ctx, "2025-06-05"))
	assert.True(t, m.Snapshot().LoadingAvailability)

	// Switching courts orphans the fetch; nothing is outstanding anymore
	require.NoError(t, m.SelectCourt(ctx, "court-2"))
	assert.False(t, m.Snapshot().LoadingAvailability)

	// The orphaned response landing late must not resurrect the flag
	require.Len(t, pending, 1)
	pending[0]()
	assert.False(t, m.Snapshot().LoadingAvailability)
}

func TestMonthNavigationClearsLoadingFlag(t *testing.T) {
	env := newTestEnv()

	var pending []func()
	env.deps.Spawn = func(fn func()) { pending = append(pending, fn) }

	m := env.start(t, "club-1", "court-1")
	ctx := context.Background()
	require.NoError(t, m.Next(ctx))
	require.NoError(t, m.SelectDate(ctx, "2025-06-05"))
	assert.True(t, m.Snapshot().LoadingAvailability)

	// A month later the picked date is stale; clearing it also drops the
	// fetch that was loading it
	env.now = time.Date(2025, 7, 20, 12, 0, 0, 0, time.Local)
	require.NoError(t, m.NavigateMonth(ctx, "2025-07"))

	state := m.Snapshot()
	assert.Nil(t, state.Draft.PickedDate)
	assert.False(t, state.LoadingAvailability)
}
