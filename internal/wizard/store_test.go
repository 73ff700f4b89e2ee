package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	date := "2025-06-10"
	slotID := "slot-3"
	draft := &Draft{
		ClubID:       "club-1",
		ClubName:     "Center Padel",
		ClubLogo:     "/img/center.png",
		CourtID:      "court-2",
		CourtName:    "Court 2",
		CourtImage:   "/img/court2.jpg",
		PickedDate:   &date,
		PickedSlotID: &slotID,
		PickedSlot:   &SlotSnapshot{ID: "slot-3", From: "18:00", To: "19:00", Price: 35},
		ReturnTo:     "/clubs/club-1/courts/court-2",
	}

	require.NoError(t, store.Save(ctx, "club-1", "court-2", draft))

	loaded, err := store.Load(ctx, "club-1", "court-2")
	require.NoError(t, err)
	assert.Equal(t, draft, loaded)

	// The stored copy must be isolated from later caller mutations
	*draft.PickedDate = "2025-06-11"
	reloaded, err := store.Load(ctx, "club-1", "court-2")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", *reloaded.PickedDate)
}

func TestMemoryDraftStoreMissAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	loaded, err := store.Load(ctx, "club-1", "court-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.Save(ctx, "club-1", "court-1", &Draft{ClubID: "club-1", CourtID: "court-1"}))
	require.NoError(t, store.Delete(ctx, "club-1", "court-1"))

	loaded, err = store.Load(ctx, "club-1", "court-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryDraftStoreScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	require.NoError(t, store.Save(ctx, "club-1", "court-1", &Draft{ClubID: "club-1", CourtID: "court-1"}))
	require.NoError(t, store.Save(ctx, "club-1", "court-2", &Draft{ClubID: "club-1", CourtID: "court-2"}))

	a, err := store.Load(ctx, "club-1", "court-1")
	require.NoError(t, err)
	b, err := store.Load(ctx, "club-1", "court-2")
	require.NoError(t, err)
	assert.Equal(t, "court-1", a.CourtID)
	assert.Equal(t, "court-2", b.CourtID)
}

func TestMemorySignalStoreConsumedExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySignalStore()

	taken, err := store.TakeResume(ctx, "club-1", "court-1")
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, store.SetResume(ctx, "club-1", "court-1"))

	taken, err = store.TakeResume(ctx, "club-1", "court-1")
	require.NoError(t, err)
	assert.True(t, taken)

	// Second read must not replay the signal
	taken, err = store.TakeResume(ctx, "club-1", "court-1")
	require.NoError(t, err)
	assert.False(t, taken)
}
