package constants

import (
	"fmt"
	"time"
)

// Redis key and TTL registry for padelhub.
// Pattern: padelhub:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static data (rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
)

// Semi-static data (changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute
)

// Dynamic data (changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute
	TTL_DYNAMIC_SHORT  = 5 * time.Minute
	TTL_DYNAMIC_QUICK  = 2 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "padelhub"
)

// ================== CLUBS MODULE ==================

const (
	CACHE_KEY_CLUBS_LIST  = CACHE_PREFIX + ":clubs:list"         // + :page:X:limit:Y:city:Z
	CACHE_KEY_CLUB_DETAIL = CACHE_PREFIX + ":clubs:detail:uuid:" // + club-id
)

const (
	TTL_CLUBS_LIST  = TTL_SEMI_STATIC_SHORT
	TTL_CLUB_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// ================== COURTS MODULE ==================

const (
	CACHE_KEY_COURTS_BY_CLUB = CACHE_PREFIX + ":courts:club:uuid:"  // + club-id
	CACHE_KEY_COURT_DETAIL   = CACHE_PREFIX + ":courts:detail:uuid:" // + court-id
)

const (
	TTL_COURTS_BY_CLUB = TTL_SEMI_STATIC_MEDIUM
	TTL_COURT_DETAIL   = TTL_SEMI_STATIC_MEDIUM
)

// ================== SLOTS MODULE ==================

const (
	// Static slot catalog per court. The catalog recurs daily, so it is safe to
	// hold for hours; writes invalidate it.
	CACHE_KEY_SLOTS_BY_COURT = CACHE_PREFIX + ":slots:court:uuid:" // + court-id

	// Full catalog including deactivated slots; the booking page renders those
	// as unavailable instead of hiding them.
	CACHE_KEY_SLOT_CATALOG = CACHE_PREFIX + ":slots:catalog:uuid:" // + court-id
)

const (
	TTL_SLOTS_BY_COURT = TTL_STATIC_MEDIUM
)

// ================== RESERVATIONS MODULE ==================

const (
	// Booked slot-occurrence set for one court+date.
	CACHE_KEY_BOOKED_OCCURRENCES = CACHE_PREFIX + ":reservations:booked:court:" // + court-id:date:YYYY-MM-DD
	CACHE_KEY_USER_RESERVATIONS  = CACHE_PREFIX + ":reservations:user:uuid:"    // + user-id:page:X
)

const (
	TTL_BOOKED_OCCURRENCES = TTL_DYNAMIC_QUICK
	TTL_USER_RESERVATIONS  = TTL_DYNAMIC_MEDIUM
)

// ================== REVIEWS MODULE ==================

const (
	CACHE_KEY_REVIEWS_BY_CLUB = CACHE_PREFIX + ":reviews:club:uuid:"  // + club-id:page:X
	CACHE_KEY_CLUB_RATING     = CACHE_PREFIX + ":reviews:rating:uuid:" // + club-id
)

const (
	TTL_REVIEWS_BY_CLUB = TTL_DYNAMIC_MEDIUM
	TTL_CLUB_RATING     = TTL_SEMI_STATIC_QUICK
)

// ================== WIZARD MODULE ==================

const (
	// Durable booking drafts, keyed by (club, court) scope.
	KEY_WIZARD_DRAFT = CACHE_PREFIX + ":wizard:draft:"
	// One-shot resume signals written by the confirm page's back action.
	KEY_WIZARD_RESUME = CACHE_PREFIX + ":wizard:resume:"
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_CLUBS_ALL    = CACHE_PREFIX + ":clubs:*"
	PATTERN_INVALIDATE_COURTS_ALL   = CACHE_PREFIX + ":courts:*"
	PATTERN_INVALIDATE_SLOTS_ALL    = CACHE_PREFIX + ":slots:*"
	PATTERN_INVALIDATE_REVIEWS_ALL  = CACHE_PREFIX + ":reviews:*"
	PATTERN_INVALIDATE_BOOKED_ALL   = CACHE_PREFIX + ":reservations:booked:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildClubListKey(page, limit int, city string) string {
	if city != "" {
		return fmt.Sprintf("%s:page:%d:limit:%d:city:%s", CACHE_KEY_CLUBS_LIST, page, limit, city)
	}
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_CLUBS_LIST, page, limit)
}

func BuildClubDetailKey(clubID string) string {
	return CACHE_KEY_CLUB_DETAIL + clubID
}

func BuildCourtsByClubKey(clubID string) string {
	return CACHE_KEY_COURTS_BY_CLUB + clubID
}

func BuildCourtDetailKey(courtID string) string {
	return CACHE_KEY_COURT_DETAIL + courtID
}

func BuildSlotsByCourtKey(courtID string) string {
	return CACHE_KEY_SLOTS_BY_COURT + courtID
}

func BuildSlotCatalogKey(courtID string) string {
	return CACHE_KEY_SLOT_CATALOG + courtID
}

func BuildBookedOccurrencesKey(courtID, date string) string {
	return CACHE_KEY_BOOKED_OCCURRENCES + courtID + ":date:" + date
}

func BuildUserReservationsKey(userID string, page int) string {
	return fmt.Sprintf("%s%s:page:%d", CACHE_KEY_USER_RESERVATIONS, userID, page)
}

func BuildUserReservationsPattern(userID string) string {
	return CACHE_KEY_USER_RESERVATIONS + userID + ":*"
}

func BuildReviewsByClubKey(clubID string, page int) string {
	return fmt.Sprintf("%s%s:page:%d", CACHE_KEY_REVIEWS_BY_CLUB, clubID, page)
}

func BuildClubRatingKey(clubID string) string {
	return CACHE_KEY_CLUB_RATING + clubID
}

// BuildWizardDraftKey derives the durable draft scope key from (clubID, courtID).
func BuildWizardDraftKey(clubID, courtID string) string {
	return KEY_WIZARD_DRAFT + "club:" + clubID + ":court:" + courtID
}

// BuildWizardResumeKey derives the one-shot resume signal key for a scope.
func BuildWizardResumeKey(clubID, courtID string) string {
	return KEY_WIZARD_RESUME + "club:" + clubID + ":court:" + courtID
}
