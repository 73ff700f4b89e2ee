package main

import (
	"fmt"
	"log"

	"padelhub/internal/clubs"
	"padelhub/internal/courts"
	"padelhub/internal/reviews"
	"padelhub/internal/shared/config"
	"padelhub/internal/shared/database"
	"padelhub/internal/slots"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting PadelHub Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Order matters due to foreign key constraints
	// Delete in reverse dependency order
	tables := []string{
		"reservations",
		"reviews",
		"slots",
		"courts",
		"clubs",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Disable foreign key constraints temporarily
	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	// Re-enable foreign key constraints
	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	// Seed clubs first (no dependencies)
	clubIDs, err := s.SeedClubs()
	if err != nil {
		return fmt.Errorf("failed to seed clubs: %w", err)
	}

	// Seed courts per club
	courtIDs, err := s.SeedCourts(clubIDs)
	if err != nil {
		return fmt.Errorf("failed to seed courts: %w", err)
	}

	// Seed slot catalogs per court
	if err := s.SeedSlots(courtIDs); err != nil {
		return fmt.Errorf("failed to seed slots: %w", err)
	}

	// Seed a handful of reviews
	if err := s.SeedReviews(clubIDs); err != nil {
		return fmt.Errorf("failed to seed reviews: %w", err)
	}

	return nil
}

// SeedClubs creates the demo clubs and returns name -> id
func (s *Seeder) SeedClubs() (map[string]uuid.UUID, error) {
	fmt.Println("\n🏟️  Seeding clubs...")

	clubList := []clubs.Club{
		{
			Name:        "Padel Indoor Milano",
			Description: "Six indoor courts in the heart of Milano, open seven days a week.",
			Address:     "Via Giacomo Watt 15",
			City:        "Milano",
			Latitude:    45.4408,
			Longitude:   9.1550,
			LogoURL:     "https://cdn.padelhub.dev/clubs/milano/logo.png",
			CoverURL:    "https://cdn.padelhub.dev/clubs/milano/cover.jpg",
			Amenities:   []string{"parking", "showers", "bar", "pro shop"},
		},
		{
			Name:        "Club de Pádel Chamartín",
			Description: "Outdoor panoramic courts with night lighting and a club house.",
			Address:     "Calle de Alberto Alcocer 32",
			City:        "Madrid",
			Latitude:    40.4604,
			Longitude:   -3.6838,
			LogoURL:     "https://cdn.padelhub.dev/clubs/chamartin/logo.png",
			CoverURL:    "https://cdn.padelhub.dev/clubs/chamartin/cover.jpg",
			Amenities:   []string{"parking", "night lighting", "club house"},
		},
		{
			Name:        "Riverside Padel London",
			Description: "Covered courts by the Thames with pro coaching on weekends.",
			Address:     "12 Lombard Wharf, Battersea",
			City:        "London",
			Latitude:    51.4694,
			Longitude:   -0.1773,
			LogoURL:     "https://cdn.padelhub.dev/clubs/riverside/logo.png",
			CoverURL:    "https://cdn.padelhub.dev/clubs/riverside/cover.jpg",
			Amenities:   []string{"showers", "cafe", "coaching"},
		},
	}

	ids := make(map[string]uuid.UUID)
	for i := range clubList {
		if err := s.db.PostgreSQL.Create(&clubList[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create club %s: %w", clubList[i].Name, err)
		}
		ids[clubList[i].Name] = clubList[i].ID
		fmt.Printf("  ✅ Created club: %s (%s)\n", clubList[i].Name, clubList[i].City)
	}

	return ids, nil
}

// SeedCourts creates courts for every club and returns the court IDs in creation order
func (s *Seeder) SeedCourts(clubIDs map[string]uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("\n🎾 Seeding courts...")

	type courtSpec struct {
		club     string
		name     string
		kind     courts.CourtType
		surface  string
		position int
	}

	specs := []courtSpec{
		{"Padel Indoor Milano", "Centrale", courts.CourtTypeIndoor, "panoramic glass", 1},
		{"Padel Indoor Milano", "Court 2", courts.CourtTypeIndoor, "panoramic glass", 2},
		{"Padel Indoor Milano", "Court 3", courts.CourtTypeIndoor, "wall", 3},
		{"Club de Pádel Chamartín", "Pista 1", courts.CourtTypeOutdoor, "panoramic glass", 1},
		{"Club de Pádel Chamartín", "Pista 2", courts.CourtTypeOutdoor, "panoramic glass", 2},
		{"Riverside Padel London", "Court A", courts.CourtTypeIndoor, "panoramic glass", 1},
		{"Riverside Padel London", "Court B", courts.CourtTypeOutdoor, "wall", 2},
	}

	var ids []uuid.UUID
	for _, spec := range specs {
		clubID, ok := clubIDs[spec.club]
		if !ok {
			return nil, fmt.Errorf("unknown club %q for court %s", spec.club, spec.name)
		}

		court := courts.Court{
			ClubID:     clubID,
			Name:       spec.name,
			Type:       spec.kind,
			Surface:    spec.surface,
			MaxPlayers: 4,
			Position:   spec.position,
		}
		if err := s.db.PostgreSQL.Create(&court).Error; err != nil {
			return nil, fmt.Errorf("failed to create court %s: %w", spec.name, err)
		}
		ids = append(ids, court.ID)
		fmt.Printf("  ✅ Created court: %s / %s\n", spec.club, spec.name)
	}

	return ids, nil
}

// SeedSlots builds a 90-minute slot grid for every court.
// Off-peak mornings are cheaper than evening prime time.
func (s *Seeder) SeedSlots(courtIDs []uuid.UUID) error {
	fmt.Println("\n⏰ Seeding slot catalogs...")

	type interval struct {
		from  string
		to    string
		price float64
	}

	grid := []interval{
		{"08:00", "09:30", 24.00},
		{"09:30", "11:00", 24.00},
		{"11:00", "12:30", 28.00},
		{"12:30", "14:00", 28.00},
		{"14:00", "15:30", 28.00},
		{"15:30", "17:00", 32.00},
		{"17:00", "18:30", 36.00},
		{"18:30", "20:00", 40.00},
		{"20:00", "21:30", 40.00},
		{"21:30", "23:00", 36.00},
	}

	total := 0
	for _, courtID := range courtIDs {
		for _, iv := range grid {
			slot := slots.Slot{
				CourtID:  courtID,
				FromTime: iv.from,
				ToTime:   iv.to,
				Price:    iv.price,
				Active:   true,
			}
			if err := s.db.PostgreSQL.Create(&slot).Error; err != nil {
				return fmt.Errorf("failed to create slot %s-%s: %w", iv.from, iv.to, err)
			}
			total++
		}
	}

	fmt.Printf("  ✅ Created %d slots across %d courts\n", total, len(courtIDs))
	return nil
}

// SeedReviews leaves a few player reviews so club ratings are non-empty
func (s *Seeder) SeedReviews(clubIDs map[string]uuid.UUID) error {
	fmt.Println("\n⭐ Seeding reviews...")

	type reviewSpec struct {
		club    string
		rating  int
		comment string
		author  string
	}

	specs := []reviewSpec{
		{"Padel Indoor Milano", 5, "Best indoor courts in the city, booking was painless.", "Giulia R."},
		{"Padel Indoor Milano", 4, "Great surface, showers could be warmer.", "Marco B."},
		{"Club de Pádel Chamartín", 5, "Night lighting is excellent, played until 23:00.", "Lucía F."},
		{"Riverside Padel London", 4, "Lovely spot by the river. Court B gets windy.", "Tom H."},
		{"Riverside Padel London", 3, "Good courts but weekend slots fill up fast.", "Priya S."},
	}

	for _, spec := range specs {
		clubID, ok := clubIDs[spec.club]
		if !ok {
			return fmt.Errorf("unknown club %q for review", spec.club)
		}

		review := reviews.Review{
			ClubID:     clubID,
			UserID:     uuid.New(),
			Rating:     spec.rating,
			Comment:    spec.comment,
			AuthorName: spec.author,
		}
		if err := s.db.PostgreSQL.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review for %s: %w", spec.club, err)
		}
		fmt.Printf("  ✅ Created review: %s (%d★)\n", spec.club, spec.rating)
	}

	return nil
}
