package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// 1. Admin account first so modules and challenges can reference an author
	adminSeeder := NewAdminSeeder(s.db)
	if err := adminSeeder.SeedAdmin(); err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	// 2. Achievement definitions (no dependencies)
	achievementSeeder := NewAchievementSeeder(s.db)
	if err := achievementSeeder.SeedAchievements(); err != nil {
		log.Printf("Achievement seeding failed: %v", err)
		return err
	}

	// 3. Learning modules
	moduleSeeder := NewModuleSeeder(s.db)
	if err := moduleSeeder.SeedModules(); err != nil {
		log.Printf("Module seeding failed: %v", err)
		return err
	}

	// 4. Practice challenges
	challengeSeeder := NewChallengeSeeder(s.db)
	if err := challengeSeeder.SeedChallenges(); err != nil {
		log.Printf("Challenge seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedAdminOnly seeds only the admin account
func (s *MainSeeder) SeedAdminOnly() error {
	adminSeeder := NewAdminSeeder(s.db)
	return adminSeeder.SeedAdmin()
}

// SeedModulesOnly seeds only learning modules
func (s *MainSeeder) SeedModulesOnly() error {
	moduleSeeder := NewModuleSeeder(s.db)
	return moduleSeeder.SeedModules()
}

// SeedChallengesOnly seeds only practice challenges
func (s *MainSeeder) SeedChallengesOnly() error {
	challengeSeeder := NewChallengeSeeder(s.db)
	return challengeSeeder.SeedChallenges()
}

// SeedAchievementsOnly seeds only achievement definitions
func (s *MainSeeder) SeedAchievementsOnly() error {
	achievementSeeder := NewAchievementSeeder(s.db)
	return achievementSeeder.SeedAchievements()
}
