package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/model"
)

// AchievementSeeder handles seeding achievement definitions
type AchievementSeeder struct {
	db *gorm.DB
}

// NewAchievementSeeder creates a new achievement seeder
func NewAchievementSeeder(db *gorm.DB) *AchievementSeeder {
	return &AchievementSeeder{db: db}
}

// SeedAchievements seeds the achievement definitions awarded at runtime
func (s *AchievementSeeder) SeedAchievements() error {
	achievements := s.getAchievements()

	for _, achievement := range achievements {
		var existing model.Achievement
		if err := s.db.Where("type = ?", achievement.Type).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&achievement).Error; err != nil {
					log.Printf("Error creating achievement %s: %v", achievement.Title, err)
					return err
				}
				log.Printf("Created achievement: %s", achievement.Title)
			} else {
				log.Printf("Error checking achievement %s: %v", achievement.Title, err)
				return err
			}
		} else {
			log.Printf("Achievement %s already exists, skipping", achievement.Title)
		}
	}

	log.Println("Achievement seeding completed successfully")
	return nil
}

func (s *AchievementSeeder) getAchievements() []model.Achievement {
	now := time.Now()

	return []model.Achievement{
		{
			ID:          "ach_module_master",
			Type:        model.AchievementModuleCompleted,
			Title:       "Module Master",
			Description: "Complete your first learning module",
			Points:      50,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "ach_week_warrior",
			Type:        model.AchievementWeekStreak,
			Title:       "Week Warrior",
			Description: "Stay active for seven days in a row",
			Points:      100,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
