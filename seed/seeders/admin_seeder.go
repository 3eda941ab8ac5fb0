package seeders

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/model"
)

// AdminSeeder handles seeding the default admin account
type AdminSeeder struct {
	db *gorm.DB
}

// NewAdminSeeder creates a new admin seeder
func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// SeedAdmin creates a default admin user if no admin exists yet.
// Credentials can be overridden with ADMIN_EMAIL / ADMIN_PASSWORD.
func (s *AdminSeeder) SeedAdmin() error {
	var existingAdmin model.User
	if err := s.db.Where("role = ?", model.RoleAdmin).First(&existingAdmin).Error; err == nil {
		log.Println("Admin user already exists, skipping admin seeding")
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@lyra.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	id, _ := uuid.NewV7()

	now := time.Now()
	admin := model.User{
		ID:        id.String(),
		Name:      "Administrator",
		Email:     email,
		Password:  string(hashedPassword),
		Role:      model.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return err
	}

	log.Printf("Created admin user: %s", admin.Email)
	return nil
}
