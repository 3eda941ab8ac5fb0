// seed/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aadidev-sraj/project-lyra/seed/seeders"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Parse command line flags
	var (
		seedType = flag.String("type", "all", "Type of seeding: all, admin, modules, challenges, achievements")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(databaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database")

	// Create main seeder
	mainSeeder := seeders.NewMainSeeder(db)

	// Run seeding based on type
	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "admin":
		log.Println("Seeding admin account only...")
		if err := mainSeeder.SeedAdminOnly(); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	case "modules":
		log.Println("Seeding modules only...")
		if err := mainSeeder.SeedModulesOnly(); err != nil {
			log.Fatalf("Failed to seed modules: %v", err)
		}
	case "challenges":
		log.Println("Seeding challenges only...")
		if err := mainSeeder.SeedChallengesOnly(); err != nil {
			log.Fatalf("Failed to seed challenges: %v", err)
		}
	case "achievements":
		log.Println("Seeding achievements only...")
		if err := mainSeeder.SeedAchievementsOnly(); err != nil {
			log.Fatalf("Failed to seed achievements: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'admin', 'modules', 'challenges', or 'achievements'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

// databaseDSN builds the same connection string the API server uses so the
// seeder always targets the same database.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "project_lyra")
	sslmode := envOr("DB_SSLMODE", "disable")
	timezone := envOr("DB_TIMEZONE", "UTC")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	log.Println(`
Database Seeding Tool for project-lyra

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, admin, modules, challenges, achievements
  -help
        Show this help message

Examples:
  # Seed everything
  go run seed/main.go

  # Seed only the admin account
  go run seed/main.go -type=admin

  # Seed only challenges
  go run seed/main.go -type=challenges

Environment Variables:
  DATABASE_URL   - Full postgres DSN (overrides the DB_* variables)
  DB_HOST        - Database host (default: localhost)
  DB_PORT        - Database port (default: 5432)
  DB_USER        - Database user (default: postgres)
  DB_PASSWORD    - Database password (default: postgres)
  DB_NAME        - Database name (default: project_lyra)
  ADMIN_EMAIL    - Email for the seeded admin (default: admin@lyra.local)
  ADMIN_PASSWORD - Password for the seeded admin (default: admin123)`)
}
