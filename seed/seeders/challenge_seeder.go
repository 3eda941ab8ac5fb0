package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

// ChallengeSeeder handles seeding practice challenges
type ChallengeSeeder struct {
	db *gorm.DB
}

// NewChallengeSeeder creates a new challenge seeder
func NewChallengeSeeder(db *gorm.DB) *ChallengeSeeder {
	return &ChallengeSeeder{db: db}
}

// SeedChallenges seeds one starter challenge per challenge type
func (s *ChallengeSeeder) SeedChallenges() error {
	challenges := s.getChallenges()

	for _, challenge := range challenges {
		var existing model.Challenge
		if err := s.db.Where("id = ?", challenge.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&challenge).Error; err != nil {
					log.Printf("Error creating challenge %s: %v", challenge.Title, err)
					return err
				}
				log.Printf("Created challenge: %s", challenge.Title)
			} else {
				log.Printf("Error checking challenge %s: %v", challenge.Title, err)
				return err
			}
		} else {
			log.Printf("Challenge %s already exists, skipping", challenge.Title)
		}
	}

	log.Println("Challenge seeding completed successfully")
	return nil
}

func (s *ChallengeSeeder) getChallenges() []model.Challenge {
	now := time.Now()

	return []model.Challenge{
		{
			ID:          "chal_inbox_triage",
			Title:       "Inbox Triage",
			Description: "Review six emails in a shared inbox and flag every phishing attempt.",
			Type:        shared.ChallengePhishingDetection,
			Category:    "social-engineering",
			Difficulty:  "easy",
			Points:      10,
			TimeLimit:   300,
			Content: mustJSON(model.ChallengeContent{
				Scenario: "You are covering the support inbox this morning. Six messages arrived overnight. Flag the IDs of every phishing email.",
				Data: mustJSON([]map[string]string{
					{"id": "email1", "from": "it-helpdesk@c0mpany-support.net", "subject": "URGENT: Your mailbox is full, verify now"},
					{"id": "email2", "from": "newsletter@github.com", "subject": "Your weekly digest"},
					{"id": "email3", "from": "payroll@company.com", "subject": "Updated payslip for July"},
					{"id": "email4", "from": "security@paypa1.com", "subject": "Unusual sign-in detected, confirm your password"},
					{"id": "email5", "from": "calendar@company.com", "subject": "Meeting reminder: standup 9:00"},
					{"id": "email6", "from": "ceo.office@company-mail.ru", "subject": "Need you to buy gift cards quietly"},
				}),
				Hints: []string{
					"Check the sender domain character by character.",
					"Urgency and secrecy are pressure tactics, not normal business tone.",
				},
				Solution: mustJSON([]string{"email1", "email4", "email6"}),
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "chal_rate_the_passwords",
			Title:       "Rate the Passwords",
			Description: "Rate five candidate passwords as weak, medium, or strong.",
			Type:        shared.ChallengePasswordStrength,
			Category:    "authentication",
			Difficulty:  "easy",
			Points:      10,
			TimeLimit:   180,
			Content: mustJSON(model.ChallengeContent{
				Scenario: "A coworker asks you to sanity-check their password ideas. Rate each one in order as weak, medium, or strong.",
				Data: mustJSON([]string{
					"password123",
					"Summer2024!",
					"kT9$mQ2@xL5#pW8",
					"qwerty",
					"orbit-walrus-maple-seventeen",
				}),
				Hints: []string{
					"Dictionary words with a year and symbol are still predictable.",
				},
				Solution: mustJSON([]string{"weak", "medium", "strong", "weak", "strong"}),
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "chal_midnight_logs",
			Title:       "Midnight Logs",
			Description: "Flag the suspicious entries in a server access log from last night.",
			Type:        shared.ChallengeNetworkAnalysis,
			Category:    "network-security",
			Difficulty:  "medium",
			Points:      20,
			TimeLimit:   600,
			Content: mustJSON(model.ChallengeContent{
				Scenario: "The web server logged eight connections between 02:00 and 03:00. Flag the IDs of every suspicious entry.",
				Data: mustJSON([]map[string]string{
					{"id": "log1", "src": "10.2.4.17", "dst_port": "443", "note": "GET /index.html 200"},
					{"id": "log2", "src": "185.220.101.7", "dst_port": "22", "note": "47 failed SSH logins in 90 seconds"},
					{"id": "log3", "src": "10.2.4.30", "dst_port": "443", "note": "GET /assets/logo.png 200"},
					{"id": "log4", "src": "91.240.118.22", "dst_port": "1-1024", "note": "SYN to 1024 ports in 12 seconds"},
					{"id": "log5", "src": "10.2.4.17", "dst_port": "443", "note": "POST /api/login 200"},
					{"id": "log6", "src": "10.2.4.52", "dst_port": "8443", "note": "2.3 GB upload to unknown external host"},
					{"id": "log7", "src": "10.2.4.30", "dst_port": "53", "note": "DNS lookup for cdn.example.com"},
					{"id": "log8", "src": "10.2.4.11", "dst_port": "443", "note": "GET /healthz 200"},
				}),
				Hints: []string{
					"Look for volume and rate that no human browsing session produces.",
					"Large outbound uploads at 2 AM deserve a second look.",
				},
				Solution: mustJSON([]string{"log2", "log4", "log6"}),
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "chal_name_that_malware",
			Title:       "Name That Malware",
			Description: "Identify the malware family from its observed behavior.",
			Type:        shared.ChallengeMalwareIdentification,
			Category:    "malware",
			Difficulty:  "medium",
			Points:      20,
			TimeLimit:   240,
			Content: mustJSON(model.ChallengeContent{
				Scenario: "A workstation shows these symptoms: every document renamed with a .crypt extension, desktop wallpaper replaced with payment instructions, and shadow copies deleted. Name the malware family.",
				Hints: []string{
					"The attacker wants to be noticed, not hidden.",
				},
				Solution: mustJSON("ransomware"),
			}),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
