package seeders

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/model"
)

// ModuleSeeder handles seeding learning modules
type ModuleSeeder struct {
	db *gorm.DB
}

// NewModuleSeeder creates a new module seeder
func NewModuleSeeder(db *gorm.DB) *ModuleSeeder {
	return &ModuleSeeder{db: db}
}

// SeedModules seeds the database with introductory cybersecurity modules
func (s *ModuleSeeder) SeedModules() error {
	modules := s.getModules()

	for _, module := range modules {
		var existing model.Module
		if err := s.db.Where("slug = ?", module.Slug).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&module).Error; err != nil {
					log.Printf("Error creating module %s: %v", module.Title, err)
					return err
				}
				log.Printf("Created module: %s", module.Title)
			} else {
				log.Printf("Error checking module %s: %v", module.Title, err)
				return err
			}
		} else {
			log.Printf("Module %s already exists, skipping", module.Title)
		}
	}

	log.Println("Module seeding completed successfully")
	return nil
}

func (s *ModuleSeeder) getModules() []model.Module {
	now := time.Now()

	return []model.Module{
		{
			ID:            "mod_phishing_fundamentals",
			Title:         "Phishing Fundamentals",
			Slug:          "phishing-fundamentals",
			Description:   "Learn how phishing attacks work, how to spot forged senders and malicious links, and what to do when you receive a suspicious message.",
			Category:      "social-engineering",
			Difficulty:    "beginner",
			Points:        100,
			EstimatedTime: 45,
			Sections: mustJSON([]model.Section{
				{
					ID:      "sec_what_is_phishing",
					Title:   "What Is Phishing?",
					Type:    "text",
					Content: "Phishing is a social engineering attack that tricks victims into revealing credentials or running malicious code. Attackers impersonate trusted brands, coworkers, or services and create urgency to short-circuit careful reading.",
					Order:   1,
				},
				{
					ID:      "sec_spotting_red_flags",
					Title:   "Spotting the Red Flags",
					Type:    "text",
					Content: "Mismatched sender domains, generic greetings, unexpected attachments, and links whose visible text differs from the real destination are the most common indicators. Hover before you click.",
					Order:   2,
				},
				{
					ID:      "sec_reporting",
					Title:   "Reporting and Response",
					Type:    "video",
					Content: "When you suspect phishing, do not reply and do not click. Report the message through your organization's reporting channel so the security team can block the sender for everyone.",
					Order:   3,
				},
			}),
			Quiz: mustJSON(model.Quiz{
				PassingScore: 70,
				Questions: []model.QuizQuestion{
					{
						ID:            "q1",
						Question:      "An email from 'support@paypa1.com' asks you to verify your account. What is the strongest indicator this is phishing?",
						Type:          "multiple-choice",
						Options:       []string{"It mentions your account", "The sender domain is misspelled", "It was sent in the morning", "It contains a logo"},
						CorrectAnswer: "The sender domain is misspelled",
						Explanation:   "Lookalike domains such as paypa1.com are a classic impersonation technique.",
						Points:        10,
					},
					{
						ID:            "q2",
						Question:      "You should hover over a link before clicking it to check the real destination.",
						Type:          "true-false",
						CorrectAnswer: true,
						Explanation:   "The visible link text can say anything. The underlying URL is what matters.",
						Points:        10,
					},
					{
						ID:            "q3",
						Question:      "What should you do first when you receive a suspicious email at work?",
						Type:          "multiple-choice",
						Options:       []string{"Forward it to colleagues as a warning", "Reply and ask if it is legitimate", "Report it through the official channel", "Delete it immediately"},
						CorrectAnswer: "Report it through the official channel",
						Explanation:   "Reporting lets the security team block the campaign for the whole organization.",
						Points:        10,
					},
				},
			}),
			Tags:        mustJSON([]string{"phishing", "email", "social-engineering"}),
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:            "mod_password_security",
			Title:         "Password Security Essentials",
			Slug:          "password-security-essentials",
			Description:   "Understand what makes passwords strong or weak, how attackers crack them, and how password managers and multi-factor authentication change the game.",
			Category:      "authentication",
			Difficulty:    "beginner",
			Points:        100,
			EstimatedTime: 30,
			Sections: mustJSON([]model.Section{
				{
					ID:      "sec_how_cracking_works",
					Title:   "How Password Cracking Works",
					Type:    "text",
					Content: "Attackers rarely guess passwords by hand. They run dictionary and brute-force attacks against leaked hash databases, testing billions of candidates per second on commodity GPUs.",
					Order:   1,
				},
				{
					ID:      "sec_strength",
					Title:   "Length Beats Complexity",
					Type:    "interactive",
					Content: "A 16-character passphrase of random words resists cracking far longer than an 8-character string with symbols. Entropy grows with length much faster than with character-set size.",
					Order:   2,
				},
				{
					ID:      "sec_mfa",
					Title:   "Managers and MFA",
					Type:    "text",
					Content: "A password manager lets every account have a unique random password, and multi-factor authentication keeps a stolen password from being enough on its own.",
					Order:   3,
				},
			}),
			Quiz: mustJSON(model.Quiz{
				PassingScore: 70,
				Questions: []model.QuizQuestion{
					{
						ID:            "q1",
						Question:      "Which password would take the longest to crack?",
						Type:          "multiple-choice",
						Options:       []string{"P@ssw0rd!", "correct-horse-battery-staple", "123456789", "qwerty2024"},
						CorrectAnswer: "correct-horse-battery-staple",
						Explanation:   "Long passphrases have far more entropy than short passwords with substitutions.",
						Points:        10,
					},
					{
						ID:            "q2",
						Question:      "Reusing one strong password across all your accounts is safe.",
						Type:          "true-false",
						CorrectAnswer: false,
						Explanation:   "One breached site exposes every account that shares the password.",
						Points:        10,
					},
				},
			}),
			Tags:        mustJSON([]string{"passwords", "authentication", "mfa"}),
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:            "mod_network_traffic_analysis",
			Title:         "Network Traffic Analysis",
			Slug:          "network-traffic-analysis",
			Description:   "Read packet captures and server logs to separate normal traffic from scans, beaconing, and exfiltration attempts.",
			Category:      "network-security",
			Difficulty:    "intermediate",
			Points:        150,
			EstimatedTime: 60,
			Prerequisites: mustJSON([]string{"mod_phishing_fundamentals"}),
			Sections: mustJSON([]model.Section{
				{
					ID:      "sec_reading_logs",
					Title:   "Reading Connection Logs",
					Type:    "text",
					Content: "Every connection leaves a record: source, destination, port, bytes, and duration. Baselining what normal looks like for your network is the first step toward spotting what is not.",
					Order:   1,
				},
				{
					ID:      "sec_scan_patterns",
					Title:   "Recognizing Scan Patterns",
					Type:    "lab",
					Content: "Port scans show one source touching many ports in seconds. Beaconing shows small, regular connections to a single external host. Both stand out once you sort by source and time.",
					Order:   2,
				},
			}),
			Quiz: mustJSON(model.Quiz{
				PassingScore: 70,
				Questions: []model.QuizQuestion{
					{
						ID:            "q1",
						Question:      "A single internal host makes a small HTTPS request to the same unknown external IP every 60 seconds. What does this pattern most likely indicate?",
						Type:          "multiple-choice",
						Options:       []string{"Normal web browsing", "Malware beaconing to a command server", "A software update", "DNS resolution"},
						CorrectAnswer: "Malware beaconing to a command server",
						Explanation:   "Regular low-volume connections to one fixed endpoint are the signature of C2 beaconing.",
						Points:        10,
					},
					{
						ID:            "q2",
						Question:      "A port scan typically shows one source address connecting to many different ports in a short window.",
						Type:          "true-false",
						CorrectAnswer: true,
						Explanation:   "Scanners enumerate ports quickly, which is easy to see when logs are sorted by source.",
						Points:        10,
					},
				},
			}),
			Tags:        mustJSON([]string{"networking", "logs", "detection"}),
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:            "mod_malware_basics",
			Title:         "Malware Identification Basics",
			Slug:          "malware-identification-basics",
			Description:   "Classify the major malware families by behavior, from ransomware and trojans to worms and spyware, and learn the indicators each one leaves behind.",
			Category:      "malware",
			Difficulty:    "intermediate",
			Points:        150,
			EstimatedTime: 50,
			Sections: mustJSON([]model.Section{
				{
					ID:      "sec_families",
					Title:   "The Malware Families",
					Type:    "text",
					Content: "Ransomware encrypts files and demands payment. Trojans disguise themselves as legitimate software. Worms self-propagate across networks. Spyware quietly collects data. Classification starts with observed behavior, not the file name.",
					Order:   1,
				},
				{
					ID:      "sec_indicators",
					Title:   "Behavioral Indicators",
					Type:    "text",
					Content: "Mass file renames suggest ransomware. Unexpected outbound connections suggest a trojan or spyware. Rapid lateral spread suggests a worm. Each family has a tell.",
					Order:   2,
				},
			}),
			Quiz: mustJSON(model.Quiz{
				PassingScore: 70,
				Questions: []model.QuizQuestion{
					{
						ID:            "q1",
						Question:      "Files across the workstation are suddenly renamed with a .locked extension and a payment note appears. Which malware family is this?",
						Type:          "multiple-choice",
						Options:       []string{"Spyware", "Worm", "Ransomware", "Adware"},
						CorrectAnswer: "Ransomware",
						Explanation:   "Mass encryption plus a ransom demand is the defining ransomware behavior.",
						Points:        10,
					},
					{
						ID:            "q2",
						Question:      "A worm requires the user to run an infected file to spread between machines.",
						Type:          "true-false",
						CorrectAnswer: false,
						Explanation:   "Worms self-propagate by exploiting network services without user action.",
						Points:        10,
					},
				},
			}),
			Tags:        mustJSON([]string{"malware", "ransomware", "classification"}),
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
