package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"

	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"

	CategoryPhishing          = "phishing"
	CategoryMalware           = "malware"
	CategoryPasswords         = "passwords"
	CategoryNetwork           = "network"
	CategoryCryptography      = "cryptography"
	CategorySocialEngineering = "social-engineering"

	ChallengePhishingDetection     = "phishing-detection"
	ChallengePasswordStrength      = "password-strength"
	ChallengeNetworkAnalysis       = "network-analysis"
	ChallengeMalwareIdentification = "malware-identification"

	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeTrueFalse      = "true-false"
	QuestionTypeFillBlank      = "fill-blank"

	SectionTypeText        = "text"
	SectionTypeVideo       = "video"
	SectionTypeInteractive = "interactive"
	SectionTypeQuiz        = "quiz"
	SectionTypeLab         = "lab"

	ProgressActionStart           = "start"
	ProgressActionSectionComplete = "section_complete"
	ProgressActionPause           = "pause"
	ProgressActionResume          = "resume"
)
