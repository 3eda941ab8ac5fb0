package services

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ChallengeService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	monitoringSvc *MonitoringService
}

const CHALLENGE_SVC = "challenge_svc"

func (svc ChallengeService) Id() string {
	return CHALLENGE_SVC
}

func (svc *ChallengeService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChallengeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// buildChallengeResponse maps a challenge row to its API shape with the
// solution removed.
func buildChallengeResponse(challenge *model.Challenge) dto.ChallengeResponse {
	resp := dto.ChallengeResponse{
		ID:          challenge.ID,
		Title:       challenge.Title,
		Description: challenge.Description,
		Type:        challenge.Type,
		Category:    challenge.Category,
		Difficulty:  challenge.Difficulty,
		Points:      challenge.Points,
		TimeLimit:   challenge.TimeLimit,
		IsActive:    challenge.IsActive,
		Stats:       challenge.Stats,
		SuccessRate: challenge.SuccessRate(),
		CreatedAt:   challenge.CreatedAt,
	}

	if content, err := challenge.DecodeContent(); err == nil && content != nil {
		resp.Content = dto.ChallengeContentView{
			Scenario: content.Scenario,
			Data:     content.Data,
			Hints:    content.Hints,
		}
	}

	return resp
}

// ==================== CATALOG ====================

func (svc *ChallengeService) ListChallenges(q dto.ListChallengesQuery, includeInactive bool) (*dto.ChallengeListResponse, error) {
	challenges, total, err := svc.sqlSvc.Challenges().ListChallenges(q, !includeInactive)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to list challenges")
	}

	resp := &dto.ChallengeListResponse{
		Challenges: make([]dto.ChallengeResponse, 0, len(challenges)),
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}
	for i := range challenges {
		resp.Challenges = append(resp.Challenges, buildChallengeResponse(&challenges[i]))
	}
	return resp, nil
}

func (svc *ChallengeService) GetChallenge(challengeID string) (*dto.ChallengeResponse, error) {
	challenge, err := svc.sqlSvc.Challenges().GetChallenge(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Challenge not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load challenge")
	}

	resp := buildChallengeResponse(challenge)
	return &resp, nil
}

func (svc *ChallengeService) CreateChallenge(authorID string, req dto.CreateChallengeRequest) (*dto.ChallengeResponse, error) {
	if _, ok := GraderFor(req.Type); !ok {
		return nil, shared.NewBadRequestError(nil, "Unknown challenge type")
	}

	content := model.ChallengeContent{
		Scenario: req.Content.Scenario,
		Data:     req.Content.Data,
		Hints:    req.Content.Hints,
		Solution: req.Content.Solution,
	}
	rawContent, err := json.Marshal(content)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid challenge content")
	}

	challenge := &model.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		Points:      req.Points,
		TimeLimit:   req.TimeLimit,
		Content:     rawContent,
		IsActive:    req.IsActive,
		AuthorID:    authorID,
	}
	if challenge.Difficulty == "" {
		challenge.Difficulty = "easy"
	}
	if challenge.TimeLimit == 0 {
		challenge.TimeLimit = 300
	}

	if err := svc.sqlSvc.Challenges().CreateChallenge(challenge); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create challenge")
	}

	log.WithFields(log.Fields{"challenge_id": challenge.ID, "type": challenge.Type}).Info("Challenge created")

	resp := buildChallengeResponse(challenge)
	return &resp, nil
}

// DeleteChallenge removes the challenge and all attempts against it.
func (svc *ChallengeService) DeleteChallenge(challengeID, actorID, actorRole string) error {
	challenge, err := svc.sqlSvc.Challenges().GetChallenge(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "Challenge not found")
		}
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load challenge")
	}

	if challenge.AuthorID != actorID && actorRole != model.RoleAdmin {
		return shared.NewForbiddenError(nil, "Only the challenge author or an admin can delete this challenge")
	}

	if err := svc.sqlSvc.Challenges().DeleteChallengeAttempts(challengeID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete challenge attempts")
	}
	if err := svc.sqlSvc.Challenges().DeleteChallenge(challengeID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete challenge")
	}
	return nil
}

// ==================== SUBMISSION ====================

func (svc *ChallengeService) SubmitAttempt(userID, challengeID string, req dto.SubmitAttemptRequest) (*dto.AttemptResultResponse, error) {
	challenge, err := svc.sqlSvc.Challenges().GetChallenge(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Challenge not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load challenge")
	}
	if !challenge.IsActive {
		return nil, shared.NewNotFoundError(nil, "Challenge not found")
	}

	// Wall-clock check happens before grading so a slow submission never
	// earns points.
	timeTaken := int(math.Floor(time.Since(req.StartedAt).Seconds()))
	if timeTaken > challenge.TimeLimit {
		return nil, shared.NewBadRequestError(nil, "Time limit exceeded").WithData(dto.TimeLimitExceededResponse{
			Message:   "Time limit exceeded",
			TimeLimit: challenge.TimeLimit,
			TimeTaken: timeTaken,
		})
	}

	grader, ok := GraderFor(challenge.Type)
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Unknown challenge type")
	}

	content, err := challenge.DecodeContent()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to decode challenge content")
	}

	result, err := grader.Grade(req.Answers, content.Solution)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid answers payload")
	}

	// Success is decided on the raw graded score; the hint penalty only
	// lowers the recorded score.
	finalScore := ApplyHintPenalty(result.Score, req.HintsUsed)
	isSuccessful := result.Passed

	timeSpent := req.TimeSpent
	if timeSpent == 0 {
		timeSpent = timeTaken
	}

	previouslySolved, err := svc.sqlSvc.Challenges().HasSolvedChallenge(userID, challengeID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to check prior attempts")
	}

	attempt := &model.ChallengeAttempt{
		UserID:       userID,
		ChallengeID:  challengeID,
		Answers:      req.Answers,
		Score:        finalScore,
		TimeSpent:    timeSpent,
		IsSuccessful: isSuccessful,
		HintsUsed:    req.HintsUsed,
		Feedback:     result.Feedback,
		StartedAt:    req.StartedAt,
		CompletedAt:  time.Now(),
	}
	if err := svc.sqlSvc.Challenges().CreateAttempt(attempt); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to record attempt")
	}

	pointsEarned := 0
	if isSuccessful && !previouslySolved {
		pointsEarned = challenge.Points
		if err := svc.sqlSvc.Users().RecordChallengeCompletion(userID, challenge.Points); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to record challenge completion")
		}
	}

	svc.refreshChallengeStats(challengeID)
	svc.monitoringSvc.RecordChallengeAttempt(challenge.Type, isSuccessful, finalScore)

	rank := 0
	if r, err := svc.sqlSvc.Challenges().AttemptRank(challengeID, finalScore); err == nil {
		rank = r
	}

	return &dto.AttemptResultResponse{
		Results: dto.AttemptResults{
			Score:         finalScore,
			OriginalScore: result.Score,
			IsSuccessful:  isSuccessful,
			Feedback:      result.Feedback,
			PointsEarned:  pointsEarned,
			HintsUsed:     req.HintsUsed,
			TimeSpent:     timeSpent,
			Rank:          rank,
		},
	}, nil
}

// refreshChallengeStats recomputes the denormalized stats from every
// attempt on record.
func (svc *ChallengeService) refreshChallengeStats(challengeID string) {
	attempts, err := svc.sqlSvc.Challenges().GetChallengeAttempts(challengeID)
	if err != nil {
		log.WithError(err).WithField("challenge_id", challengeID).Warn("Failed to load attempts for stats")
		return
	}

	stats := model.ChallengeStats{Attempts: len(attempts)}
	if len(attempts) == 0 {
		return
	}

	var totalTime, totalScore int
	for _, a := range attempts {
		if a.IsSuccessful {
			stats.Successes++
		}
		totalTime += a.TimeSpent
		totalScore += a.Score
	}
	stats.AverageTime = totalTime / len(attempts)
	stats.AverageScore = totalScore / len(attempts)

	if err := svc.sqlSvc.Challenges().UpdateChallengeStats(challengeID, stats); err != nil {
		log.WithError(err).WithField("challenge_id", challengeID).Warn("Failed to update challenge stats")
	}
}

// ==================== ATTEMPTS & LEADERBOARD ====================

func (svc *ChallengeService) ListUserAttempts(userID string, page, limit int) (*dto.AttemptListResponse, error) {
	attempts, total, err := svc.sqlSvc.Challenges().ListUserAttempts(userID, page, limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to list attempts")
	}

	resp := &dto.AttemptListResponse{
		Attempts:   make([]dto.AttemptSummary, 0, len(attempts)),
		Pagination: dto.NewPagination(page, limit, total),
	}
	for i := range attempts {
		a := &attempts[i]
		summary := dto.AttemptSummary{
			ID:           a.ID,
			ChallengeID:  a.ChallengeID,
			Score:        a.Score,
			TimeSpent:    a.TimeSpent,
			IsSuccessful: a.IsSuccessful,
			HintsUsed:    a.HintsUsed,
			Feedback:     a.Feedback,
			CompletedAt:  a.CompletedAt,
		}
		if a.Challenge != nil {
			summary.Challenge = &dto.ChallengeBrief{
				ID:         a.Challenge.ID,
				Title:      a.Challenge.Title,
				Type:       a.Challenge.Type,
				Difficulty: a.Challenge.Difficulty,
				Points:     a.Challenge.Points,
			}
		}
		resp.Attempts = append(resp.Attempts, summary)
	}
	return resp, nil
}

// GetLeaderboard ranks users by their best successful attempt, ties broken
// by the faster time.
func (svc *ChallengeService) GetLeaderboard(challengeID string, limit int) (*dto.ChallengeLeaderboardResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	attempts, err := svc.sqlSvc.Challenges().GetChallengeAttempts(challengeID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load attempts")
	}

	type bestEntry struct {
		userID      string
		bestScore   int
		bestTime    int
		count       int
		lastAttempt time.Time
	}
	byUser := map[string]*bestEntry{}
	for _, a := range attempts {
		entry, ok := byUser[a.UserID]
		if !ok {
			entry = &bestEntry{userID: a.UserID}
			byUser[a.UserID] = entry
		}
		entry.count++
		if a.CompletedAt.After(entry.lastAttempt) {
			entry.lastAttempt = a.CompletedAt
		}
		if !a.IsSuccessful {
			continue
		}
		if a.Score > entry.bestScore || (a.Score == entry.bestScore && (entry.bestTime == 0 || a.TimeSpent < entry.bestTime)) {
			entry.bestScore = a.Score
			entry.bestTime = a.TimeSpent
		}
	}

	var entries []*bestEntry
	for _, entry := range byUser {
		if entry.bestScore > 0 {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].bestScore != entries[j].bestScore {
			return entries[i].bestScore > entries[j].bestScore
		}
		return entries[i].bestTime < entries[j].bestTime
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	resp := &dto.ChallengeLeaderboardResponse{
		ChallengeID: challengeID,
		Entries:     []dto.ChallengeLeaderboardEntry{},
	}
	for i, entry := range entries {
		name := ""
		if user, err := svc.sqlSvc.Users().GetUser(entry.userID); err == nil {
			name = user.Name
		}
		resp.Entries = append(resp.Entries, dto.ChallengeLeaderboardEntry{
			Rank:        i + 1,
			UserID:      entry.userID,
			Name:        name,
			BestScore:   entry.bestScore,
			BestTime:    entry.bestTime,
			Attempts:    entry.count,
			LastAttempt: entry.lastAttempt,
		})
	}
	return resp, nil
}

func (svc *ChallengeService) GetStats(challengeID string) (*dto.ChallengeStatsResponse, error) {
	challenge, err := svc.sqlSvc.Challenges().GetChallenge(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Challenge not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load challenge")
	}

	return &dto.ChallengeStatsResponse{
		ChallengeID:   challenge.ID,
		TotalAttempts: int64(challenge.Stats.Attempts),
		Successes:     int64(challenge.Stats.Successes),
		SuccessRate:   challenge.SuccessRate(),
		AverageScore:  float64(challenge.Stats.AverageScore),
		AverageTime:   float64(challenge.Stats.AverageTime),
	}, nil
}
