package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ProgressService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	moduleSvc     *ModuleService
	monitoringSvc *MonitoringService
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.moduleSvc = svc.Service(MODULE_SVC).(*ModuleService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

func (svc *ProgressService) loadProgressAndModule(userID, moduleID string) (*model.Progress, *model.Module, error) {
	progress, err := svc.sqlSvc.Progress().GetProgressWithModule(userID, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, shared.NewNotFoundError(nil, "Progress not found. Start the module first.")
		}
		return nil, nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	module := progress.Module
	if module == nil {
		module, err = svc.sqlSvc.Modules().GetModule(moduleID)
		if err != nil {
			return nil, nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load module")
		}
	}

	return progress, module, nil
}

// ==================== LISTING ====================

func (svc *ProgressService) ListProgress(userID, status string, page, limit int) (*dto.ProgressListResponse, error) {
	records, total, err := svc.sqlSvc.Progress().ListUserProgress(userID, status, page, limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to list progress")
	}

	resp := &dto.ProgressListResponse{
		Progress:   make([]dto.ProgressDetailResponse, 0, len(records)),
		Pagination: dto.NewPagination(page, limit, total),
	}
	for i := range records {
		resp.Progress = append(resp.Progress, buildProgressDetail(&records[i]))
	}
	return resp, nil
}

func (svc *ProgressService) GetModuleProgress(userID, moduleID string) (*dto.ProgressDetailResponse, error) {
	progress, _, err := svc.loadProgressAndModule(userID, moduleID)
	if err != nil {
		return nil, err
	}
	detail := buildProgressDetail(progress)
	return &detail, nil
}

func buildProgressDetail(progress *model.Progress) dto.ProgressDetailResponse {
	detail := dto.ProgressDetailResponse{
		ProgressSummary:   dto.NewProgressSummary(progress),
		SectionsCompleted: progress.DecodeSectionsCompleted(),
		QuizAttempts:      progress.DecodeQuizAttempts(),
		Bookmarks:         progress.DecodeBookmarks(),
	}
	if progress.Module != nil {
		resp := buildModuleResponse(progress.Module, nil)
		detail.Module = &resp
	}
	return detail
}

// ==================== SECTION COMPLETION ====================

func (svc *ProgressService) CompleteSection(userID string, req dto.CompleteSectionRequest) (*dto.CompleteSectionResponse, error) {
	module, err := svc.sqlSvc.Modules().GetModule(req.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Module not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load module")
	}

	progress, err := svc.sqlSvc.Progress().GetProgress(userID, req.ModuleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress, err = svc.sqlSvc.Progress().CreateProgress(userID, module.ID)
		if err != nil {
			return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to start module")
		}
		if err := svc.sqlSvc.Modules().IncrementEnrollments(module.ID); err != nil {
			log.WithError(err).WithField("module_id", module.ID).Warn("Failed to bump enrollment count")
		}
	} else if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	sections, err := module.DecodeSections()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to decode module sections")
	}

	isNewSection, err := applySectionCompletion(progress, sections, req.SectionID, req.TimeSpent)
	if err != nil {
		return nil, shared.NewBadRequestError(nil, "Section not found in module")
	}
	if !isNewSection {
		return &dto.CompleteSectionResponse{
			Progress:        dto.NewProgressSummary(progress),
			IsNewCompletion: false,
		}, nil
	}

	var achievements []dto.AchievementResponse
	if progress.Progress >= 100 {
		_, achievements, err = svc.maybeCompleteModule(userID, progress, module)
		if err != nil {
			return nil, err
		}
	}

	if err := svc.sqlSvc.Progress().UpdateProgress(progress); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save progress")
	}

	svc.RefreshStreak(userID)

	return &dto.CompleteSectionResponse{
		Progress:        dto.NewProgressSummary(progress),
		IsNewCompletion: true,
		Achievements:    achievements,
	}, nil
}

var errSectionNotFound = errors.New("section not found in module")

// applySectionCompletion records one section completion on the progress
// row and recomputes the percentage. Re-submitting a completed section is
// a no-op: no append, no percentage change, no time accrual.
func applySectionCompletion(progress *model.Progress, sections []model.Section, sectionID string, timeSpent int) (bool, error) {
	found := false
	for _, s := range sections {
		if s.ID == sectionID {
			found = true
			break
		}
	}
	if !found {
		return false, errSectionNotFound
	}

	if progress.HasCompletedSection(sectionID) {
		return false, nil
	}

	completed := append(progress.DecodeSectionsCompleted(), model.SectionCompletion{
		SectionID:   sectionID,
		CompletedAt: time.Now(),
	})
	progress.SectionsCompleted, _ = json.Marshal(completed)
	progress.Progress = model.CalculateProgress(len(completed), len(sections))
	progress.TimeSpent += timeSpent
	progress.LastAccessed = time.Now()
	if progress.Status == shared.StatusNotStarted {
		progress.Status = shared.StatusInProgress
	}
	return true, nil
}

// markCompleted flips the row to completed, stamping completedAt and the
// certificate exactly once. Reports whether this call made the transition.
func markCompleted(progress *model.Progress) bool {
	if progress.Status == shared.StatusCompleted {
		return false
	}
	now := time.Now()
	progress.Status = shared.StatusCompleted
	progress.CompletedAt = &now
	if !progress.CertificateIssued {
		certID, _ := uuid.NewV7()
		progress.CertificateIssued = true
		progress.CertificateID = certID.String()
	}
	return true
}

// maybeCompleteModule applies the one-time completion side effects.
// Callers decide when completion is due (all sections done, or a passing
// quiz) and persist the progress row afterwards.
func (svc *ProgressService) maybeCompleteModule(userID string, progress *model.Progress, module *model.Module) (bool, []dto.AchievementResponse, error) {
	if !markCompleted(progress) {
		return false, nil, nil
	}

	if err := svc.sqlSvc.Users().RecordModuleCompletion(userID, module.Points); err != nil {
		return false, nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to record completion")
	}
	if err := svc.sqlSvc.Modules().IncrementCompletions(module.ID); err != nil {
		log.WithError(err).WithField("module_id", module.ID).Warn("Failed to bump completion count")
	}

	svc.monitoringSvc.RecordModuleCompletion(module.Category)
	log.WithFields(log.Fields{"user_id": userID, "module_id": module.ID}).Info("Module completed")

	achievements := svc.CheckAchievements(userID, model.AchievementModuleCompleted, module.ID)
	return true, achievements, nil
}

// ==================== QUIZ SUBMISSION ====================

func (svc *ProgressService) SubmitQuiz(userID string, req dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	progress, module, err := svc.loadProgressAndModule(userID, req.ModuleID)
	if err != nil {
		return nil, err
	}

	quiz, err := module.DecodeQuiz()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to decode module quiz")
	}
	if quiz == nil {
		return nil, shared.NewBadRequestError(nil, "This module does not have a quiz")
	}

	score, correct, answers := GradeQuiz(quiz, req.Answers)
	isPassed := score >= quiz.PassingScore

	attempts := progress.DecodeQuizAttempts()
	attempt := model.QuizAttempt{
		AttemptNumber: len(attempts) + 1,
		Score:         score,
		Answers:       answers,
		TimeSpent:     req.TimeSpent,
		CompletedAt:   time.Now(),
	}
	attempts = append(attempts, attempt)
	progress.QuizAttempts, _ = json.Marshal(attempts)

	if score > progress.BestQuizScore {
		progress.BestQuizScore = score
	}
	progress.TimeSpent += req.TimeSpent
	progress.LastAccessed = time.Now()

	svc.monitoringSvc.RecordQuizSubmission(isPassed)

	var isNew bool
	var achievements []dto.AchievementResponse
	if isPassed {
		isNew, achievements, err = svc.maybeCompleteModule(userID, progress, module)
		if err != nil {
			return nil, err
		}
	}

	if err := svc.sqlSvc.Progress().UpdateProgress(progress); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save progress")
	}

	svc.RefreshStreak(userID)

	return &dto.QuizResultResponse{
		Score:           score,
		IsPassed:        isPassed,
		CorrectAnswers:  correct,
		TotalQuestions:  len(quiz.Questions),
		PassingScore:    quiz.PassingScore,
		AttemptNumber:   attempt.AttemptNumber,
		TimeSpent:       req.TimeSpent,
		Progress:        dto.NewProgressSummary(progress),
		IsNewCompletion: isNew,
		Achievements:    achievements,
	}, nil
}

// GradeQuiz scores submitted answers positionally against the quiz
// questions. Unanswered questions count as wrong.
func GradeQuiz(quiz *model.Quiz, submitted []dto.QuizAnswerSubmission) (score, correct int, answers []model.QuizAnswer) {
	for i, question := range quiz.Questions {
		questionID := question.ID
		if questionID == "" {
			questionID = quizQuestionFallbackID(i)
		}

		answer := model.QuizAnswer{QuestionID: questionID}
		if i < len(submitted) {
			answer.Answer = submitted[i].Answer
			answer.TimeSpent = submitted[i].TimeSpent
			answer.IsCorrect = quizAnswerMatches(submitted[i].Answer, question.CorrectAnswer)
		}
		if answer.IsCorrect {
			correct++
		}
		answers = append(answers, answer)
	}

	if len(quiz.Questions) > 0 {
		score = model.CalculateProgress(correct, len(quiz.Questions))
	}
	return score, correct, answers
}

func quizQuestionFallbackID(index int) string {
	return "q" + strconv.Itoa(index+1)
}

// quizAnswerMatches compares via canonical JSON values so numbers and
// nested structures compare consistently regardless of decoder.
func quizAnswerMatches(submitted, expected interface{}) bool {
	return reflect.DeepEqual(canonicalJSON(submitted), canonicalJSON(expected))
}

func canonicalJSON(v interface{}) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// ==================== PROGRESS ACTIONS ====================

func (svc *ProgressService) UpdateProgress(userID string, req dto.UpdateProgressRequest) (*dto.UpdateProgressResponse, error) {
	var progress *model.Progress
	var module *model.Module
	var message string

	switch req.Action {
	case shared.ProgressActionStart:
		existing, err := svc.sqlSvc.Progress().GetProgress(userID, req.ModuleID)
		if err == nil {
			progress = existing
			message = "Module resumed"
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			mod, err := svc.sqlSvc.Modules().GetModule(req.ModuleID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, shared.NewNotFoundError(nil, "Module not found")
				}
				return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load module")
			}
			module = mod
			progress, err = svc.sqlSvc.Progress().CreateProgress(userID, module.ID)
			if err != nil {
				return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to start module")
			}
			if err := svc.sqlSvc.Modules().IncrementEnrollments(module.ID); err != nil {
				log.WithError(err).WithField("module_id", module.ID).Warn("Failed to bump enrollment count")
			}
			message = "Module started"
		} else {
			return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
		}

	default:
		existing, mod, err := svc.loadProgressAndModule(userID, req.ModuleID)
		if err != nil {
			return nil, err
		}
		progress = existing
		module = mod
		message = "Progress updated"
	}

	var achievements []dto.AchievementResponse
	if req.Action == shared.ProgressActionSectionComplete {
		var payload struct {
			SectionID string `json:"section_id"`
		}
		if len(req.Data) > 0 {
			_ = json.Unmarshal(req.Data, &payload)
		}
		if payload.SectionID != "" {
			sections, err := module.DecodeSections()
			if err != nil {
				return nil, shared.NewInternalError(err, "Failed to decode module sections")
			}
			isNewSection, err := applySectionCompletion(progress, sections, payload.SectionID, 0)
			if err != nil {
				return nil, shared.NewBadRequestError(nil, "Section not found in module")
			}
			if isNewSection && progress.Progress >= 100 {
				_, achievements, err = svc.maybeCompleteModule(userID, progress, module)
				if err != nil {
					return nil, err
				}
			}
		}
		message = "Section completion recorded"
	}

	progress.TimeSpent += req.TimeSpent
	entries := append(progress.DecodeActivityLog(), model.ProgressActivity{
		Action:    req.Action,
		Timestamp: time.Now(),
		Data:      req.Data,
		TimeSpent: req.TimeSpent,
	})
	progress.ActivityLog, _ = json.Marshal(entries)
	progress.LastAccessed = time.Now()

	if err := svc.sqlSvc.Progress().UpdateProgress(progress); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save progress")
	}

	svc.RefreshStreak(userID)

	return &dto.UpdateProgressResponse{
		Success:      true,
		Message:      message,
		Progress:     dto.NewProgressSummary(progress),
		Achievements: achievements,
	}, nil
}

// RefreshStreak recomputes the daily learning streak from distinct
// progress and activity days, persists any drift to the user's stats, and
// fires the weekly streak badge when the streak lands exactly on seven.
func (svc *ProgressService) RefreshStreak(userID string) int {
	days, err := svc.sqlSvc.Progress().DistinctProgressDays(userID, 400)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to load progress days")
	}
	activityDays, err := svc.sqlSvc.Activities().DistinctActivityDays(userID, 400)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to load activity days")
	}

	current := computeStreak(append(days, activityDays...), time.Now())

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to load user for streak update")
		return current
	}

	longest := user.Stats.LongestStreak
	if current > longest {
		longest = current
	}

	if current != user.Stats.CurrentStreak || longest != user.Stats.LongestStreak {
		if err := svc.sqlSvc.Users().UpdateStreak(userID, current, longest); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to update streak")
		}
	} else if err := svc.sqlSvc.Users().TouchLastActivity(userID); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to touch last activity")
	}

	if current == 7 {
		svc.CheckAchievements(userID, model.AchievementWeekStreak, "")
	}
	return current
}

// ==================== BOOKMARKS ====================

func (svc *ProgressService) AddBookmark(userID string, req dto.BookmarkRequest) (*dto.ProgressDetailResponse, error) {
	progress, _, err := svc.loadProgressAndModule(userID, req.ModuleID)
	if err != nil {
		return nil, err
	}

	bookmarks := progress.DecodeBookmarks()
	replaced := false
	for i := range bookmarks {
		if bookmarks[i].SectionID == req.SectionID {
			bookmarks[i].Note = req.Note
			bookmarks[i].CreatedAt = time.Now()
			replaced = true
			break
		}
	}
	if !replaced {
		bookmarks = append(bookmarks, model.Bookmark{
			SectionID: req.SectionID,
			Note:      req.Note,
			CreatedAt: time.Now(),
		})
	}
	progress.Bookmarks, _ = json.Marshal(bookmarks)

	if err := svc.sqlSvc.Progress().UpdateProgress(progress); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save bookmark")
	}

	detail := buildProgressDetail(progress)
	return &detail, nil
}

func (svc *ProgressService) RemoveBookmark(userID, moduleID, sectionID string) (*dto.ProgressDetailResponse, error) {
	progress, _, err := svc.loadProgressAndModule(userID, moduleID)
	if err != nil {
		return nil, err
	}

	bookmarks := progress.DecodeBookmarks()
	kept := bookmarks[:0]
	for _, b := range bookmarks {
		if b.SectionID != sectionID {
			kept = append(kept, b)
		}
	}
	progress.Bookmarks, _ = json.Marshal(kept)

	if err := svc.sqlSvc.Progress().UpdateProgress(progress); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to remove bookmark")
	}

	detail := buildProgressDetail(progress)
	return &detail, nil
}

func (svc *ProgressService) ListBookmarks(userID string) (*dto.BookmarkListResponse, error) {
	records, err := svc.sqlSvc.Progress().GetAllUserProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load bookmarks")
	}

	resp := &dto.BookmarkListResponse{Bookmarks: []dto.BookmarkListItem{}}
	for i := range records {
		p := &records[i]
		title, slug := "", ""
		if p.Module != nil {
			title, slug = p.Module.Title, p.Module.Slug
		}
		for _, b := range p.DecodeBookmarks() {
			resp.Bookmarks = append(resp.Bookmarks, dto.BookmarkListItem{
				ModuleID:    p.ModuleID,
				ModuleTitle: title,
				ModuleSlug:  slug,
				SectionID:   b.SectionID,
				Note:        b.Note,
				CreatedAt:   b.CreatedAt,
			})
		}
	}
	resp.Total = len(resp.Bookmarks)
	return resp, nil
}

// ==================== ANALYTICS ====================

func (svc *ProgressService) GetAnalytics(userID string) (*dto.ProgressAnalyticsResponse, error) {
	records, err := svc.sqlSvc.Progress().GetAllUserProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load user")
	}

	statusAgg := map[string]*dto.ProgressStatusStat{}
	categoryAgg := map[string]*dto.CategoryStat{}
	dailyAgg := map[string]*dto.DailyProgressStat{}
	var totalTime int64

	cutoff := time.Now().AddDate(0, 0, -30)

	for i := range records {
		p := &records[i]
		totalTime += int64(p.TimeSpent)

		stat, ok := statusAgg[p.Status]
		if !ok {
			stat = &dto.ProgressStatusStat{Status: p.Status}
			statusAgg[p.Status] = stat
		}
		stat.Count++
		stat.TotalTime += int64(p.TimeSpent)
		stat.AvgScore += float64(p.BestQuizScore)

		if p.Module != nil {
			cat, ok := categoryAgg[p.Module.Category]
			if !ok {
				cat = &dto.CategoryStat{Category: p.Module.Category}
				categoryAgg[p.Module.Category] = cat
			}
			if p.Status == shared.StatusCompleted {
				cat.Completed++
			} else if p.Status == shared.StatusInProgress {
				cat.InProgress++
			}
			cat.TotalTime += int64(p.TimeSpent)
		}

		if p.LastAccessed.After(cutoff) {
			day := p.LastAccessed.Format("2006-01-02")
			daily, ok := dailyAgg[day]
			if !ok {
				daily = &dto.DailyProgressStat{Date: day}
				dailyAgg[day] = daily
			}
			daily.Count++
			daily.AvgProgress += float64(p.Progress)
		}
	}

	resp := &dto.ProgressAnalyticsResponse{
		StatusSummary: []dto.ProgressStatusStat{},
		Categories:    []dto.CategoryStat{},
		DailyProgress: []dto.DailyProgressStat{},
		LearningStreak: dto.StreakInfo{
			Current: user.Stats.CurrentStreak,
			Longest: user.Stats.LongestStreak,
		},
	}
	for _, stat := range statusAgg {
		if stat.Count > 0 {
			stat.AvgScore /= float64(stat.Count)
		}
		resp.StatusSummary = append(resp.StatusSummary, *stat)
	}
	for _, cat := range categoryAgg {
		resp.Categories = append(resp.Categories, *cat)
	}
	for _, daily := range dailyAgg {
		if daily.Count > 0 {
			daily.AvgProgress /= float64(daily.Count)
		}
		resp.DailyProgress = append(resp.DailyProgress, *daily)
	}

	for i := range records {
		if i >= 5 {
			break
		}
		resp.Recent = append(resp.Recent, dto.NewProgressSummary(&records[i]))
	}

	attemptCount, _ := svc.sqlSvc.Challenges().CountUserAttempts(userID)
	resp.Summary = dto.UserStatsSummary{
		TotalModulesStarted:    int64(len(records)),
		TotalChallengeAttempts: attemptCount,
		TotalTimeSpent:         totalTime,
	}

	return resp, nil
}

// GetRecommendations suggests published modules the user has not started,
// weighted toward categories the user has already completed modules in.
func (svc *ProgressService) GetRecommendations(userID string, limit int) (*dto.RecommendationsResponse, error) {
	if limit <= 0 {
		limit = 5
	}

	records, err := svc.sqlSvc.Progress().GetAllUserProgress(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load progress")
	}

	var enrolledIDs []string
	categorySet := map[string]bool{}
	for i := range records {
		enrolledIDs = append(enrolledIDs, records[i].ModuleID)
		if records[i].Status == shared.StatusCompleted && records[i].Module != nil {
			categorySet[records[i].Module.Category] = true
		}
	}
	var categories []string
	for cat := range categorySet {
		categories = append(categories, cat)
	}

	modules, err := svc.sqlSvc.Modules().GetRecommendedModules(enrolledIDs, categories, limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load recommendations")
	}

	resp := &dto.RecommendationsResponse{Modules: []dto.ModuleResponse{}}
	for i := range modules {
		resp.Modules = append(resp.Modules, buildModuleResponse(&modules[i], nil))
	}
	return resp, nil
}

// ==================== ACHIEVEMENTS ====================

// CheckAchievements awards any achievement of the given type the user has
// not unlocked yet and returns the newly granted ones.
func (svc *ProgressService) CheckAchievements(userID, achievementType, moduleID string) []dto.AchievementResponse {
	achievement, err := svc.sqlSvc.Users().GetAchievementByType(achievementType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithError(err).Warn("Failed to look up achievement")
		}
		return nil
	}

	has, err := svc.sqlSvc.Users().HasAchievement(userID, achievement.ID)
	if err != nil || has {
		return nil
	}

	grant, err := svc.sqlSvc.Users().GrantAchievement(userID, achievement.ID, moduleID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to grant achievement")
		return nil
	}

	if achievement.Points > 0 {
		if err := svc.sqlSvc.Users().AddPoints(userID, achievement.Points); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to add achievement points")
		}
	}

	log.WithFields(log.Fields{"user_id": userID, "achievement": achievement.Type}).Info("Achievement unlocked")

	return []dto.AchievementResponse{{
		ID:          achievement.ID,
		Type:        achievement.Type,
		Title:       achievement.Title,
		Description: achievement.Description,
		Points:      achievement.Points,
		UnlockedAt:  grant.UnlockedAt,
	}}
}
