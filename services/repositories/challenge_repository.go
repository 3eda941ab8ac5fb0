package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
)

// ChallengeRepository handles challenges and their attempts
type ChallengeRepository struct {
	BaseRepository
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ChallengeRepository) CreateChallenge(challenge *model.Challenge) error {
	if challenge.ID == "" {
		id, _ := uuid.NewV7()
		challenge.ID = id.String()
	}
	challenge.CreatedAt = time.Now()
	challenge.UpdatedAt = time.Now()
	return ds.db.Create(challenge).Error
}

func (ds *ChallengeRepository) GetChallenge(challengeID string) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := ds.db.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (ds *ChallengeRepository) UpdateChallenge(challenge *model.Challenge) error {
	challenge.UpdatedAt = time.Now()
	return ds.db.Save(challenge).Error
}

func (ds *ChallengeRepository) DeleteChallenge(challengeID string) error {
	return ds.db.Where("id = ?", challengeID).Delete(&model.Challenge{}).Error
}

func (ds *ChallengeRepository) ListChallenges(q dto.ListChallengesQuery, activeOnly bool) ([]model.Challenge, int64, error) {
	var challenges []model.Challenge
	var total int64

	query := ds.db.Model(&model.Challenge{})

	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Difficulty != "" {
		query = query.Where("difficulty = ?", q.Difficulty)
	}
	query.Count(&total)

	err := query.Order("created_at DESC").
		Scopes(paginate(q.Page, q.Limit)).
		Find(&challenges).Error
	if err != nil {
		return nil, 0, err
	}

	return challenges, total, nil
}

func (ds *ChallengeRepository) UpdateChallengeStats(challengeID string, stats model.ChallengeStats) error {
	return ds.db.Model(&model.Challenge{}).Where("id = ?", challengeID).Updates(map[string]interface{}{
		"stats_attempts":      stats.Attempts,
		"stats_successes":     stats.Successes,
		"stats_average_time":  stats.AverageTime,
		"stats_average_score": stats.AverageScore,
		"updated_at":          time.Now(),
	}).Error
}

func (ds *ChallengeRepository) CountChallenges(activeOnly bool) (int64, error) {
	var count int64
	query := ds.db.Model(&model.Challenge{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

// ==================== ATTEMPT METHODS ====================

func (ds *ChallengeRepository) CreateAttempt(attempt *model.ChallengeAttempt) error {
	if attempt.ID == "" {
		id, _ := uuid.NewV7()
		attempt.ID = id.String()
	}
	attempt.CreatedAt = time.Now()
	return ds.db.Create(attempt).Error
}

func (ds *ChallengeRepository) GetChallengeAttempts(challengeID string) ([]model.ChallengeAttempt, error) {
	var attempts []model.ChallengeAttempt
	err := ds.db.Where("challenge_id = ?", challengeID).
		Order("created_at ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (ds *ChallengeRepository) GetUserChallengeAttempts(userID, challengeID string) ([]model.ChallengeAttempt, error) {
	var attempts []model.ChallengeAttempt
	err := ds.db.Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (ds *ChallengeRepository) ListUserAttempts(userID string, page, limit int) ([]model.ChallengeAttempt, int64, error) {
	var attempts []model.ChallengeAttempt
	var total int64

	query := ds.db.Model(&model.ChallengeAttempt{}).Where("user_id = ?", userID)
	query.Count(&total)

	err := query.Preload("Challenge").
		Order("created_at DESC").
		Scopes(paginate(page, limit)).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

// HasSolvedChallenge reports whether the user already has a successful attempt,
// used to award completion points only once per challenge.
func (ds *ChallengeRepository) HasSolvedChallenge(userID, challengeID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.ChallengeAttempt{}).
		Where("user_id = ? AND challenge_id = ? AND is_successful = ?", userID, challengeID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AttemptRank returns the 1-based rank of a score among successful attempts.
func (ds *ChallengeRepository) AttemptRank(challengeID string, score int) (int, error) {
	var higher int64
	err := ds.db.Model(&model.ChallengeAttempt{}).
		Where("challenge_id = ? AND is_successful = ? AND score > ?", challengeID, true, score).
		Count(&higher).Error
	if err != nil {
		return 0, err
	}
	return int(higher) + 1, nil
}

func (ds *ChallengeRepository) CountUserAttempts(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.ChallengeAttempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (ds *ChallengeRepository) CountUserSuccessfulAttempts(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.ChallengeAttempt{}).
		Where("user_id = ? AND is_successful = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (ds *ChallengeRepository) CountDistinctSolvedChallenges(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.ChallengeAttempt{}).
		Where("user_id = ? AND is_successful = ?", userID, true).
		Distinct("challenge_id").
		Count(&count).Error
	return count, err
}

func (ds *ChallengeRepository) DeleteUserAttempts(userID string) error {
	return ds.db.Where("user_id = ?", userID).Delete(&model.ChallengeAttempt{}).Error
}

func (ds *ChallengeRepository) DeleteChallengeAttempts(challengeID string) error {
	return ds.db.Where("challenge_id = ?", challengeID).Delete(&model.ChallengeAttempt{}).Error
}
