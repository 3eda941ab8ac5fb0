package repositories

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
)

// ModuleRepository handles the learning module catalog
type ModuleRepository struct {
	BaseRepository
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ModuleRepository) CreateModule(module *model.Module) error {
	if module.ID == "" {
		id, _ := uuid.NewV7()
		module.ID = id.String()
	}
	module.CreatedAt = time.Now()
	module.UpdatedAt = time.Now()
	return ds.db.Create(module).Error
}

func (ds *ModuleRepository) GetModule(moduleID string) (*model.Module, error) {
	var module model.Module
	if err := ds.db.Where("id = ?", moduleID).First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (ds *ModuleRepository) GetModuleBySlug(slug string) (*model.Module, error) {
	var module model.Module
	if err := ds.db.Where("slug = ?", slug).First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (ds *ModuleRepository) TitleExists(title string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.Module{}).
		Where("LOWER(title) = LOWER(?)", title).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ds *ModuleRepository) UpdateModule(module *model.Module) error {
	module.UpdatedAt = time.Now()
	return ds.db.Save(module).Error
}

func (ds *ModuleRepository) DeleteModule(moduleID string) error {
	return ds.db.Where("id = ?", moduleID).Delete(&model.Module{}).Error
}

func (ds *ModuleRepository) ListModules(q dto.ListModulesQuery, publishedOnly bool) ([]model.Module, int64, error) {
	var modules []model.Module
	var total int64

	query := ds.db.Model(&model.Module{})

	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Difficulty != "" {
		query = query.Where("difficulty = ?", q.Difficulty)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	query.Count(&total)

	order := "created_at DESC"
	switch q.SortBy {
	case "title":
		order = "title ASC"
	case "points":
		order = "points DESC"
	case "popular":
		order = "stats_enrollments DESC"
	case "oldest":
		order = "created_at ASC"
	}

	err := query.Order(order).
		Scopes(paginate(q.Page, q.Limit)).
		Find(&modules).Error
	if err != nil {
		return nil, 0, err
	}

	return modules, total, nil
}

func (ds *ModuleRepository) GetModulesByIDs(ids []string) ([]model.Module, error) {
	var modules []model.Module
	if len(ids) == 0 {
		return modules, nil
	}
	err := ds.db.Where("id IN ?", ids).Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

// GetRecommendedModules returns published modules the user has not enrolled in,
// preferring the user's chosen categories first.
func (ds *ModuleRepository) GetRecommendedModules(excludeIDs, preferredCategories []string, limit int) ([]model.Module, error) {
	var modules []model.Module

	query := ds.db.Where("is_published = ?", true)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	if len(preferredCategories) > 0 {
		var preferred []model.Module
		err := query.Session(&gorm.Session{}).
			Where("category IN ?", preferredCategories).
			Order("stats_enrollments DESC").
			Limit(limit).
			Find(&preferred).Error
		if err != nil {
			return nil, err
		}
		modules = preferred
		if len(modules) >= limit {
			return modules[:limit], nil
		}
		for _, m := range modules {
			excludeIDs = append(excludeIDs, m.ID)
		}
	}

	var rest []model.Module
	restQuery := ds.db.Where("is_published = ?", true)
	if len(excludeIDs) > 0 {
		restQuery = restQuery.Where("id NOT IN ?", excludeIDs)
	}
	err := restQuery.Order("stats_enrollments DESC").
		Limit(limit - len(modules)).
		Find(&rest).Error
	if err != nil {
		return nil, err
	}

	return append(modules, rest...), nil
}

// ==================== STATS METHODS ====================

func (ds *ModuleRepository) IncrementEnrollments(moduleID string) error {
	return ds.db.Model(&model.Module{}).Where("id = ?", moduleID).Updates(map[string]interface{}{
		"stats_enrollments": gorm.Expr("stats_enrollments + 1"),
		"updated_at":        time.Now(),
	}).Error
}

func (ds *ModuleRepository) IncrementCompletions(moduleID string) error {
	return ds.db.Model(&model.Module{}).Where("id = ?", moduleID).Updates(map[string]interface{}{
		"stats_completions": gorm.Expr("stats_completions + 1"),
		"updated_at":        time.Now(),
	}).Error
}

func (ds *ModuleRepository) CategoryCounts(publishedOnly bool) ([]dto.CategoryCount, error) {
	var counts []dto.CategoryCount
	query := ds.db.Model(&model.Module{}).
		Select("category, COUNT(*) as count")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Group("category").Order("count DESC").Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (ds *ModuleRepository) CountModules(publishedOnly bool) (int64, error) {
	var count int64
	query := ds.db.Model(&model.Module{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}
