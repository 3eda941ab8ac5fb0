package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type ModuleService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	monitoringSvc *MonitoringService
}

const MODULE_SVC = "module_svc"

func (svc ModuleService) Id() string {
	return MODULE_SVC
}

func (svc *ModuleService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ModuleService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a title into a URL-safe identifier.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func decodeStringList(raw json.RawMessage) []string {
	var list []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &list)
	}
	return list
}

// buildModuleResponse maps a module row to its API shape. Quiz correct
// answers are stripped here so no handler can leak them.
func buildModuleResponse(module *model.Module, progress *model.Progress) dto.ModuleResponse {
	sections, _ := module.DecodeSections()

	resp := dto.ModuleResponse{
		ID:             module.ID,
		Title:          module.Title,
		Slug:           module.Slug,
		Description:    module.Description,
		Category:       module.Category,
		Difficulty:     module.Difficulty,
		Points:         module.Points,
		EstimatedTime:  module.EstimatedTime,
		Sections:       sections,
		Prerequisites:  decodeStringList(module.Prerequisites),
		Tags:           decodeStringList(module.Tags),
		AuthorID:       module.AuthorID,
		IsPublished:    module.IsPublished,
		Stats:          module.Stats,
		CompletionRate: module.CompletionRate(),
		CreatedAt:      module.CreatedAt,
		UpdatedAt:      module.UpdatedAt,
	}

	if quiz, err := module.DecodeQuiz(); err == nil && quiz != nil {
		view := dto.QuizView{PassingScore: quiz.PassingScore}
		for _, q := range quiz.Questions {
			view.Questions = append(view.Questions, dto.QuizQuestionView{
				ID:       q.ID,
				Question: q.Question,
				Type:     q.Type,
				Options:  q.Options,
				Points:   q.Points,
			})
		}
		resp.Quiz = &view
	}

	if progress != nil {
		summary := dto.NewProgressSummary(progress)
		resp.UserProgress = &summary
	}

	return resp
}

// ==================== CATALOG ====================

func (svc *ModuleService) ListModules(q dto.ListModulesQuery, userID string, includeUnpublished bool) (*dto.ModuleListResponse, error) {
	modules, total, err := svc.sqlSvc.Modules().ListModules(q, !includeUnpublished)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to list modules")
	}

	progressByModule := map[string]*model.Progress{}
	if userID != "" {
		records, err := svc.sqlSvc.Progress().GetAllUserProgress(userID)
		if err == nil {
			for i := range records {
				progressByModule[records[i].ModuleID] = &records[i]
			}
		}
	}

	resp := &dto.ModuleListResponse{
		Modules:    make([]dto.ModuleResponse, 0, len(modules)),
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}
	for i := range modules {
		resp.Modules = append(resp.Modules, buildModuleResponse(&modules[i], progressByModule[modules[i].ID]))
	}

	return resp, nil
}

func (svc *ModuleService) GetModule(moduleID, userID string) (*dto.ModuleResponse, error) {
	module, err := svc.sqlSvc.Modules().GetModule(moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Allow lookups by slug as well
		module, err = svc.sqlSvc.Modules().GetModuleBySlug(moduleID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Module not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load module")
	}

	var progress *model.Progress
	if userID != "" {
		if p, err := svc.sqlSvc.Progress().GetProgress(userID, module.ID); err == nil {
			progress = p
		}
	}

	resp := buildModuleResponse(module, progress)
	return &resp, nil
}

func (svc *ModuleService) GetCategories() (*dto.CategoriesResponse, error) {
	counts, err := svc.sqlSvc.Modules().CategoryCounts(true)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load categories")
	}
	return &dto.CategoriesResponse{Categories: counts}, nil
}

// ==================== ENROLLMENT ====================

func (svc *ModuleService) Enroll(userID, moduleID string) (*dto.EnrollResponse, error) {
	module, err := svc.sqlSvc.Modules().GetModule(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Module not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load module")
	}
	if !module.IsPublished {
		return nil, shared.NewNotFoundError(nil, "Module not found")
	}

	if _, err := svc.sqlSvc.Progress().GetProgress(userID, module.ID); err == nil {
		return nil, shared.NewBadRequestError(nil, "Already enrolled in this module")
	}

	progress, err := svc.sqlSvc.Progress().CreateProgress(userID, module.ID)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to enroll")
	}

	if err := svc.sqlSvc.Modules().IncrementEnrollments(module.ID); err != nil {
		log.WithError(err).WithField("module_id", module.ID).Warn("Failed to bump enrollment count")
	}

	svc.monitoringSvc.RecordEnrollment(module.Category)

	return &dto.EnrollResponse{
		Message:  "Successfully enrolled",
		Progress: dto.NewProgressSummary(progress),
	}, nil
}

// ==================== AUTHORING ====================

func (svc *ModuleService) CreateModule(authorID string, req dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	exists, err := svc.sqlSvc.Modules().TitleExists(req.Title)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to check module title")
	}
	if exists {
		return nil, shared.NewBadRequestError(nil, "A module with this title already exists")
	}

	module := &model.Module{
		Title:         strings.TrimSpace(req.Title),
		Slug:          slugify(req.Title),
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Points:        req.Points,
		EstimatedTime: req.EstimatedTime,
		AuthorID:      authorID,
		IsPublished:   req.IsPublished,
	}
	if module.Difficulty == "" {
		module.Difficulty = "beginner"
	}
	if module.Points == 0 {
		module.Points = 100
	}

	module.Sections, _ = json.Marshal(req.Sections)
	if req.Quiz != nil {
		module.Quiz, _ = json.Marshal(req.Quiz)
	}
	if req.Prerequisites != nil {
		module.Prerequisites, _ = json.Marshal(req.Prerequisites)
	}
	if req.Tags != nil {
		module.Tags, _ = json.Marshal(req.Tags)
	}

	if err := svc.sqlSvc.Modules().CreateModule(module); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to create module")
	}

	log.WithFields(log.Fields{"module_id": module.ID, "author_id": authorID}).Info("Module created")

	resp := buildModuleResponse(module, nil)
	return &resp, nil
}

// UpdateModule edits a module. Only the author or an admin may edit.
func (svc *ModuleService) UpdateModule(moduleID, actorID, actorRole string, req dto.UpdateModuleRequest) (*dto.ModuleResponse, error) {
	module, err := svc.sqlSvc.Modules().GetModule(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "Module not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load module")
	}

	if module.AuthorID != actorID && actorRole != model.RoleAdmin {
		return nil, shared.NewForbiddenError(nil, "Only the module author or an admin can modify this module")
	}

	if req.Title != nil && *req.Title != module.Title {
		exists, err := svc.sqlSvc.Modules().TitleExists(*req.Title)
		if err != nil {
			return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to check module title")
		}
		if exists {
			return nil, shared.NewBadRequestError(nil, "A module with this title already exists")
		}
		module.Title = strings.TrimSpace(*req.Title)
		module.Slug = slugify(*req.Title)
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.Category != nil {
		module.Category = *req.Category
	}
	if req.Difficulty != nil {
		module.Difficulty = *req.Difficulty
	}
	if req.Points != nil {
		module.Points = *req.Points
	}
	if req.EstimatedTime != nil {
		module.EstimatedTime = *req.EstimatedTime
	}
	if req.Sections != nil {
		module.Sections, _ = json.Marshal(req.Sections)
	}
	if req.Quiz != nil {
		module.Quiz, _ = json.Marshal(req.Quiz)
	}
	if req.Tags != nil {
		module.Tags, _ = json.Marshal(req.Tags)
	}
	if req.IsPublished != nil {
		module.IsPublished = *req.IsPublished
	}

	if err := svc.sqlSvc.Modules().UpdateModule(module); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update module")
	}

	resp := buildModuleResponse(module, nil)
	return &resp, nil
}

// DeleteModule removes the module along with every progress record that
// points at it. Only the author or an admin may delete.
func (svc *ModuleService) DeleteModule(moduleID, actorID, actorRole string) error {
	module, err := svc.sqlSvc.Modules().GetModule(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "Module not found")
		}
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load module")
	}

	if module.AuthorID != actorID && actorRole != model.RoleAdmin {
		return shared.NewForbiddenError(nil, "Only the module author or an admin can modify this module")
	}

	if err := svc.sqlSvc.Progress().DeleteModuleProgress(moduleID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete module progress")
	}
	if err := svc.sqlSvc.Media().DeleteModuleMedia(moduleID); err != nil {
		log.WithError(err).WithField("module_id", moduleID).Warn("Failed to delete module media links")
	}
	if err := svc.sqlSvc.Modules().DeleteModule(moduleID); err != nil {
		return shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to delete module")
	}

	log.WithField("module_id", moduleID).Info("Module deleted")
	return nil
}
