package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aadidev-sraj/project-lyra/model"
)

type MediaRepository struct {
	BaseRepository
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *MediaRepository) CreateMediaAsset(asset *model.MediaAsset) error {
	if asset.ID == "" {
		id, _ := uuid.NewV7()
		asset.ID = id.String()
	}
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = time.Now()
	return ds.db.Create(asset).Error
}

func (ds *MediaRepository) GetMediaAsset(id string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	if err := ds.db.Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (ds *MediaRepository) DeleteMediaAsset(id string) error {
	if err := ds.db.Where("media_asset_id = ?", id).Delete(&model.SectionMedia{}).Error; err != nil {
		return err
	}
	return ds.db.Where("id = ?", id).Delete(&model.MediaAsset{}).Error
}

// ==================== SECTION MEDIA METHODS ====================

func (ds *MediaRepository) CreateSectionMedia(sectionMedia *model.SectionMedia) error {
	if sectionMedia.ID == "" {
		id, _ := uuid.NewV7()
		sectionMedia.ID = id.String()
	}
	sectionMedia.CreatedAt = time.Now()
	return ds.db.Create(sectionMedia).Error
}

func (ds *MediaRepository) GetSectionMediaAssets(moduleID, sectionID string) ([]model.SectionMedia, error) {
	var sectionMedia []model.SectionMedia
	err := ds.db.Where("module_id = ? AND section_id = ? AND is_active = ?", moduleID, sectionID, true).
		Preload("MediaAsset").
		Find(&sectionMedia).Error
	if err != nil {
		return nil, err
	}
	return sectionMedia, nil
}

func (ds *MediaRepository) GetModuleMediaAssets(moduleID string) ([]model.SectionMedia, error) {
	var sectionMedia []model.SectionMedia
	err := ds.db.Where("module_id = ? AND is_active = ?", moduleID, true).
		Preload("MediaAsset").
		Find(&sectionMedia).Error
	if err != nil {
		return nil, err
	}
	return sectionMedia, nil
}

func (ds *MediaRepository) DeactivateSectionMediaByType(moduleID, sectionID, mediaType string) error {
	return ds.db.Model(&model.SectionMedia{}).
		Where("module_id = ? AND section_id = ? AND media_type = ?", moduleID, sectionID, mediaType).
		Update("is_active", false).Error
}

func (ds *MediaRepository) DeleteModuleMedia(moduleID string) error {
	return ds.db.Where("module_id = ?", moduleID).Delete(&model.SectionMedia{}).Error
}

func (ds *MediaRepository) TotalStorageBytes() (int64, error) {
	var totalSize int64
	err := ds.db.Model(&model.MediaAsset{}).
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&totalSize).Error
	return totalSize, err
}
