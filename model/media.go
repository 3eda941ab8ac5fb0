package model

import "time"

// MediaAsset is a file stored in object storage and referenced by module
// sections (videos, lab attachments, thumbnails).
type MediaAsset struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	FileName    string    `json:"file_name" gorm:"not null"`
	FileType    string    `json:"file_type" gorm:"not null;index"` // video, attachment, thumbnail
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	Bucket      string    `json:"bucket"`
	ObjectKey   string    `json:"object_key" gorm:"not null"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SectionMedia links an asset to a section of a module.
type SectionMedia struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ModuleID     string    `json:"module_id" gorm:"not null;index"`
	SectionID    string    `json:"section_id" gorm:"not null;index"`
	MediaAssetID string    `json:"media_asset_id" gorm:"not null"`
	MediaType    string    `json:"media_type" gorm:"not null"` // video, attachment, thumbnail
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`

	MediaAsset MediaAsset `json:"media_asset" gorm:"foreignKey:MediaAssetID"`
}
