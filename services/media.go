package services

import (
	goContext "context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/aadidev-sraj/project-lyra/dto"
	"github.com/aadidev-sraj/project-lyra/model"
	"github.com/aadidev-sraj/project-lyra/shared"
)

type MediaService struct {
	context.DefaultService
	sqlSvc   *PostgresService
	minioSvc *MinIOService
	baseURL  string
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.baseURL = os.Getenv("BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== MEDIA UPLOAD METHODS ====================

func (svc *MediaService) UploadSectionVideo(moduleID, sectionID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidVideoFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid video file format. Supported: MP4, MOV, WEBM")
	}

	// Max 200MB for lab walkthrough videos
	if file.Size > 200*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Video file too large. Maximum size: 200MB")
	}

	return svc.uploadFile(file, "video", moduleID, sectionID)
}

func (svc *MediaService) UploadSectionAttachment(moduleID, sectionID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidAttachmentFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid attachment format. Supported: PDF, ZIP, TXT, PCAP, CSV")
	}

	if file.Size > 50*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Attachment too large. Maximum size: 50MB")
	}

	return svc.uploadFile(file, "attachment", moduleID, sectionID)
}

func (svc *MediaService) UploadModuleThumbnail(moduleID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG, WEBP")
	}

	if file.Size > 2*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Thumbnail file too large. Maximum size: 2MB")
	}

	return svc.uploadFile(file, "thumbnail", moduleID, "")
}

func (svc *MediaService) uploadFile(file *multipart.FileHeader, fileType, moduleID, sectionID string) (*dto.MediaUploadResponse, error) {
	ext := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%s_%s_%d%s", moduleID, fileType, time.Now().Unix(), ext)

	var subDir string
	switch fileType {
	case "video":
		subDir = "videos"
	case "attachment":
		subDir = "attachments"
	case "thumbnail":
		subDir = "thumbnails"
	default:
		subDir = "misc"
	}

	objectName := fmt.Sprintf("%s/%s", subDir, fileName)
	ctx := goContext.Background()

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	if err := svc.minioSvc.Put(ctx, objectName, src, file.Size, file.Header.Get("Content-Type")); err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload file to storage")
	}

	// Presigned URL valid for 24 hours, falls back to a direct path
	fileURL, err := svc.minioSvc.PresignedURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		log.WithError(err).Warn("Failed to generate presigned URL")
		fileURL = fmt.Sprintf("%s/%s/%s", svc.baseURL, svc.minioSvc.Bucket(), objectName)
	}

	mediaAsset := &model.MediaAsset{
		FileName:    fileName,
		FileType:    fileType,
		ContentType: file.Header.Get("Content-Type"),
		FileSize:    file.Size,
		Bucket:      svc.minioSvc.Bucket(),
		ObjectKey:   objectName,
		URL:         fileURL,
	}

	if err := svc.sqlSvc.Media().CreateMediaAsset(mediaAsset); err != nil {
		// Clean up the stored object if the database save fails
		_ = svc.minioSvc.Remove(ctx, objectName)
		return nil, svc.sqlSvc.HandleError(err)
	}

	if sectionID != "" {
		// Replace any previous asset of the same kind for this section
		if err := svc.sqlSvc.Media().DeactivateSectionMediaByType(moduleID, sectionID, fileType); err != nil {
			log.WithError(err).Warn("Failed to deactivate previous section media")
		}

		sectionMedia := &model.SectionMedia{
			ModuleID:     moduleID,
			SectionID:    sectionID,
			MediaAssetID: mediaAsset.ID,
			MediaType:    fileType,
			IsActive:     true,
		}

		if err := svc.sqlSvc.Media().CreateSectionMedia(sectionMedia); err != nil {
			log.WithError(err).Warn("Failed to link media to section")
		}
	}

	log.WithFields(log.Fields{"file": fileName, "object": objectName}).Info("Media uploaded")

	return &dto.MediaUploadResponse{
		ID:       mediaAsset.ID,
		URL:      mediaAsset.URL,
		FileName: mediaAsset.FileName,
		FileType: mediaAsset.FileType,
		FileSize: mediaAsset.FileSize,
	}, nil
}

// ==================== MEDIA RETRIEVAL METHODS ====================

func (svc *MediaService) GetSectionMedia(moduleID, sectionID string) (*dto.SectionMediaResponse, error) {
	mediaAssets, err := svc.sqlSvc.Media().GetSectionMediaAssets(moduleID, sectionID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	response := &dto.SectionMediaResponse{
		ModuleID:  moduleID,
		SectionID: sectionID,
		Media:     make(map[string]*dto.MediaAssetResponse),
	}

	for _, asset := range mediaAssets {
		response.Media[asset.MediaType] = &dto.MediaAssetResponse{
			ID:       asset.MediaAsset.ID,
			URL:      asset.MediaAsset.URL,
			FileSize: asset.MediaAsset.FileSize,
		}
	}

	return response, nil
}

// RefreshAssetURL re-issues a presigned URL for an asset whose link expired.
func (svc *MediaService) RefreshAssetURL(mediaAssetID string) (*dto.MediaAssetResponse, error) {
	asset, err := svc.sqlSvc.Media().GetMediaAsset(mediaAssetID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	fileURL, err := svc.minioSvc.PresignedURL(goContext.Background(), asset.ObjectKey, 24*time.Hour)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate download URL")
	}

	return &dto.MediaAssetResponse{
		ID:       asset.ID,
		URL:      fileURL,
		FileSize: asset.FileSize,
	}, nil
}

// ==================== FILE VALIDATION METHODS ====================

func (svc *MediaService) isValidVideoFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".mp4", ".mov", ".mkv", ".webm"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

func (svc *MediaService) isValidAttachmentFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".pdf", ".zip", ".txt", ".pcap", ".pcapng", ".csv", ".json"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

func (svc *MediaService) isValidImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".jpg", ".jpeg", ".png", ".webp"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

// ==================== CLEANUP METHODS ====================

func (svc *MediaService) DeleteMediaAsset(mediaAssetID string) error {
	asset, err := svc.sqlSvc.Media().GetMediaAsset(mediaAssetID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.minioSvc.Remove(goContext.Background(), asset.ObjectKey); err != nil {
		log.WithError(err).WithField("object", asset.ObjectKey).Warn("Failed to delete stored object")
	}

	return svc.sqlSvc.Media().DeleteMediaAsset(mediaAssetID)
}

// StorageUsage reports total bytes tracked across all media assets.
func (svc *MediaService) StorageUsage() (int64, error) {
	return svc.sqlSvc.Media().TotalStorageBytes()
}
