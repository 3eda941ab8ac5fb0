package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/aadidev-sraj/project-lyra/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload section video (Admin)
// @Description Upload a walkthrough video for a module section
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param moduleId path string true "Module ID"
// @Param sectionId path string true "Section ID"
// @Param video formData file true "Video file (MP4, MOV, WEBM)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/modules/{moduleId}/sections/{sectionId}/video [post]
func (h *MediaHandler) UploadSectionVideo(c *fiber.Ctx) error {
	moduleID := c.Params("moduleId")
	sectionID := c.Params("sectionId")

	file, err := c.FormFile("video")
	if err != nil {
		return shared.NewBadRequestError(err, "No video file provided")
	}

	response, err := h.mediaSvc.UploadSectionVideo(moduleID, sectionID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Video uploaded successfully", response)
}

// @Summary Upload section attachment (Admin)
// @Description Upload a lab attachment for a module section
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param moduleId path string true "Module ID"
// @Param sectionId path string true "Section ID"
// @Param attachment formData file true "Attachment file (PDF, ZIP, TXT, PCAP, CSV)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/modules/{moduleId}/sections/{sectionId}/attachment [post]
func (h *MediaHandler) UploadSectionAttachment(c *fiber.Ctx) error {
	moduleID := c.Params("moduleId")
	sectionID := c.Params("sectionId")

	file, err := c.FormFile("attachment")
	if err != nil {
		return shared.NewBadRequestError(err, "No attachment file provided")
	}

	response, err := h.mediaSvc.UploadSectionAttachment(moduleID, sectionID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Attachment uploaded successfully", response)
}

// @Summary Upload module thumbnail (Admin)
// @Description Upload a thumbnail image for a module
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param moduleId path string true "Module ID"
// @Param thumbnail formData file true "Thumbnail file (JPG, PNG, WEBP)"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/modules/{moduleId}/thumbnail [post]
func (h *MediaHandler) UploadModuleThumbnail(c *fiber.Ctx) error {
	moduleID := c.Params("moduleId")

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return shared.NewBadRequestError(err, "No thumbnail file provided")
	}

	response, err := h.mediaSvc.UploadModuleThumbnail(moduleID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Thumbnail uploaded successfully", response)
}

// @Summary Get section media
// @Description List active media assets for a module section
// @Tags modules
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param moduleId path string true "Module ID"
// @Param sectionId path string true "Section ID"
// @Success 200 {object} shared.Response{data=dto.SectionMediaResponse}
// @Router /api/v1/modules/{moduleId}/sections/{sectionId}/media [get]
func (h *MediaHandler) GetSectionMedia(c *fiber.Ctx) error {
	response, err := h.mediaSvc.GetSectionMedia(c.Params("moduleId"), c.Params("sectionId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", response)
}

// @Summary Refresh asset URL
// @Description Re-issue a presigned download URL for a media asset
// @Tags modules
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param assetId path string true "Media asset ID"
// @Success 200 {object} shared.Response{data=dto.MediaAssetResponse}
// @Router /api/v1/media/{assetId}/url [get]
func (h *MediaHandler) RefreshAssetURL(c *fiber.Ctx) error {
	response, err := h.mediaSvc.RefreshAssetURL(c.Params("assetId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", response)
}

// @Summary Delete media asset (Admin)
// @Description Delete a media asset from storage and unlink it from sections
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param assetId path string true "Media asset ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/media/{assetId} [delete]
func (h *MediaHandler) DeleteMediaAsset(c *fiber.Ctx) error {
	if err := h.mediaSvc.DeleteMediaAsset(c.Params("assetId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Media asset deleted successfully", nil)
}
