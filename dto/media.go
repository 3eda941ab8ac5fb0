package dto

// ==================== MEDIA UPLOAD DTOs ====================

type MediaUploadResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

type MediaAssetResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// SectionMediaResponse lists the assets attached to one module section,
// keyed by asset kind (video, attachment, thumbnail).
type SectionMediaResponse struct {
	ModuleID  string                         `json:"module_id"`
	SectionID string                         `json:"section_id"`
	Media     map[string]*MediaAssetResponse `json:"media"`
}
