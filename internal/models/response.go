package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type GalleryResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	IsPublic      bool       `json:"is_public"`
	HasPassword   bool       `json:"has_password"`
	Password      string     `json:"password,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	ShareURL      string     `json:"share_url"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type GalleryListResponse struct {
	Galleries []GalleryResponse `json:"galleries"`
}

type PhotoResponse struct {
	ID            string    `json:"id"`
	FileURL       string    `json:"file_url"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	FileName      string    `json:"file_name"`
	FileSize      int64     `json:"file_size"`
	FileSizeHuman string    `json:"file_size_human,omitempty"`
	OrderIndex    int       `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
}

type PhotosResponse struct {
	Photos []PhotoResponse `json:"photos"`
}

type UploadResponse struct {
	GalleryID string            `json:"gallery_id"`
	Photos    []PhotoResponse   `json:"photos"`
	Status    string            `json:"status"`
	Errors    []UploadErrorInfo `json:"errors,omitempty"`
}

type UploadErrorInfo struct {
	Filename string `json:"filename"`
	Stage    string `json:"stage"`
	Error    string `json:"error"`
}

type SharedGalleryResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	ClientName       string          `json:"client_name"`
	PasswordRequired bool            `json:"password_required"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	Access           *AccessResponse `json:"access,omitempty"`
}

type AccessResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type DraftResponse struct {
	GalleryID string   `json:"gallery_id"`
	PhotoIDs  []string `json:"photo_ids"`
	Count     int      `json:"count"`
}

type SubmitSelectionsResponse struct {
	GalleryID   string `json:"gallery_id"`
	ClientEmail string `json:"client_email"`
	Count       int    `json:"count"`
}

type SelectionResponse struct {
	ID           string    `json:"id"`
	PhotoID      string    `json:"photo_id"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	SelectedAt   time.Time `json:"selected_at"`
}

type ClientSelectionsGroup struct {
	ClientEmail string              `json:"client_email"`
	ClientName  string              `json:"client_name"`
	Count       int                 `json:"count"`
	Selections  []SelectionResponse `json:"selections"`
}

type SelectionsResponse struct {
	GalleryID       string                  `json:"gallery_id"`
	TotalSelections int                     `json:"total_selections"`
	Clients         []ClientSelectionsGroup `json:"clients"`
}

type ExportFormat struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type ExportResponse struct {
	GalleryID   string         `json:"gallery_id"`
	ClientEmail string         `json:"client_email,omitempty"`
	Count       int            `json:"count"`
	Formats     []ExportFormat `json:"formats"`
}

type DashboardResponse struct {
	Profile      *Profile          `json:"profile,omitempty"`
	Subscription *Subscription     `json:"subscription,omitempty"`
	Galleries    []GalleryResponse `json:"galleries"`
}
