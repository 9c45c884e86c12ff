package models

import "time"

type CreateGalleryRequest struct {
	Title       string     `json:"title" binding:"required,max=200" example:"Smith Wedding"`
	Description string     `json:"description,omitempty"`
	ClientName  string     `json:"client_name" binding:"required" example:"Jane Smith"`
	ClientEmail string     `json:"client_email" binding:"required,email" example:"jane@example.com"`
	Password    string     `json:"password,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsPublic    bool       `json:"is_public"`
}

// UpdateGallerySettingsRequest replaces all sharing settings at once.
// An empty password and a null expires_at clear the respective setting.
type UpdateGallerySettingsRequest struct {
	IsPublic  bool       `json:"is_public"`
	Password  string     `json:"password"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type SignUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest mirrors the token and type query parameters of the
// confirmation link sent by the auth service.
type VerifyEmailRequest struct {
	Token string `json:"token" form:"token" binding:"required"`
	Type  string `json:"type" form:"type" binding:"required,oneof=signup invite magiclink recovery email_change email"`
}

type AccessRequest struct {
	Password string `json:"password"`
}

type ToggleSelectionRequest struct {
	PhotoID string `json:"photo_id" binding:"required,uuid"`
}

// SubmitSelectionsRequest submits the visitor's picks. When PhotoIDs is
// omitted the server-side draft is submitted instead.
type SubmitSelectionsRequest struct {
	ClientName  string   `json:"client_name" binding:"required"`
	ClientEmail string   `json:"client_email" binding:"required,email"`
	PhotoIDs    []string `json:"photo_ids,omitempty" binding:"omitempty,dive,uuid"`
	Notes       string   `json:"notes,omitempty"`
}
