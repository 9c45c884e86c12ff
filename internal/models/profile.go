package models

import "time"

// Profile and Subscription are decoded from PostgREST JSON rows.
type Profile struct {
	ID           string    `json:"id"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	BusinessName *string   `json:"business_name"`
	Phone        *string   `json:"phone"`
	Website      *string   `json:"website"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Subscription struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Plan               string     `json:"plan"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ProfileUpdate carries only the fields a photographer may edit.
type ProfileUpdate struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	BusinessName *string `json:"business_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Website      *string `json:"website,omitempty"`
	Bio          *string `json:"bio,omitempty"`
}

// AuthSession is what the auth service hands back after sign-in or
// email verification.
type AuthSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}
