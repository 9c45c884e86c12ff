package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fotoproof-backend/internal/models"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// AuthClient forwards sign-up, sign-in and email verification to Supabase
// Auth. Session state stays with the caller.
type AuthClient struct {
	auth       gotrue.Client
	authURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{
		auth:       c.Supabase.Auth,
		authURL:    strings.TrimSuffix(c.Config.SupabaseURL, "/") + "/auth/v1",
		apiKey:     c.Config.SupabasePublishableKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewAuthClientWithURL points the client at a GoTrue server directly, for
// self-hosted auth.
func NewAuthClientWithURL(authURL, apiKey string) *AuthClient {
	authURL = strings.TrimSuffix(authURL, "/")
	return &AuthClient{
		auth:       gotrue.New("", apiKey).WithCustomGoTrueURL(authURL),
		authURL:    authURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SignUp registers a photographer. When the project requires email
// confirmation the returned session has no access token.
func (a *AuthClient) SignUp(ctx context.Context, email, password string, data map[string]interface{}) (*models.AuthSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := a.auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	session := toAuthSession(resp.Session)
	if session.UserID == "" {
		session.UserID = resp.User.ID.String()
		session.Email = resp.User.Email
	}
	return session, nil
}

func (a *AuthClient) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := a.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	return toAuthSession(resp.Session), nil
}

type verifyRequest struct {
	Type      string `json:"type"`
	TokenHash string `json:"token_hash"`
}

type verifyResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type authErrorResponse struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

// VerifyEmail redeems the one-time token hash from a confirmation link.
// gotrue-go only sends OTP tokens, so the hash goes to /verify directly.
func (a *AuthClient) VerifyEmail(ctx context.Context, tokenHash, verificationType string) (*models.AuthSession, error) {
	jsonData, err := json.Marshal(verifyRequest{Type: verificationType, TokenHash: tokenHash})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.authURL+"/verify", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr authErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		msg := apiErr.Msg
		if msg == "" {
			msg = apiErr.ErrorDescription
		}
		if msg == "" {
			msg = apiErr.Message
		}
		if msg == "" {
			msg = string(body)
		}
		return nil, fmt.Errorf("failed to verify email: status %d: %s", resp.StatusCode, msg)
	}

	var result verifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}

	return &models.AuthSession{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		ExpiresIn:    result.ExpiresIn,
		UserID:       result.User.ID,
		Email:        result.User.Email,
	}, nil
}

func toAuthSession(s types.Session) *models.AuthSession {
	session := &models.AuthSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresIn:    s.ExpiresIn,
		Email:        s.User.Email,
	}
	if s.AccessToken != "" {
		session.UserID = s.User.ID.String()
	}
	return session
}
