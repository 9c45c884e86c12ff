package supabase

import (
	"context"
	"fmt"

	"fotoproof-backend/internal/models"
	"github.com/supabase-community/postgrest-go"
)

// ProfileClient reads profile and subscription rows through PostgREST using
// the caller's access token, so the project's row-level security applies.
type ProfileClient struct {
	restURL string
	apiKey  string
}

func NewProfileClient(c *Client) *ProfileClient {
	return &ProfileClient{
		restURL: c.RestURL(),
		apiKey:  c.Config.SupabasePublishableKey,
	}
}

func (p *ProfileClient) rest(accessToken string) *postgrest.Client {
	return postgrest.NewClient(p.restURL, "public", map[string]string{
		"apikey": p.apiKey,
	}).SetAuthToken(accessToken)
}

func (p *ProfileClient) GetProfile(ctx context.Context, accessToken, userID string) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []models.Profile
	_, err := p.rest(accessToken).
		From("profiles").
		Select("*", "", false).
		Eq("id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (p *ProfileClient) UpdateProfile(ctx context.Context, accessToken, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []models.Profile
	_, err := p.rest(accessToken).
		From("profiles").
		Update(update, "representation", "").
		Eq("id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// GetSubscription returns the user's plan, or ErrNotFound when the user has
// never subscribed.
func (p *ProfileClient) GetSubscription(ctx context.Context, accessToken, userID string) (*models.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []models.Subscription
	_, err := p.rest(accessToken).
		From("subscriptions").
		Select("*", "", false).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
