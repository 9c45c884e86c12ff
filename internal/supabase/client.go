package supabase

import (
	"strings"

	"fotoproof-backend/internal/config"
	"github.com/supabase-community/supabase-go"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// RestURL is the PostgREST endpoint of the project.
func (c *Client) RestURL() string {
	return strings.TrimSuffix(c.Config.SupabaseURL, "/") + "/rest/v1"
}
