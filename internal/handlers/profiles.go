package handlers

import (
	"context"
	"errors"
	"net/http"

	"fotoproof-backend/internal/middleware"
	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/services"
	"fotoproof-backend/internal/supabase"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileStore reads and writes rows on behalf of the signed-in user.
type ProfileStore interface {
	GetProfile(ctx context.Context, accessToken, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, accessToken, userID string, update models.ProfileUpdate) (*models.Profile, error)
	GetSubscription(ctx context.Context, accessToken, userID string) (*models.Subscription, error)
}

type ProfilesHandler struct {
	profiles  ProfileStore
	galleries *services.GalleryService
	shareURL  func(string) string
	logger    *zap.Logger
}

func NewProfilesHandler(profiles ProfileStore, galleries *services.GalleryService, shareURL func(string) string, logger *zap.Logger) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles, galleries: galleries, shareURL: shareURL, logger: logger}
}

// Dashboard godoc
// @Summary     Photographer dashboard
// @Description Returns the profile, the subscription plan and every gallery of the signed-in photographer.
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.DashboardResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /dashboard [get]
func (h *ProfilesHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	token := c.GetString(middleware.AccessTokenKey)
	ctx := c.Request.Context()

	galleries, err := h.galleries.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.DashboardResponse{Galleries: make([]models.GalleryResponse, 0, len(galleries))}
	for i := range galleries {
		resp.Galleries = append(resp.Galleries, toGalleryResponse(&galleries[i], h.shareURL))
	}

	// Profile and plan are decoration; the dashboard still renders without them.
	if profile, err := h.profiles.GetProfile(ctx, token, userID.String()); err == nil {
		resp.Profile = profile
	} else if !errors.Is(err, supabase.ErrNotFound) {
		h.logger.Warn("failed to load profile", zap.Error(err), zap.String("user_id", userID.String()))
	}
	if sub, err := h.profiles.GetSubscription(ctx, token, userID.String()); err == nil {
		resp.Subscription = sub
	} else if !errors.Is(err, supabase.ErrNotFound) {
		h.logger.Warn("failed to load subscription", zap.Error(err), zap.String("user_id", userID.String()))
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile godoc
// @Summary     Get profile
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Profile
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /profile [get]
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), c.GetString(middleware.AccessTokenKey), userID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary     Update profile
// @Description Updates the fields present in the body; absent fields are left unchanged.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProfileUpdate true "Profile fields"
// @Success     200 {object} models.Profile
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /profile [put]
func (h *ProfilesHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), c.GetString(middleware.AccessTokenKey), userID.String(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
