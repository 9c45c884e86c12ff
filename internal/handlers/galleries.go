package handlers

import (
	"net/http"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type GalleriesHandler struct {
	galleries *services.GalleryService
	shareURL  func(string) string
}

func NewGalleriesHandler(galleries *services.GalleryService, shareURL func(string) string) *GalleriesHandler {
	return &GalleriesHandler{galleries: galleries, shareURL: shareURL}
}

// CreateGallery godoc
// @Summary     Create a gallery
// @Description Creates a gallery for a client. The response carries the share link to send to the client.
// @Tags        galleries
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateGalleryRequest true "Gallery"
// @Success     201 {object} models.GalleryResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /galleries [post]
func (h *GalleriesHandler) CreateGallery(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	g, err := h.galleries.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGalleryResponse(g, h.shareURL))
}

// ListGalleries godoc
// @Summary     List galleries
// @Description Lists the photographer's galleries, newest first.
// @Tags        galleries
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.GalleryListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /galleries [get]
func (h *GalleriesHandler) ListGalleries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	galleries, err := h.galleries.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.GalleryListResponse{Galleries: make([]models.GalleryResponse, 0, len(galleries))}
	for i := range galleries {
		resp.Galleries = append(resp.Galleries, toGalleryResponse(&galleries[i], h.shareURL))
	}
	c.JSON(http.StatusOK, resp)
}

// GetGallery godoc
// @Summary     Get a gallery
// @Tags        galleries
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Success     200 {object} models.GalleryResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /galleries/{id} [get]
func (h *GalleriesHandler) GetGallery(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.galleries.Get(c.Request.Context(), userID, galleryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGalleryResponse(g, h.shareURL))
}

// UpdateSettings godoc
// @Summary     Update sharing settings
// @Description Replaces is_public, password and expires_at. An empty password removes the password; a null expires_at removes the expiry.
// @Tags        galleries
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Param       request body models.UpdateGallerySettingsRequest true "Settings"
// @Success     200 {object} models.GalleryResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /galleries/{id}/settings [patch]
func (h *GalleriesHandler) UpdateSettings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateGallerySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	g, err := h.galleries.UpdateSettings(c.Request.Context(), userID, galleryID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGalleryResponse(g, h.shareURL))
}

// DeleteGallery godoc
// @Summary     Delete a gallery
// @Description Deletes the gallery, its photos, its client selections and the stored files.
// @Tags        galleries
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Success     204
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /galleries/{id} [delete]
func (h *GalleriesHandler) DeleteGallery(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.galleries.Delete(c.Request.Context(), userID, galleryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
