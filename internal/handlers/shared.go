package handlers

import (
	"net/http"

	"fotoproof-backend/internal/middleware"
	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharedHandler serves the client-facing share link.
type SharedHandler struct {
	shared *services.SharedService
}

func NewSharedHandler(shared *services.SharedService) *SharedHandler {
	return &SharedHandler{shared: shared}
}

// GetSharedGallery godoc
// @Summary     Open a share link
// @Description Returns the gallery summary. When the gallery has no password an access token is included.
// @Tags        shared
// @Produce     json
// @Param       gallery_id path string true "Gallery ID (UUID)"
// @Success     200 {object} models.SharedGalleryResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     410 {object} models.ErrorResponse
// @Router      /shared/{gallery_id} [get]
func (h *SharedHandler) GetSharedGallery(c *gin.Context) {
	galleryID, ok := sharedGalleryID(c)
	if !ok {
		return
	}

	shared, err := h.shared.Open(c.Request.Context(), galleryID)
	if err != nil {
		respondError(c, err)
		return
	}

	g := shared.Gallery
	resp := models.SharedGalleryResponse{
		ID:               g.ID.String(),
		Title:            g.Title,
		Description:      g.Description.String,
		ClientName:       g.ClientName,
		PasswordRequired: g.HasPassword(),
		Access:           toAccessResponse(shared.Access),
	}
	if g.ExpiresAt.Valid {
		t := g.ExpiresAt.Time
		resp.ExpiresAt = &t
	}
	c.JSON(http.StatusOK, resp)
}

// Access godoc
// @Summary     Unlock a password protected gallery
// @Tags        shared
// @Accept      json
// @Produce     json
// @Param       gallery_id path string true "Gallery ID (UUID)"
// @Param       request body models.AccessRequest true "Password"
// @Success     200 {object} models.AccessResponse
// @Failure     400 {object} models.ErrorResponse "password is required"
// @Failure     401 {object} models.ErrorResponse "incorrect password"
// @Failure     404 {object} models.ErrorResponse "gallery not found or not public"
// @Failure     410 {object} models.ErrorResponse "gallery has expired"
// @Router      /shared/{gallery_id}/access [post]
func (h *SharedHandler) Access(c *gin.Context) {
	galleryID, ok := sharedGalleryID(c)
	if !ok {
		return
	}

	var req models.AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	access, err := h.shared.Unlock(c.Request.Context(), galleryID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccessResponse(access))
}

// ListPhotos godoc
// @Summary     List photos of a shared gallery
// @Tags        shared
// @Produce     json
// @Security    GalleryAccess
// @Param       gallery_id path string true "Gallery ID (UUID)"
// @Success     200 {object} models.PhotosResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     410 {object} models.ErrorResponse
// @Router      /shared/{gallery_id}/photos [get]
func (h *SharedHandler) ListPhotos(c *gin.Context) {
	visitor, ok := currentVisitor(c)
	if !ok {
		return
	}

	photos, err := h.shared.Photos(c.Request.Context(), visitor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PhotosResponse{Photos: toPhotoResponses(photos)})
}

// GetDraft godoc
// @Summary     Get the visitor's unsubmitted selection
// @Tags        shared
// @Produce     json
// @Security    GalleryAccess
// @Param       gallery_id path string true "Gallery ID (UUID)"
// @Success     200 {object} models.DraftResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /shared/{gallery_id}/draft [get]
func (h *SharedHandler) GetDraft(c *gin.Context) {
	visitor, ok := currentVisitor(c)
	if !ok {
		return
	}

	ids := h.shared.Draft(visitor)
	c.JSON(http.StatusOK, models.DraftResponse{
		GalleryID: visitor.GalleryID.String(),
		PhotoIDs:  ids,
		Count:     len(ids),
	})
}

// ToggleDraft godoc
// @Summary     Select or unselect a photo
// @Description Adds the photo to the visitor's draft selection, or removes it when already selected.
// @Tags        shared
// @Accept      json
// @Produce     json
// @Security    GalleryAccess
// @Param       gallery_id path string true "Gallery ID (UUID)"
// @Param       request body models.ToggleSelectionRequest true "Photo"
// @Success     200 {object} models.DraftResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     410 {object} models.ErrorResponse
// @Router      /shared/{gallery_id}/draft/toggle [post]
func (h *SharedHandler) ToggleDraft(c *gin.Context) {
	visitor, ok := currentVisitor(c)
	if !ok {
		return
	}

	var req models.ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	photoID, err := uuid.Parse(req.PhotoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id"})
		return
	}

	ids, _, err := h.shared.ToggleDraft(c.Request.Context(), visitor, photoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DraftResponse{
		GalleryID: visitor.GalleryID.String(),
		PhotoIDs:  ids,
		Count:     len(ids),
	})
}

// SubmitSelections godoc
// @Summary     Submit the final selection
// @Description Replaces every earlier selection made with the same email for this gallery. Without photo_ids the draft selection is submitted.
// @Tags        shared
// @Accept      json
// @Produce     json
// @Security    GalleryAccess
// @Param       gallery_id path string true "Gallery ID (UUID)"
// @Param       request body models.SubmitSelectionsRequest true "Selection"
// @Success     200 {object} models.SubmitSelectionsResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     410 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /shared/{gallery_id}/selections [post]
func (h *SharedHandler) SubmitSelections(c *gin.Context) {
	visitor, ok := currentVisitor(c)
	if !ok {
		return
	}

	var req models.SubmitSelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := services.SubmitInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Notes:       req.Notes,
	}
	for _, raw := range req.PhotoIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id", Message: raw})
			return
		}
		in.PhotoIDs = append(in.PhotoIDs, id)
	}

	count, err := h.shared.Submit(c.Request.Context(), visitor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SubmitSelectionsResponse{
		GalleryID:   visitor.GalleryID.String(),
		ClientEmail: in.ClientEmail,
		Count:       count,
	})
}

func sharedGalleryID(c *gin.Context) (uuid.UUID, bool) {
	galleryID, err := uuid.Parse(c.Param("gallery_id"))
	if err != nil {
		// A malformed link is indistinguishable from a missing gallery.
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "gallery not found"})
		return uuid.Nil, false
	}
	return galleryID, true
}

func currentVisitor(c *gin.Context) (services.Visitor, bool) {
	visitor, ok := middleware.GetVisitor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "gallery access token required"})
		return services.Visitor{}, false
	}
	return visitor, true
}
