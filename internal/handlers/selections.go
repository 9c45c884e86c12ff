package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/proofing"
	"fotoproof-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SelectionsHandler struct {
	galleries *services.GalleryService
}

func NewSelectionsHandler(galleries *services.GalleryService) *SelectionsHandler {
	return &SelectionsHandler{galleries: galleries}
}

// ListSelections godoc
// @Summary     Review client selections
// @Description Returns the gallery's client selections grouped by client email, clients in order of their first pick.
// @Tags        selections
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Success     200 {object} models.SelectionsResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /galleries/{id}/selections [get]
func (h *SelectionsHandler) ListSelections(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	groups, err := h.galleries.Selections(c.Request.Context(), userID, galleryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSelectionsResponse(galleryID.String(), groups))
}

// Export godoc
// @Summary     Export selected file names
// @Description Renders the selected file names as Windows Explorer, Lightroom and macOS Finder searches.
// @Description With format set, that single rendering is returned as a text attachment.
// @Tags        selections
// @Produce     json
// @Produce     plain
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Param       email query string false "Only this client's selections"
// @Param       photo_ids query string false "Comma-separated photo ids to export instead of selections"
// @Param       format query string false "windows, lightroom or macos"
// @Success     200 {object} models.ExportResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /galleries/{id}/selections/export [get]
func (h *SelectionsHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	filter := services.ExportFilter{ClientEmail: strings.TrimSpace(c.Query("email"))}
	if raw := c.Query("photo_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error:   "invalid photo_ids",
					Message: fmt.Sprintf("%q is not a valid UUID", part),
				})
				return
			}
			filter.PhotoIDs = append(filter.PhotoIDs, id)
		}
	}

	names, err := h.galleries.ExportFileNames(c.Request.Context(), userID, galleryID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if format := c.Query("format"); format != "" {
		f, ok := proofing.FindFormat(names, format)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "unknown export format",
				Message: fmt.Sprintf("format must be one of: %s, %s, %s", proofing.FormatWindows, proofing.FormatLightroom, proofing.FormatMacOS),
			})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, f.Filename))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(f.Content))
		return
	}

	c.JSON(http.StatusOK, models.ExportResponse{
		GalleryID:   galleryID.String(),
		ClientEmail: filter.ClientEmail,
		Count:       len(names),
		Formats:     toExportFormats(proofing.Formats(names)),
	})
}
