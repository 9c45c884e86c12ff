package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// uploadFields are the multipart field names accepted for photo files.
var uploadFields = []string{"photos", "photo", "images", "image", "files", "file"}

type PhotosHandler struct {
	uploads       *services.UploadService
	galleries     *services.GalleryService
	maxUploadSize int64
}

func NewPhotosHandler(uploads *services.UploadService, galleries *services.GalleryService, maxUploadSize int64) *PhotosHandler {
	return &PhotosHandler{uploads: uploads, galleries: galleries, maxUploadSize: maxUploadSize}
}

// Upload godoc
// @Summary     Upload photos
// @Description Uploads one or more photos to a gallery. Files are processed concurrently; every file gets a JPEG thumbnail.
// @Description Failures are reported per file and do not undo the files that succeeded.
// @Tags        photos
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Param       photos formData file true "Photos (multiple files allowed)"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.UploadResponse
// @Router      /galleries/{id}/photos [post]
func (h *PhotosHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(h.maxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	var headers []*multipart.FileHeader
	for _, field := range uploadFields {
		if f := c.Request.MultipartForm.File[field]; len(f) > 0 {
			headers = f
			break
		}
	}
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no files uploaded",
			Message: fmt.Sprintf("please provide files with one of these field names: %v", uploadFields),
		})
		return
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, services.UploadFile{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	result, err := h.uploads.Upload(c.Request.Context(), userID, galleryID, files)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.UploadResponse{
		GalleryID: galleryID.String(),
		Photos:    toPhotoResponses(result.Photos),
		Status:    "completed",
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, models.UploadErrorInfo{
			Filename: e.Filename,
			Stage:    e.Stage,
			Error:    e.Err.Error(),
		})
	}

	switch {
	case len(result.Photos) == 0:
		resp.Status = "failed"
		c.JSON(http.StatusInternalServerError, resp)
	case len(result.Errors) > 0:
		resp.Status = "partial"
		c.JSON(http.StatusOK, resp)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

// ListPhotos godoc
// @Summary     List gallery photos
// @Tags        photos
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Success     200 {object} models.PhotosResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /galleries/{id}/photos [get]
func (h *PhotosHandler) ListPhotos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	photos, err := h.galleries.Photos(c.Request.Context(), userID, galleryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PhotosResponse{Photos: toPhotoResponses(photos)})
}
