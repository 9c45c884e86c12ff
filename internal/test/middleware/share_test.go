package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fotoproof-backend/internal/middleware"
	"fotoproof-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shareRouter(tokens *services.ShareTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/shared/:gallery_id/photos", middleware.ShareAccess(tokens), func(c *gin.Context) {
		visitor, ok := middleware.GetVisitor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": visitor.SessionID, "gallery": visitor.GalleryID.String()})
	})
	return router
}

func TestShareAccess_ValidToken(t *testing.T) {
	tokens := services.NewShareTokenService("share-secret", time.Hour)
	galleryID := uuid.New()
	access, err := tokens.Issue(galleryID)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/shared/"+galleryID.String()+"/photos", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	w := httptest.NewRecorder()
	shareRouter(tokens).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), access.SessionID)
}

func TestShareAccess_OtherGallery(t *testing.T) {
	tokens := services.NewShareTokenService("share-secret", time.Hour)
	access, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/shared/"+uuid.NewString()+"/photos", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	w := httptest.NewRecorder()
	shareRouter(tokens).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShareAccess_MissingOrInvalid(t *testing.T) {
	tokens := services.NewShareTokenService("share-secret", time.Hour)
	router := shareRouter(tokens)
	path := "/shared/" + uuid.NewString() + "/photos"

	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req, _ = http.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShareAccess_UpperCaseGalleryID(t *testing.T) {
	tokens := services.NewShareTokenService("share-secret", time.Hour)
	galleryID := uuid.New()
	access, err := tokens.Issue(galleryID)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/shared/"+strings.ToUpper(galleryID.String())+"/photos", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	w := httptest.NewRecorder()
	shareRouter(tokens).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), galleryID.String())
}
