package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fotoproof-backend/internal/config"
	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/realtime"
	"fotoproof-backend/internal/server"
	"fotoproof-backend/internal/services"
	"fotoproof-backend/internal/supabase"
	"fotoproof-backend/internal/test/mocks"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const ownerSecret = "owner-jwt-secret"

type testAPI struct {
	router    *gin.Engine
	store     *mocks.GalleryStore
	objects   *mocks.ObjectStore
	publisher *mocks.Publisher
	profiles  *mocks.ProfileStore
	tokens    *services.ShareTokenService
	userID    uuid.UUID
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SupabaseJWTSecret: ownerSecret,
		ShareTokenSecret:  "share-secret",
		ShareTokenTTL:     time.Hour,
		MaxUploadSize:     1 << 20,
		FrontendURL:       "https://proof.example.com",
		CORSOrigins:       []string{"https://proof.example.com"},
	}
	logger := zap.NewNop()

	api := &testAPI{
		store:     &mocks.GalleryStore{},
		objects:   &mocks.ObjectStore{},
		publisher: &mocks.Publisher{},
		profiles:  &mocks.ProfileStore{},
		tokens:    services.NewShareTokenService(cfg.ShareTokenSecret, cfg.ShareTokenTTL),
		userID:    uuid.New(),
	}

	galleries := services.NewGalleryService(api.store, api.objects, logger)
	api.router = server.NewRouter(server.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Auth:      &mocks.Authenticator{},
		Profiles:  api.profiles,
		Galleries: galleries,
		Uploads:   services.NewUploadService(api.store, api.objects, api.publisher, services.UploadOptions{Concurrency: 1, ThumbnailSize: 32}, logger),
		Shared:    services.NewSharedService(api.store, api.tokens, services.NewDraftStore(), api.publisher, logger),
		Tokens:    api.tokens,
		Hub:       realtime.NewHub(logger),
	})
	return api
}

func (a *testAPI) ownerToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": a.userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(ownerSecret))
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func sharedGallery(password string) *models.Gallery {
	return &models.Gallery{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "Smith Wedding",
		ClientName:  "Jane Smith",
		ClientEmail: "jane@example.com",
		IsPublic:    true,
		Password:    sql.NullString{String: password, Valid: password != ""},
	}
}

func TestSharedGallery_PasswordGateStatuses(t *testing.T) {
	api := newTestAPI(t)
	g := sharedGallery("hunter2")
	api.store.On("GetGalleryByID", mock.Anything, g.ID).Return(g, nil)
	base := "/api/v1/shared/" + g.ID.String()

	w := api.do("GET", base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.SharedGalleryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.True(t, summary.PasswordRequired)
	assert.Nil(t, summary.Access)

	w = api.do("POST", base+"/access", "", models.AccessRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password is required")

	w = api.do("POST", base+"/access", "", models.AccessRequest{Password: "HUNTER2"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "incorrect password")

	w = api.do("POST", base+"/access", "", models.AccessRequest{Password: "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)
	var access models.AccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &access))
	assert.Equal(t, "Bearer", access.TokenType)

	api.store.On("ListPhotos", mock.Anything, g.ID).Return([]models.Photo{
		{ID: uuid.New(), GalleryID: g.ID, FileName: "IMG_1.jpg", FileSize: sql.NullInt64{Int64: 2048, Valid: true}},
	}, nil)
	w = api.do("GET", base+"/photos", access.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "IMG_1.jpg")
	assert.Contains(t, w.Body.String(), `"file_size_human":"2.0 kB"`)

	w = api.do("GET", base+"/photos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSharedGallery_ExpiredAndPrivate(t *testing.T) {
	api := newTestAPI(t)

	expired := sharedGallery("")
	expired.ExpiresAt = sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}
	api.store.On("GetGalleryByID", mock.Anything, expired.ID).Return(expired, nil)

	private := sharedGallery("")
	private.IsPublic = false
	api.store.On("GetGalleryByID", mock.Anything, private.ID).Return(private, nil)

	missing := uuid.New()
	api.store.On("GetGalleryByID", mock.Anything, missing).Return(nil, supabase.ErrNotFound)

	assert.Equal(t, http.StatusGone, api.do("GET", "/api/v1/shared/"+expired.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/v1/shared/"+private.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/v1/shared/"+missing.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do("GET", "/api/v1/shared/not-a-uuid", "", nil).Code)
}

func TestSharedGallery_OpenGalleryReturnsAccess(t *testing.T) {
	api := newTestAPI(t)
	g := sharedGallery("")
	api.store.On("GetGalleryByID", mock.Anything, g.ID).Return(g, nil)

	w := api.do("GET", "/api/v1/shared/"+g.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.SharedGalleryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.False(t, summary.PasswordRequired)
	require.NotNil(t, summary.Access)
	assert.NotEmpty(t, summary.Access.AccessToken)
}

func TestSharedGallery_DraftAndSubmit(t *testing.T) {
	api := newTestAPI(t)
	g := sharedGallery("")
	photo := models.Photo{ID: uuid.New(), GalleryID: g.ID, FileName: "IMG_7.jpg"}
	api.store.On("GetGalleryByID", mock.Anything, g.ID).Return(g, nil)
	api.store.On("ListPhotos", mock.Anything, g.ID).Return([]models.Photo{photo}, nil)
	base := "/api/v1/shared/" + g.ID.String()

	access, err := api.tokens.Issue(g.ID)
	require.NoError(t, err)

	w := api.do("POST", base+"/draft/toggle", access.Token, models.ToggleSelectionRequest{PhotoID: photo.ID.String()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), photo.ID.String())

	w = api.do("POST", base+"/selections", access.Token, map[string]string{"client_name": "Bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "client_email is required")

	w = api.do("POST", base+"/selections", access.Token, models.SubmitSelectionsRequest{
		ClientName:  "   ",
		ClientEmail: "bob@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "client_name is required")

	api.store.On("ReplaceSelections", mock.Anything, g.ID, "bob@example.com", mock.Anything).Return(nil)
	api.publisher.On("Publish", g.ID, realtime.EventSelectionSubmitted, mock.Anything).Return()

	w = api.do("POST", base+"/selections", access.Token, models.SubmitSelectionsRequest{
		ClientName:  "Bob",
		ClientEmail: "bob@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = api.do("GET", base+"/draft", access.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestGalleries_CreateReturnsShareURL(t *testing.T) {
	api := newTestAPI(t)
	api.store.On("CreateGallery", mock.Anything, mock.AnythingOfType("*models.Gallery")).Return(nil)

	w := api.do("POST", "/api/v1/galleries", api.ownerToken(t), models.CreateGalleryRequest{
		Title:       "Smith Wedding",
		ClientName:  "Jane",
		ClientEmail: "jane@example.com",
		IsPublic:    true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.GalleryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://proof.example.com/shared/"+resp.ID, resp.ShareURL)
	assert.False(t, resp.HasPassword)
}

func TestGalleries_CreateValidation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do("POST", "/api/v1/galleries", api.ownerToken(t), map[string]string{
		"title":        "Smith Wedding",
		"client_name":  "Jane",
		"client_email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "client_email must be a valid email address")
}

func TestGalleries_RequireOwnerToken(t *testing.T) {
	api := newTestAPI(t)
	access, err := api.tokens.Issue(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, api.do("GET", "/api/v1/galleries", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do("GET", "/api/v1/galleries", access.Token, nil).Code)
}

func TestSelections_ExportAttachment(t *testing.T) {
	api := newTestAPI(t)
	galleryID := uuid.New()
	api.store.On("GetGallery", mock.Anything, galleryID, api.userID).Return(&models.Gallery{ID: galleryID}, nil)
	api.store.On("ListSelections", mock.Anything, galleryID).Return([]models.SelectionWithPhoto{
		{ClientSelection: models.ClientSelection{PhotoID: uuid.New(), ClientEmail: "a@example.com"}, FileName: "IMG_001.CR2"},
		{ClientSelection: models.ClientSelection{PhotoID: uuid.New(), ClientEmail: "a@example.com"}, FileName: "beach day.jpg"},
	}, nil)
	path := "/api/v1/galleries/" + galleryID.String() + "/selections/export"

	w := api.do("GET", path+"?format=macos", api.ownerToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="macos_search.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, `IMG_001 OR "beach day"`, w.Body.String())

	w = api.do("GET", path, api.ownerToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Formats, 3)
	assert.Equal(t, "IMG_001 OR beach day", resp.Formats[0].Content)
	assert.Equal(t, "IMG_001, beach day", resp.Formats[1].Content)

	w = api.do("GET", path+"?format=bridge", api.ownerToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfiles_DashboardWithoutProfile(t *testing.T) {
	api := newTestAPI(t)
	token := api.ownerToken(t)
	api.store.On("ListGalleries", mock.Anything, api.userID).Return([]models.Gallery{}, nil)
	api.profiles.On("GetProfile", mock.Anything, token, api.userID.String()).Return(nil, supabase.ErrNotFound)
	api.profiles.On("GetSubscription", mock.Anything, token, api.userID.String()).
		Return(&models.Subscription{Plan: "free", Status: "active"}, nil)

	w := api.do("GET", "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Profile)
	require.NotNil(t, resp.Subscription)
	assert.Equal(t, "free", resp.Subscription.Plan)
	assert.Empty(t, resp.Galleries)
}
