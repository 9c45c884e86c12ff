package services_test

import (
	"testing"
	"time"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/services"
	"fotoproof-backend/internal/supabase"
	"fotoproof-backend/internal/test/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGalleryService_Create(t *testing.T) {
	store := &mocks.GalleryStore{}
	svc := services.NewGalleryService(store, &mocks.ObjectStore{}, zap.NewNop())
	userID := uuid.New()
	expires := time.Now().Add(48 * time.Hour)

	store.On("CreateGallery", mock.Anything, mock.MatchedBy(func(g *models.Gallery) bool {
		return g.UserID == userID &&
			g.Title == "Smith Wedding" &&
			g.Password.Valid && g.Password.String == " Secret " &&
			!g.Description.Valid &&
			g.ExpiresAt.Valid && g.ExpiresAt.Time.Equal(expires)
	})).Return(nil)

	g, err := svc.Create(t.Context(), userID, models.CreateGalleryRequest{
		Title:       "  Smith Wedding ",
		ClientName:  "Jane",
		ClientEmail: "jane@example.com",
		Password:    " Secret ",
		ExpiresAt:   &expires,
		IsPublic:    true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, g.ID)
	store.AssertExpectations(t)
}

func TestGalleryService_UpdateSettingsClearsPasswordAndExpiry(t *testing.T) {
	store := &mocks.GalleryStore{}
	svc := services.NewGalleryService(store, &mocks.ObjectStore{}, zap.NewNop())
	userID, galleryID := uuid.New(), uuid.New()

	store.On("UpdateGallerySettings", mock.Anything, galleryID, userID, mock.MatchedBy(func(s models.GallerySettings) bool {
		return s.IsPublic && !s.Password.Valid && !s.ExpiresAt.Valid
	})).Return(&models.Gallery{ID: galleryID}, nil)

	_, err := svc.UpdateSettings(t.Context(), userID, galleryID, models.UpdateGallerySettingsRequest{IsPublic: true})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestGalleryService_DeleteRemovesObjectsThenRow(t *testing.T) {
	store := &mocks.GalleryStore{}
	objects := &mocks.ObjectStore{}
	svc := services.NewGalleryService(store, objects, zap.NewNop())
	userID, galleryID := uuid.New(), uuid.New()

	store.On("GetGallery", mock.Anything, galleryID, userID).Return(&models.Gallery{ID: galleryID, UserID: userID}, nil)
	objects.On("DeletePrefix", mock.Anything, userID.String()+"/"+galleryID.String()).Return(assert.AnError)
	store.On("DeleteGallery", mock.Anything, galleryID, userID).Return(nil)

	require.NoError(t, svc.Delete(t.Context(), userID, galleryID))
	objects.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestGalleryService_DeleteNotOwned(t *testing.T) {
	store := &mocks.GalleryStore{}
	objects := &mocks.ObjectStore{}
	svc := services.NewGalleryService(store, objects, zap.NewNop())
	userID, galleryID := uuid.New(), uuid.New()

	store.On("GetGallery", mock.Anything, galleryID, userID).Return(nil, supabase.ErrNotFound)

	err := svc.Delete(t.Context(), userID, galleryID)
	assert.ErrorIs(t, err, supabase.ErrNotFound)
	objects.AssertNotCalled(t, "DeletePrefix", mock.Anything, mock.Anything)
}

func selectionRow(email, fileName string, photoID uuid.UUID) models.SelectionWithPhoto {
	return models.SelectionWithPhoto{
		ClientSelection: models.ClientSelection{ID: uuid.New(), PhotoID: photoID, ClientEmail: email, ClientName: email},
		FileName:        fileName,
	}
}

func TestGalleryService_SelectionsGroupedByClient(t *testing.T) {
	store := &mocks.GalleryStore{}
	svc := services.NewGalleryService(store, &mocks.ObjectStore{}, zap.NewNop())
	userID, galleryID := uuid.New(), uuid.New()

	rows := []models.SelectionWithPhoto{
		selectionRow("b@example.com", "1.jpg", uuid.New()),
		selectionRow("a@example.com", "2.jpg", uuid.New()),
		selectionRow("b@example.com", "3.jpg", uuid.New()),
	}
	store.On("GetGallery", mock.Anything, galleryID, userID).Return(&models.Gallery{ID: galleryID}, nil)
	store.On("ListSelections", mock.Anything, galleryID).Return(rows, nil)

	groups, err := svc.Selections(t.Context(), userID, galleryID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "b@example.com", groups[0].Email)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "3.jpg", groups[0].Items[1].FileName)
	assert.Equal(t, "a@example.com", groups[1].Email)
}

func TestGalleryService_ExportFileNames(t *testing.T) {
	store := &mocks.GalleryStore{}
	svc := services.NewGalleryService(store, &mocks.ObjectStore{}, zap.NewNop())
	userID, galleryID := uuid.New(), uuid.New()
	shared := uuid.New()

	rows := []models.SelectionWithPhoto{
		selectionRow("a@example.com", "IMG_1.jpg", shared),
		selectionRow("b@example.com", "IMG_2.jpg", uuid.New()),
		selectionRow("b@example.com", "IMG_1.jpg", shared),
	}
	store.On("GetGallery", mock.Anything, galleryID, userID).Return(&models.Gallery{ID: galleryID}, nil)
	store.On("ListSelections", mock.Anything, galleryID).Return(rows, nil)

	names, err := svc.ExportFileNames(t.Context(), userID, galleryID, services.ExportFilter{ClientEmail: "B@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"IMG_2.jpg", "IMG_1.jpg"}, names)

	names, err = svc.ExportFileNames(t.Context(), userID, galleryID, services.ExportFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"IMG_1.jpg", "IMG_2.jpg"}, names)
}

func TestGalleryService_ExportExplicitPhotos(t *testing.T) {
	store := &mocks.GalleryStore{}
	svc := services.NewGalleryService(store, &mocks.ObjectStore{}, zap.NewNop())
	userID, galleryID := uuid.New(), uuid.New()
	photos := photosOf(galleryID, "a.jpg", "b.jpg")

	store.On("GetGallery", mock.Anything, galleryID, userID).Return(&models.Gallery{ID: galleryID}, nil)
	store.On("ListPhotos", mock.Anything, galleryID).Return(photos, nil)

	names, err := svc.ExportFileNames(t.Context(), userID, galleryID, services.ExportFilter{
		PhotoIDs: []uuid.UUID{photos[1].ID, photos[0].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg", "a.jpg"}, names)

	_, err = svc.ExportFileNames(t.Context(), userID, galleryID, services.ExportFilter{
		PhotoIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, services.ErrPhotoNotInGallery)
}
