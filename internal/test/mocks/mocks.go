// Package mocks provides testify mocks for the service dependencies.
package mocks

import (
	"context"

	"fotoproof-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type GalleryStore struct {
	mock.Mock
}

func (m *GalleryStore) CreateGallery(ctx context.Context, g *models.Gallery) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *GalleryStore) GetGallery(ctx context.Context, galleryID, userID uuid.UUID) (*models.Gallery, error) {
	args := m.Called(ctx, galleryID, userID)
	g, _ := args.Get(0).(*models.Gallery)
	return g, args.Error(1)
}

func (m *GalleryStore) GetGalleryByID(ctx context.Context, galleryID uuid.UUID) (*models.Gallery, error) {
	args := m.Called(ctx, galleryID)
	g, _ := args.Get(0).(*models.Gallery)
	return g, args.Error(1)
}

func (m *GalleryStore) ListGalleries(ctx context.Context, userID uuid.UUID) ([]models.Gallery, error) {
	args := m.Called(ctx, userID)
	galleries, _ := args.Get(0).([]models.Gallery)
	return galleries, args.Error(1)
}

func (m *GalleryStore) UpdateGallerySettings(ctx context.Context, galleryID, userID uuid.UUID, s models.GallerySettings) (*models.Gallery, error) {
	args := m.Called(ctx, galleryID, userID, s)
	g, _ := args.Get(0).(*models.Gallery)
	return g, args.Error(1)
}

func (m *GalleryStore) SetCoverImageIfEmpty(ctx context.Context, galleryID uuid.UUID, url string) error {
	args := m.Called(ctx, galleryID, url)
	return args.Error(0)
}

func (m *GalleryStore) DeleteGallery(ctx context.Context, galleryID, userID uuid.UUID) error {
	args := m.Called(ctx, galleryID, userID)
	return args.Error(0)
}

func (m *GalleryStore) CreatePhoto(ctx context.Context, p *models.Photo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *GalleryStore) ListPhotos(ctx context.Context, galleryID uuid.UUID) ([]models.Photo, error) {
	args := m.Called(ctx, galleryID)
	photos, _ := args.Get(0).([]models.Photo)
	return photos, args.Error(1)
}

func (m *GalleryStore) NextOrderIndex(ctx context.Context, galleryID uuid.UUID) (int, error) {
	args := m.Called(ctx, galleryID)
	return args.Int(0), args.Error(1)
}

func (m *GalleryStore) ReplaceSelections(ctx context.Context, galleryID uuid.UUID, clientEmail string, rows []models.ClientSelection) error {
	args := m.Called(ctx, galleryID, clientEmail, rows)
	return args.Error(0)
}

func (m *GalleryStore) ListSelections(ctx context.Context, galleryID uuid.UUID) ([]models.SelectionWithPhoto, error) {
	args := m.Called(ctx, galleryID)
	rows, _ := args.Get(0).([]models.SelectionWithPhoto)
	return rows, args.Error(1)
}

type ObjectStore struct {
	mock.Mock
}

func (m *ObjectStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, path, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *ObjectStore) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(galleryID uuid.UUID, eventType string, payload map[string]interface{}) {
	m.Called(galleryID, eventType, payload)
}

type ProfileStore struct {
	mock.Mock
}

func (m *ProfileStore) GetProfile(ctx context.Context, accessToken, userID string) (*models.Profile, error) {
	args := m.Called(ctx, accessToken, userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *ProfileStore) UpdateProfile(ctx context.Context, accessToken, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, accessToken, userID, update)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *ProfileStore) GetSubscription(ctx context.Context, accessToken, userID string) (*models.Subscription, error) {
	args := m.Called(ctx, accessToken, userID)
	s, _ := args.Get(0).(*models.Subscription)
	return s, args.Error(1)
}

type Authenticator struct {
	mock.Mock
}

func (m *Authenticator) SignUp(ctx context.Context, email, password string, data map[string]interface{}) (*models.AuthSession, error) {
	args := m.Called(ctx, email, password, data)
	s, _ := args.Get(0).(*models.AuthSession)
	return s, args.Error(1)
}

func (m *Authenticator) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*models.AuthSession)
	return s, args.Error(1)
}

func (m *Authenticator) VerifyEmail(ctx context.Context, tokenHash, verificationType string) (*models.AuthSession, error) {
	args := m.Called(ctx, tokenHash, verificationType)
	s, _ := args.Get(0).(*models.AuthSession)
	return s, args.Error(1)
}
