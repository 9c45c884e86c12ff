package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const shareTokenAudience = "shared-gallery"

// ShareClaims identify a visitor who passed a gallery's gate. Subject is the
// gallery id; SessionID keys the visitor's draft selection.
type ShareClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// GalleryID parses the subject claim.
func (c *ShareClaims) GalleryID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// ShareAccess is a freshly issued gallery access token.
type ShareAccess struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// ShareTokenService issues and verifies gallery access tokens. They are
// signed with their own secret so an owner token can never pass as one.
type ShareTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewShareTokenService(secret string, ttl time.Duration) *ShareTokenService {
	return &ShareTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *ShareTokenService) Issue(galleryID uuid.UUID) (*ShareAccess, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	sessionID := uuid.NewString()

	claims := ShareClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   galleryID.String(),
			Audience:  jwt.ClaimStrings{shareTokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &ShareAccess{Token: token, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

func (s *ShareTokenService) Parse(tokenString string) (*ShareClaims, error) {
	claims := &ShareClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(shareTokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidAccessToken
	}
	if claims.SessionID == "" {
		return nil, ErrInvalidAccessToken
	}
	if _, err := claims.GalleryID(); err != nil {
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}
