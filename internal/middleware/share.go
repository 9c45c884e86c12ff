package middleware

import (
	"net/http"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const VisitorKey = "visitor"

// ShareAccess verifies a gallery access token issued by the password gate and
// checks that it was issued for the gallery in the :gallery_id path segment.
func ShareAccess(tokens *services.ShareTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c, msg)
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid access token",
				Message: "open the gallery link again to get a new access token",
			})
			return
		}

		pathID, err := uuid.Parse(c.Param("gallery_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{
				Error: "gallery not found",
			})
			return
		}

		tokenGallery, err := claims.GalleryID()
		if err != nil || tokenGallery != pathID {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Error: "access token was issued for another gallery",
			})
			return
		}

		visitor, err := services.VisitorFromClaims(claims)
		if err != nil {
			abortUnauthorized(c, "invalid access token")
			return
		}

		c.Set(VisitorKey, visitor)
		c.Next()
	}
}

// GetVisitor returns the visitor stored by ShareAccess.
func GetVisitor(c *gin.Context) (services.Visitor, bool) {
	v, ok := c.Get(VisitorKey)
	if !ok {
		return services.Visitor{}, false
	}
	visitor, ok := v.(services.Visitor)
	return visitor, ok
}
