package handlers

import (
	"context"
	"net/http"
	"time"

	"fotoproof-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler godoc
// @Summary     Health check
// @Description Returns the health status of the API and its database
// @Tags        health
// @Accept      json
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Failure     503 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.Error(err)
			c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "degraded", Database: "unreachable"})
			return
		}
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Database: "ok"})
	}
}
