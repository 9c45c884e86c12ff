package handlers

import (
	"net/http"

	"fotoproof-backend/internal/realtime"
	"fotoproof-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// LiveHandler upgrades an owner's connection to a websocket that receives the
// gallery's realtime events.
type LiveHandler struct {
	hub       *realtime.Hub
	galleries *services.GalleryService
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

func NewLiveHandler(hub *realtime.Hub, galleries *services.GalleryService, allowedOrigins []string, logger *zap.Logger) *LiveHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &LiveHandler{
		hub:       hub,
		galleries: galleries,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed["*"]; ok {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Live godoc
// @Summary     Gallery live events
// @Description Websocket stream of selection.submitted and photos.uploaded events. Browsers pass the token as the access_token query parameter.
// @Tags        galleries
// @Security    Bearer
// @Param       id path string true "Gallery ID (UUID)"
// @Param       access_token query string false "Access token when the Authorization header cannot be set"
// @Success     101
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /galleries/{id}/live [get]
func (h *LiveHandler) Live(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	galleryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if _, err := h.galleries.Get(c.Request.Context(), userID, galleryID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(conn, galleryID)
}
