package api

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/dengue-surveillance-api/internal/config"
	"github.com/dengue-surveillance-api/internal/customerrors"
	"github.com/dengue-surveillance-api/internal/realtime"
	"github.com/dengue-surveillance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsEventBuffer  = 16
)

// WSHandler upgrades authenticated clients to a websocket and streams
// hub events to them.
type WSHandler struct {
	authSvc service.AuthService
	hub     *realtime.Hub
	cfg     *config.Config
	log     zerolog.Logger
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(authSvc service.AuthService, hub *realtime.Hub, cfg *config.Config, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		authSvc: authSvc,
		hub:     hub,
		cfg:     cfg,
		log:     log.With().Str("handler", "ws").Logger(),
	}
}

// Connect handles GET /api/ws. Browser websocket clients cannot set an
// Authorization header, so a ?token= query parameter is accepted as well.
func (h *WSHandler) Connect(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		respondError(c, customerrors.ErrMissingToken)
		return
	}

	claims, err := h.authSvc.Verify(token)
	if err != nil {
		respondError(c, err)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{h.cfg.Server.CORSOrigin},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection closed")

	events := h.hub.Subscribe(wsEventBuffer)
	defer h.hub.Unsubscribe(events)

	log := h.log.With().Int64("user_id", claims.UserID).Logger()
	log.Info().Msg("Websocket client connected")

	ctx := c.Request.Context()

	// Drain incoming frames so pings are answered and a client close
	// surfaces as an error.
	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		case err := <-readErr:
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure &&
				websocket.CloseStatus(err) != websocket.StatusGoingAway {
				log.Debug().Err(err).Msg("Websocket read ended")
			}
			return
		case event, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "server shutting down")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := wsjson.Write(writeCtx, conn, event)
			cancel()
			if err != nil {
				log.Debug().Err(err).Msg("Websocket write failed")
				return
			}
		}
	}
}
