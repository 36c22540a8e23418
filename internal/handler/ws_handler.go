package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/brightclass/brightclass-backend/internal/middleware"
	"github.com/brightclass/brightclass-backend/internal/service"
	ws "github.com/brightclass/brightclass-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live attempt activity to monitoring teachers.
type WSHandler struct {
	quizService    *service.QuizService
	monitorService *service.MonitorService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(quizService *service.QuizService, monitorService *service.MonitorService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		quizService:    quizService,
		monitorService: monitorService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// QuizMonitorStream godoc
// WS /ws/v1/teacher/quizzes/:quiz_id/monitor
// Upgrades to WebSocket and relays the quiz's attempt events — starts,
// answers, completions, abandonments — as they are published. Only the
// owning teacher may watch a quiz.
func (h *WSHandler) QuizMonitorStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}

	// Ownership check before the upgrade; after it we can only talk
	// WebSocket.
	if _, err := h.quizService.Get(c.Request.Context(), claims.UserID, quizID); err != nil {
		failDomain(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("teacher_id", claims.UserID).
		Str("quiz_id", quizID.String()).
		Logger()
	wsLog.Info().Msg("Teacher connected to quiz monitor")

	sub := h.monitorService.Subscribe(c.Request.Context(), quizID)
	defer sub.Close()

	// Reader goroutine: answers pings and notices the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			switch msg.Action {
			case ws.ActionPing:
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			default:
				ws.WriteError(conn, "unknown action: "+string(msg.Action))
			}
		}
	}()

	events := sub.Channel()
	for {
		select {
		case <-done:
			wsLog.Info().Msg("Teacher disconnected from quiz monitor")
			return
		case msg, open := <-events:
			if !open {
				wsLog.Warn().Msg("Monitor subscription closed")
				return
			}
			var event ws.AttemptEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Error().Err(err).Msg("Corrupt monitor payload")
				continue
			}
			if err := ws.WriteTyped(conn, event); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, closing stream")
				return
			}
		}
	}
}
