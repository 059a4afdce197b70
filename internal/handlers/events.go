package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"commandcenter/internal/events"
	"commandcenter/internal/models"
	"commandcenter/internal/services"
)

const (
	// heartbeatInterval is how often the server pings an idle subscriber.
	heartbeatInterval = 30 * time.Second
	// controlDeadline bounds writes of ping/pong control frames.
	controlDeadline = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type streamedEvent struct {
	event  models.ServerEvent
	missed uint64
}

// EventHandler pushes the server event stream over WebSocket.
type EventHandler struct {
	authService *services.AuthService
	bus         *events.Bus
}

func NewEventHandler(authService *services.AuthService, bus *events.Bus) *EventHandler {
	return &EventHandler{authService: authService, bus: bus}
}

// Stream upgrades the connection and forwards every event published after the
// subscription was taken. The token travels as a query parameter because
// browser WebSocket clients cannot set headers. A session expiring later does
// not close an established socket; only transport errors and close frames do.
func (h *EventHandler) Stream(c *gin.Context) {
	session, ok := h.authService.ValidateToken(c.Query("token"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Events] Upgrade failed: %v", err)
		return
	}
	defer func() { _ = ws.Close() }()

	log.Printf("[Events] Subscriber %s connected", session.Username)

	sub := h.bus.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reader side: answer protocol pings, forward the textual "ping"
	// convention to the writer loop, and tear the stream down on a close
	// frame or transport error. All data frames are written by the single
	// writer loop below; WriteControl is safe from here.
	ws.SetPingHandler(func(data string) error {
		return ws.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(controlDeadline))
	})
	pings := make(chan struct{}, 1)
	go func() {
		defer cancel()
		for {
			msgType, msg, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if msgType == websocket.TextMessage && strings.EqualFold(string(msg), "ping") {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	// Pump the subscription into a channel so the writer can select over
	// events, heartbeats, and connection teardown at once.
	pending := make(chan streamedEvent)
	go func() {
		defer close(pending)
		for {
			event, missed, err := sub.Next(ctx)
			if err != nil {
				return
			}
			select {
			case pending <- streamedEvent{event: event, missed: missed}:
			case <-ctx.Done():
				return
			}
		}
	}()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case item, ok := <-pending:
			if !ok {
				log.Printf("[Events] Subscriber %s disconnected", session.Username)
				return
			}
			if item.missed > 0 {
				log.Printf("[Events] Subscriber %s lagged, dropped %d events", session.Username, item.missed)
			}
			if err := ws.WriteMessage(websocket.TextMessage, marshalEvent(item.event)); err != nil {
				cancel()
				log.Printf("[Events] Subscriber %s disconnected", session.Username)
				return
			}
		case <-pings:
			if err := ws.WriteMessage(websocket.TextMessage, []byte("pong")); err != nil {
				cancel()
				log.Printf("[Events] Subscriber %s disconnected", session.Username)
				return
			}
		case <-heartbeat.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(controlDeadline)); err != nil {
				cancel()
				log.Printf("[Events] Subscriber %s disconnected", session.Username)
				return
			}
		case <-ctx.Done():
			log.Printf("[Events] Subscriber %s disconnected", session.Username)
			return
		}
	}
}

func marshalEvent(event models.ServerEvent) []byte {
	payload, err := json.Marshal(event)
	if err != nil {
		return []byte("{}")
	}
	return payload
}
