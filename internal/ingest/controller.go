package ingest

import (
	"net/http"
	"time"

	"acrunner/internal/judge/event"
	"acrunner/internal/problem/state"
	appErr "acrunner/pkg/errors"
	"acrunner/pkg/utils/logger"
	"acrunner/pkg/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	streamBuffer     = 256
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// EventSource hands out event subscriptions.
type EventSource interface {
	Subscribe(buffer int) (<-chan event.Event, func())
}

// Controller serves the ingestion listener endpoints.
type Controller struct {
	service  *Service
	holder   *state.Holder
	events   EventSource
	upgrader websocket.Upgrader
}

// NewController creates a controller. events may be nil to disable /ws.
func NewController(service *Service, holder *state.Holder, events EventSource) *Controller {
	return &Controller{
		service: service,
		holder:  holder,
		events:  events,
		upgrader: websocket.Upgrader{
			// Any origin is accepted; the listener binds to loopback.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Receive handles a Competitive Companion POST.
func (h *Controller) Receive(c *gin.Context) {
	var payload CompanionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErr.Wrapf(err, appErr.InvalidFormat, "decode problem payload"))
		return
	}
	problem, err := h.service.Ingest(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, problem)
}

// GetProblem returns the current problem.
func (h *Controller) GetProblem(c *gin.Context) {
	problem, ok := h.holder.Get()
	if !ok {
		response.Error(c, appErr.New(appErr.ProblemNotLoaded))
		return
	}
	response.Success(c, problem)
}

// Stream upgrades to a WebSocket and writes every event as JSON until the
// client goes away.
func (h *Controller) Stream(c *gin.Context) {
	if h.events == nil {
		response.AbortWithError(c, appErr.New(appErr.ServiceUnavailable).WithMessage("event stream is disabled"))
		return
	}
	if !websocket.IsWebSocketUpgrade(c.Request) {
		response.BadRequest(c, "websocket upgrade required")
		return
	}
	ctx := c.Request.Context()
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(ctx, "websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, cancel := h.events.Subscribe(streamBuffer)
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()
	logger.Debug(ctx, "event stream opened", zap.String("remote", c.ClientIP()))

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug(ctx, "event stream write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			logger.Debug(ctx, "event stream closed", zap.String("remote", c.ClientIP()))
			return
		case <-ctx.Done():
			return
		}
	}
}
