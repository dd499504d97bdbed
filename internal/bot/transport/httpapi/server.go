// Package httpapi is a small HTTP gateway over the transport-agnostic core
// boundary: inbound messages arrive as webhook POSTs and outbound messages
// are queued per user and drained by polling. It stands in for a real chat
// platform integration, which stays out of scope.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/teambot/internal/bot/dispatcher"
	"github.com/dmitrijs2005/teambot/internal/logging"
	"github.com/gin-gonic/gin"
)

// Outbox is an in-memory per-user message queue implementing the outgoing
// sink. Messages stay queued until drained by a poll.
type Outbox struct {
	mu     sync.Mutex
	queues map[string][]string
}

// NewOutbox builds an empty Outbox.
func NewOutbox() *Outbox {
	return &Outbox{queues: make(map[string][]string)}
}

// SendMessage queues text for the user.
func (o *Outbox) SendMessage(ctx context.Context, userID, text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queues[userID] = append(o.queues[userID], text)
	return nil
}

// Drain removes and returns all queued messages for the user.
func (o *Outbox) Drain(userID string) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	queued := o.queues[userID]
	delete(o.queues, userID)
	return queued
}

// Handler is the message entry point of the core; *dispatcher.Dispatcher
// satisfies it.
type Handler interface {
	Dispatch(ctx context.Context, msg dispatcher.Inbound)
}

// Server serves the gateway endpoints.
type Server struct {
	address string
	handler Handler
	outbox  *Outbox
	logger  logging.Logger
}

// NewServer builds a gateway bound to the given address.
func NewServer(address string, handler Handler, outbox *Outbox, logger logging.Logger) *Server {
	return &Server{
		address: address,
		handler: handler,
		outbox:  outbox,
		logger:  logger.With("module", "httpapi"),
	}
}

type inboundRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// parseCommand extracts a command token from a leading "/word". Whether the
// token is a known command is the dispatcher's concern.
func parseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	return strings.TrimPrefix(fields[0], "/")
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/v1/messages", s.postMessage)
	r.GET("/v1/updates/:user_id", s.getUpdates)
	return r
}

func (s *Server) postMessage(c *gin.Context) {
	var req inboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := dispatcher.Inbound{
		UserID:  req.UserID,
		Text:    req.Text,
		Command: parseCommand(req.Text),
	}
	s.handler.Dispatch(c.Request.Context(), msg)

	c.JSON(http.StatusOK, gin.H{"replies": s.outbox.Drain(req.UserID)})
}

func (s *Server) getUpdates(c *gin.Context) {
	userID := c.Param("user_id")
	c.JSON(http.StatusOK, gin.H{"messages": s.outbox.Drain(userID)})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "starting HTTP gateway", "address", s.address)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
