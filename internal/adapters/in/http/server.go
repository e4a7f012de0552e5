// Package http is the inbound HTTP surface: the Telegram webhook, a health
// probe and the Prometheus scrape endpoint.
package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"tracker/internal/adapters/out/telegram"
	"tracker/internal/core/application/conversation"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SecretHeader carries the secret token registered with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// EventRouter consumes decoded chat events.
type EventRouter interface {
	HandleText(ctx context.Context, ev conversation.TextEvent) error
	HandleButton(ctx context.Context, ev conversation.ButtonEvent) error
}

// Server coordinates between HTTP handlers and the conversation router.
type Server struct {
	echo   *echo.Echo
	router EventRouter
	secret string
	logger *zap.Logger
}

// NewServer creates the server. metrics may be nil, in which case /metrics
// is not registered.
func NewServer(router EventRouter, secret string, metrics http.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		echo:   echo.New(),
		router: router,
		secret: secret,
		logger: logger.With(zap.String("component", "http")),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogMethod:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	s.echo.POST("/telegram", s.Webhook)
	s.echo.GET("/health", s.Health)
	if metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics))
	}
	return s
}

// ServeHTTP lets the server be mounted or tested as a plain handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Webhook handles POST /telegram. Updates are processed before replying;
// routing failures are logged and still acknowledged so Telegram does not
// redeliver them.
func (s *Server) Webhook(c echo.Context) error {
	if s.secret != "" {
		got := c.Request().Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var update telegram.Update
	if err := c.Bind(&update); err != nil {
		s.logger.Warn("bad update payload", zap.Error(err))
		return c.NoContent(http.StatusBadRequest)
	}

	ctx := context.WithoutCancel(c.Request().Context())
	start := time.Now()
	kind, err := s.dispatch(ctx, update)
	if err != nil {
		s.logger.Error("update failed",
			zap.Int64("update_id", update.UpdateID),
			zap.String("type", kind),
			zap.Error(err))
	} else {
		s.logger.Debug("update handled",
			zap.Int64("update_id", update.UpdateID),
			zap.String("type", kind),
			zap.Duration("took", time.Since(start)))
	}
	return c.NoContent(http.StatusOK)
}

func (s *Server) dispatch(ctx context.Context, u telegram.Update) (string, error) {
	switch {
	case u.Message != nil:
		ev, ok := TextEventOf(u.Message)
		if !ok {
			return "ignored", nil
		}
		return "message", s.router.HandleText(ctx, ev)
	case u.CallbackQuery != nil:
		return "callback_query", s.router.HandleButton(ctx, ButtonEventOf(u.CallbackQuery))
	default:
		return "other", nil
	}
}

// TextEventOf converts a message; messages without text or sent by bots
// are skipped.
func TextEventOf(m *telegram.Message) (conversation.TextEvent, bool) {
	if m.From == nil || m.From.IsBot || m.Text == "" {
		return conversation.TextEvent{}, false
	}
	return conversation.TextEvent{
		ChatID:    m.Chat.ID,
		SenderID:  m.From.ID,
		Username:  m.From.Username,
		FirstName: m.From.FirstName,
		Text:      m.Text,
	}, true
}

// ButtonEventOf converts a callback query. A query without its message
// replies to the sender's private chat.
func ButtonEventOf(q *telegram.CallbackQuery) conversation.ButtonEvent {
	ev := conversation.ButtonEvent{
		ChatID:     q.From.ID,
		SenderID:   q.From.ID,
		Username:   q.From.Username,
		CallbackID: q.ID,
		Token:      q.Data,
	}
	if q.Message != nil {
		ev.ChatID = q.Message.Chat.ID
		ev.MessageID = q.Message.MessageID
	}
	return ev
}
