package httpserver

import (
	"context"
	"errors"
	"time"

	"aguagas/internal/domain"
	"aguagas/internal/service/cart"
	"aguagas/internal/service/catalog"
	"aguagas/internal/service/chat"
	"aguagas/internal/service/dashboard"
	"aguagas/internal/service/order"
	"aguagas/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type sessionService interface {
	Create(role domain.Role) (session.Session, error)
	Get(id string) (session.Session, error)
	SetRole(id string, role domain.Role) (session.Session, error)
}

type catalogService interface {
	List(ctx context.Context, f catalog.Filter) ([]domain.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*cart.View, error)
	SelectSupplier(ctx context.Context, sessionID, supplierID string) (*cart.View, error)
	Update(ctx context.Context, sessionID string, in cart.UpdateInput) (*cart.View, error)
}

type orderService interface {
	Create(ctx context.Context, sessionID string) (*domain.Order, error)
	Cancel(ctx context.Context, sessionID, orderID string) (*domain.Order, error)
	Advance(ctx context.Context, sessionID, orderID string, to domain.OrderStatus) (*domain.Order, error)
	List(ctx context.Context, sessionID string) ([]order.Tracking, error)
	Get(ctx context.Context, sessionID, orderID string) (*order.Tracking, error)
}

type chatService interface {
	Send(ctx context.Context, sessionID, orderID string, in chat.SendInput) (*domain.ChatMessage, error)
	List(ctx context.Context, sessionID, orderID string) ([]domain.ChatMessage, error)
}

type dashboardService interface {
	Summary(ctx context.Context, sessionID, supplierID string) (*dashboard.Summary, error)
}

// Deps are the services the API exposes.
type Deps struct {
	Sessions  sessionService
	Catalog   catalogService
	Cart      cartService
	Orders    orderService
	Chat      chatService
	Dashboard dashboardService
}

func (d Deps) validate() error {
	if d.Sessions == nil || d.Catalog == nil || d.Cart == nil || d.Orders == nil || d.Chat == nil || d.Dashboard == nil {
		return errors.New("httpserver: all services are required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), cors.New(corsConfig(corsOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	router.POST("/sessions", h.createSession)
	router.GET("/suppliers", h.listSuppliers)
	router.GET("/suppliers/:supplierID", h.getSupplier)

	sessions := router.Group("/sessions/:sessionID", sessionMiddleware(deps.Sessions))
	sessions.GET("", h.getSession)
	sessions.PUT("/role", h.setRole)
	sessions.PUT("/supplier", h.selectSupplier)

	sessions.GET("/cart", h.getCart)
	sessions.POST("/cart", h.updateCart)

	sessions.POST("/orders", h.createOrder)
	sessions.GET("/orders", h.listOrders)
	sessions.GET("/orders/:orderID", h.getOrder)
	sessions.POST("/orders/:orderID/cancel", h.cancelOrder)
	sessions.POST("/orders/:orderID/advance", h.advanceOrder)
	sessions.GET("/orders/:orderID/messages", h.listMessages)
	sessions.POST("/orders/:orderID/messages", h.sendMessage)

	sessions.GET("/dashboard/:supplierID", h.dashboard)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, sessionHeader)
	return cfg
}

// requestLogger replaces gin.Logger with structured zap output.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
