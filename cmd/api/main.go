package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"aguagas/internal/config"
	"aguagas/internal/db"
	"aguagas/internal/httpserver"
	"aguagas/internal/logging"
	catalogrepo "aguagas/internal/repository/catalog"
	cartsvc "aguagas/internal/service/cart"
	catalogsvc "aguagas/internal/service/catalog"
	chatsvc "aguagas/internal/service/chat"
	dashboardsvc "aguagas/internal/service/dashboard"
	ordersvc "aguagas/internal/service/order"
	"aguagas/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var (
		dbpool  *pgxpool.Pool
		catalog catalogrepo.Repository
	)
	if cfg.DBConnString == "" {
		catalog, err = catalogrepo.NewMemory(catalogrepo.DefaultSuppliers())
		if err != nil {
			logger.Fatal("load built-in catalog", zap.Error(err))
		}
		logger.Info("using in-memory catalog")
	} else {
		dbpool, err = db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer dbpool.Close()
		catalog = catalogrepo.NewPostgres(dbpool, logger)
	}

	store := session.NewStore()
	catalogService := catalogsvc.New(catalog)
	orderService := ordersvc.New(store, catalogService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:  store,
		Catalog:   catalogService,
		Cart:      cartsvc.New(store, catalogService, logger),
		Orders:    orderService,
		Chat:      chatsvc.New(store, logger),
		Dashboard: dashboardsvc.New(store, catalogService),
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	tickCtx, stopTicker := context.WithCancel(ctx)
	defer stopTicker()
	go orderService.Run(tickCtx, cfg.TickInterval)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	stopTicker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped", zap.Int("sessions", store.Len()))
	}
}
