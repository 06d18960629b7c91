package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avdeev99/travelbot/api"
	"github.com/avdeev99/travelbot/config"
	"github.com/avdeev99/travelbot/internal/service/assistant"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run starts the bot-channel HTTP server and blocks until the context is
// canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, service assistant.AssistantUseCase, logger *zap.Logger) error {
	router := gin.New()
	router.Use(gin.Recovery())

	group := router.Group("/api")
	api.NewActivityHandler(service).Register(group)
	api.NewRouteHandler(service).Register(group)

	server := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("http server listening", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
