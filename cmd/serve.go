package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskboard-app/taskboard/broker"
	"taskboard-app/taskboard/config"
	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/middleware"
	"taskboard-app/taskboard/routes"
	"taskboard-app/taskboard/services"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.AppPort = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides APP_PORT)")
	return cmd
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Setup(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService
	services.UserServiceInstance = services.NewUserService(authService)
	services.ProjectServiceInstance = services.NewProjectService()
	services.TaskServiceInstance = services.NewTaskService()
	services.TagServiceInstance = services.NewTagService()
	services.AssignmentServiceInstance = services.NewAssignmentService()
	services.CommentServiceInstance = services.NewCommentService()
	services.AnalyticsServiceInstance = services.NewAnalyticsService()
	services.TrashServiceInstance = services.NewTrashService()

	wsService := services.NewWebSocketService(cfg)
	services.WebSocketServiceInstance = wsService

	if cfg.EventsEnabled {
		producer, err := broker.InitProducer(cfg)
		if err != nil {
			zap.L().Warn("broker unavailable, events stay in the outbox", zap.Error(err))
		} else {
			defer producer.Close()

			dispatcher := services.NewEventHandlerService(db, producer, cfg.NATSSubjectPrefix,
				time.Duration(cfg.EventPollIntervalMs)*time.Millisecond, cfg.EventBatchSize)
			services.EventHandlerServiceInstance = dispatcher
			dispatcher.Start(ctx)
			defer dispatcher.Stop()
		}
	} else {
		zap.L().Info("event publishing disabled")
		wsService.SetMessageSource(make(chan *nats.Msg))
	}

	wsService.Start(ctx)
	defer wsService.Stop()

	router := newRouter(cfg, db, authService, wsService)

	server := &http.Server{
		Addr:              ":" + strings.TrimPrefix(cfg.AppPort, ":"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("API server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func newRouter(cfg config.Config, db *database.Database, authService services.AuthServiceInterface, wsService services.WebSocketServiceInterface) *gin.Engine {
	production := strings.EqualFold(cfg.AppEnv, "production")
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapMiddleware(zap.L()))
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterHealthRoutes(&router.RouterGroup, db)
	routes.RegisterWebSocketRoutes(&router.RouterGroup, authService, wsService)

	api := router.Group("/api/v1")
	api.Use(middleware.PrincipalMiddleware(authService))

	routes.RegisterAuthRoutes(api, db, authService, services.UserServiceInstance)
	routes.RegisterUserRoutes(api, db, services.UserServiceInstance)
	routes.RegisterProjectRoutes(api, db, services.ProjectServiceInstance)
	routes.RegisterTaskRoutes(api, db, services.TaskServiceInstance)
	routes.RegisterTagRoutes(api, db, services.TagServiceInstance)
	routes.RegisterAssignmentRoutes(api, db, services.AssignmentServiceInstance)
	routes.RegisterCommentRoutes(api, db, services.CommentServiceInstance)
	routes.RegisterAnalyticsRoutes(api, db, services.AnalyticsServiceInstance)
	routes.RegisterTrashRoutes(api, db, services.TrashServiceInstance)

	if !production {
		routes.RegisterDebugRoutes(api, db)
	}

	return router
}
