package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wayfarerhq/wayfarer-api/internal/config"
	"github.com/wayfarerhq/wayfarer-api/internal/handler"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/googleauth"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/itinerary"
	"github.com/wayfarerhq/wayfarer-api/internal/repository"
	"github.com/wayfarerhq/wayfarer-api/internal/service"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"github.com/wayfarerhq/wayfarer-api/internal/utils"
	"github.com/wayfarerhq/wayfarer-api/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Collaborators are the external-facing dependencies injected into the
// services. Production wiring lives in cmd/server; tests substitute fakes.
type Collaborators struct {
	GoogleVerifier googleauth.Verifier
	TripGenerator  itinerary.Generator
	ImageStore     storage.ImageStore
}

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config, collab Collaborators) *App {
	repos := repository.NewRepositories(infra.Mongo())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		jwtManager,
		collab.GoogleVerifier,
		collab.ImageStore,
		infra.Logger(),
		cfg.Security.BCryptCost,
	)
	postService := service.NewPostService(repos.Post, repos.Comment, repos.User, collab.ImageStore, infra.Logger())
	commentService := service.NewCommentService(repos.Comment, repos.Post, repos.User, collab.ImageStore, infra.Logger())
	tripService := service.NewTripService(repos.Trip, collab.TripGenerator, infra.Logger())

	authHandler := handler.NewAuthHandler(authService, infra.Logger())
	postHandler := handler.NewPostHandler(postService, infra.Logger())
	commentHandler := handler.NewCommentHandler(commentService, infra.Logger())
	tripHandler := handler.NewTripHandler(tripService, infra.Logger())

	router := gin.Default()
	router.Use(otelgin.Middleware("wayfarer-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, authHandler, postHandler, commentHandler, tripHandler, authService, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	tripHandler *handler.TripHandler,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	authRequired := handler.AuthMiddleware(authService)
	loginLimit := handler.RateLimitMiddleware(rateLimiter, cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow.Duration, handler.IPBasedKey)

	auth := router.Group("/auth")
	{
		auth.POST("/register", loginLimit, authHandler.Register)
		auth.POST("/login", loginLimit, authHandler.Login)
		auth.POST("/google", loginLimit, authHandler.GoogleSignIn)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/user/:userId", authHandler.GetUser)
		auth.PUT("/user/:userId", authRequired, authHandler.UpdateUser)
	}

	posts := router.Group("/posts")
	{
		posts.GET("", postHandler.GetAll)
		posts.GET("/:id", postHandler.GetByID)
		posts.POST("", authRequired, postHandler.Create)
		posts.PUT("/:id", authRequired, postHandler.Update)
		posts.DELETE("/:id", authRequired, postHandler.Delete)
		posts.POST("/:id/like", authRequired, postHandler.ToggleLike)
	}

	comments := router.Group("/comments")
	{
		comments.GET("", commentHandler.GetAll)
		comments.GET("/:id", commentHandler.GetByID)
		comments.GET("/post/:postId", commentHandler.GetByPost)
		comments.POST("", authRequired, commentHandler.Create)
		comments.PUT("/:id", authRequired, commentHandler.Update)
		comments.DELETE("/:id", authRequired, commentHandler.Delete)
		comments.PUT("/:id/like", authRequired, commentHandler.ToggleLike)
	}

	trips := router.Group("/trips", authRequired)
	{
		trips.POST("/generate", tripHandler.Generate)
		trips.POST("", tripHandler.Save)
		trips.GET("", tripHandler.List)
		trips.GET("/:id", tripHandler.Get)
		trips.DELETE("/:id", tripHandler.Delete)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
