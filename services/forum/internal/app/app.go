package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nomadnest/pkg/cache"
	"nomadnest/pkg/config"
	"nomadnest/pkg/database"
	"nomadnest/pkg/jwt"
	"nomadnest/pkg/logger"
	"nomadnest/pkg/metrics"
	"nomadnest/pkg/middleware"
	"nomadnest/pkg/payment"
	"nomadnest/pkg/queue"
	"nomadnest/pkg/s3"
	"nomadnest/pkg/tracing"
	forumHTTP "nomadnest/services/forum/internal/controller/http"
	"nomadnest/services/forum/internal/repo"
	"nomadnest/services/forum/internal/repo/document"
	"nomadnest/services/forum/internal/repo/inmem"
	"nomadnest/services/forum/internal/repo/persistent"
	"nomadnest/services/forum/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "nomadnest/services/forum/docs" // Swagger docs
)

const serviceName = "nomadnest-forum"

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type App struct {
	cfg             *config.Config
	log             *logger.Logger
	store           *repo.Store
	redisClient     *redis.Client
	s3Client        *s3.Client
	queueClient     *queue.Client
	jwtService      *jwt.Service
	shutdownTracing tracing.ShutdownFunc
	httpServer      *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()
	ctx := context.Background()

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		log.Error("Failed to open %s store: %v", cfg.StoreDriver, err)
		return nil, err
	}
	log.Info("Using %s store", cfg.StoreDriver)

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, rate limiting in process: %v", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (uploads disabled)", err)
		s3Client = nil
	} else if err := s3Client.EnsureBucket(ctx); err != nil {
		log.Warn("Bucket check failed: %v", err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg, serviceName)
	if err != nil {
		log.Error("Failed to set up tracing: %v", err)
		return nil, err
	}

	return &App{
		cfg:             cfg,
		log:             log,
		store:           store,
		redisClient:     redisClient,
		s3Client:        s3Client,
		queueClient:     queueClient,
		jwtService:      jwt.NewService(cfg.JWTSecret, cfg.TokenTTL),
		shutdownTracing: shutdownTracing,
	}, nil
}

// OpenStore builds the repositories for the configured STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (*repo.Store, error) {
	switch cfg.StoreDriver {
	case DriverPostgres:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return nil, err
		}
		return persistent.NewStore(db), nil
	case DriverMongo:
		client, err := database.NewMongoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return document.NewStore(ctx, client, cfg.MongoDatabase)
	case DriverMemory:
		return inmem.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (a *App) Router() *gin.Engine {
	// Typed nils must not leak into the optional collaborator interfaces.
	var events usecase.EventPublisher
	if a.queueClient != nil {
		events = a.queueClient
	}
	var storage usecase.ObjectStorage
	if a.s3Client != nil {
		storage = a.s3Client
	}
	var issuer usecase.PaymentIntentIssuer
	if a.cfg.StripeSecretKey != "" {
		issuer = payment.NewStripeIssuer(a.cfg.StripeSecretKey)
	}

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(a.jwtService, a.log)
	userUseCase := usecase.NewUserUseCase(a.store.Users, a.store.Payments, events, a.log)
	postUseCase := usecase.NewPostUseCase(a.store.Posts, a.store.Users, a.cfg.FreePostLimit, a.log)
	commentUseCase := usecase.NewCommentUseCase(a.store.Comments, a.store.Posts, a.store.Users, a.log)
	boardUseCase := usecase.NewBoardUseCase(a.store.Tags, a.store.Announcements, a.store.Users, events, a.log)
	paymentUseCase := usecase.NewPaymentUseCase(a.store.Payments, a.store.Users, issuer, a.cfg.PaymentCurrency, a.log)
	mediaUseCase := usecase.NewMediaUseCase(storage, a.log)

	// Initialize HTTP handlers
	handlers := &forumHTTP.Handlers{
		Auth:     forumHTTP.NewAuthHandler(authUseCase, middleware.NewCookiePolicy(a.cfg.TokenCookie, a.cfg.IsProduction()), a.log),
		Users:    forumHTTP.NewUserHandler(userUseCase, a.log),
		Posts:    forumHTTP.NewPostHandler(postUseCase, a.log),
		Comments: forumHTTP.NewCommentHandler(commentUseCase, a.log),
		Board:    forumHTTP.NewBoardHandler(boardUseCase, a.log),
		Payments: forumHTTP.NewPaymentHandler(paymentUseCase, a.log),
		Media:    forumHTTP.NewMediaHandler(mediaUseCase, a.log),
	}
	gate := middleware.NewGate(a.jwtService, userUseCase, a.cfg.TokenCookie, a.log)

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("")
	if a.redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimit, a.cfg.RateWindow))
	} else {
		api.Use(middleware.LocalRateLimitMiddleware(a.cfg.RateLimit, a.cfg.RateWindow))
	}
	forumHTTP.Register(api, gate, handlers.Routes())

	return r
}

func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: a.Router(),
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Forum service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down forum service...")
}

func (a *App) Shutdown() error {
	// The server gets 5 seconds to finish in-flight requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	if err := a.store.Close(ctx); err != nil {
		a.log.Error("Error closing store: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.shutdownTracing(ctx); err != nil {
		a.log.Error("Error flushing traces: %v", err)
	}

	a.log.Info("Forum service exited")
	return nil
}
