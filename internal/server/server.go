package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "syncboard/docs"
	"syncboard/internal/config"
	"syncboard/internal/handler"
	"syncboard/internal/identity"
	"syncboard/internal/middleware"
	"syncboard/internal/migrations"
	"syncboard/internal/repository"
	"syncboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

// OpenDB connects gorm to PostgreSQL. Unique violations surface as
// gorm.ErrDuplicatedKey.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")
	return db, nil
}

// SetupLogger installs the default slog logger at the configured level.
func SetupLogger(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func Init(cfg *config.Config) (*Server, error) {
	SetupLogger(cfg)

	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.MigrateURL()); err != nil {
			return nil, err
		}
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	directory := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey)

	return &Server{
		Engine: NewRouter(cfg, db, directory),
		DB:     db,
		Config: cfg,
	}, nil
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, directory identity.Directory) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	issueRepo := repository.NewIssueRepository(db)

	// Initialize services
	issueService := service.NewIssueService(issueRepo, sprintRepo, projectRepo, userRepo)
	sprintService := service.NewSprintService(sprintRepo, projectRepo, userRepo)
	projectService := service.NewProjectService(projectRepo, userRepo)
	orgService := service.NewOrganizationService(directory, userRepo, issueRepo)

	// Initialize handlers
	issueHandler := handler.NewIssueHandler(issueService)
	sprintHandler := handler.NewSprintHandler(sprintService)
	projectHandler := handler.NewProjectHandler(projectService)
	orgHandler := handler.NewOrganizationHandler(orgService)

	// Public routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/api/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Protected routes - require authentication
	authorized := r.Group("/api")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	{
		// Project routes
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.List)
		authorized.GET("/projects/:projectId", projectHandler.Get)
		authorized.DELETE("/projects/:projectId", projectHandler.Delete)
		authorized.GET("/projects/:projectId/metrics", projectHandler.Metrics)

		// Sprint routes
		authorized.GET("/sprints", sprintHandler.List)
		authorized.DELETE("/sprints", sprintHandler.Delete)
		authorized.POST("/projects/:projectId/sprints", sprintHandler.Create)
		authorized.PATCH("/sprints/:sprintId/status", sprintHandler.UpdateStatus)

		// Issue and board routes
		authorized.GET("/sprints/:sprintId/issues", issueHandler.ListBySprint)
		authorized.POST("/sprints/:sprintId/board/move", issueHandler.Move)
		authorized.POST("/projects/:projectId/issues", issueHandler.Create)
		authorized.PUT("/issues/order", issueHandler.UpdateOrder)
		authorized.PATCH("/issues/:issueId", issueHandler.Update)
		authorized.DELETE("/issues/:issueId", issueHandler.Delete)

		// Organization routes
		authorized.GET("/organizations/:org", orgHandler.GetBySlug)
		authorized.GET("/organizations/:org/users", orgHandler.Users)
		authorized.GET("/users/me/issues", orgHandler.MyIssues)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("✅ Server exited properly")
}
