package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TooEZtz/Instagram/internal/config"
	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/handler"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/internal/service"
	"github.com/TooEZtz/Instagram/internal/store"
	"github.com/TooEZtz/Instagram/pkg/database"
	"github.com/TooEZtz/Instagram/pkg/jwt"
	pkglog "github.com/TooEZtz/Instagram/pkg/log"
	"github.com/TooEZtz/Instagram/pkg/middleware"
	"github.com/TooEZtz/Instagram/pkg/storage"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// 2. Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger := pkglog.L()

	// 3. Init DB (GORM, auto-migrate all models)
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get underlying sql.DB")
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.FollowModel{},
		&domain.PostModel{},
		&domain.StoryModel{},
		&domain.LikeModel{},
		&domain.CommentModel{},
		&domain.ConversationModel{},
		&domain.ConversationMemberModel{},
		&domain.MessageModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// 4. Init followers cache (Redis, optional)
	var followStore store.FollowStore = store.NoopFollowStore{}
	if cfg.Redis.Enabled {
		redisStore, err := store.NewRedisFollowStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to redis, followers cache disabled")
		} else {
			followStore = redisStore
			logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
		}
	}
	defer followStore.Close()

	// 5. Init local asset storage
	assetStorage, err := storage.NewLocalStorage(cfg.Storage.AssetsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init asset storage")
	}

	// 6. Init token manager
	tokens, err := jwt.NewManager(cfg.Auth.TokenDuration, cfg.Auth.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init token manager")
	}

	// 7. Create repos and services
	userRepo := repository.NewGormUserRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	storyRepo := repository.NewGormStoryRepository(db)
	engagementRepo := repository.NewGormEngagementRepository(db)
	conversationRepo := repository.NewGormConversationRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)

	socialSvc := service.NewSocialGraphService(userRepo, followRepo, followStore)
	accountSvc := service.NewAccountService(userRepo, followRepo, socialSvc, tokens)
	feedSvc := service.NewFeedService(followRepo, postRepo, storyRepo, engagementRepo)
	contentSvc := service.NewContentService(postRepo, storyRepo, engagementRepo, assetStorage)
	engagementSvc := service.NewEngagementService(postRepo, engagementRepo)
	messagingSvc := service.NewMessagingService(userRepo, conversationRepo, messageRepo)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// 8. Setup Gin router + HTTP server
	httpHandler := handler.NewHandler(
		accountSvc, socialSvc, feedSvc, contentSvc, engagementSvc, messagingSvc,
		authMiddleware, assetStorage.BasePath(),
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	httpHandler.RegisterRoutes(r)

	// 9. Start server goroutine
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// 10. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
	}
	logger.Info().Msg("server stopped")
}
