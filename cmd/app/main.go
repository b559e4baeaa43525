package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/ccna35/simple-crud-app/internal/api/http"
	"github.com/ccna35/simple-crud-app/internal/cache"
	"github.com/ccna35/simple-crud-app/internal/config"
	"github.com/ccna35/simple-crud-app/internal/db"
	"github.com/ccna35/simple-crud-app/internal/queue"
	"github.com/ccna35/simple-crud-app/internal/queue/asynqserver"
	"github.com/ccna35/simple-crud-app/internal/repository"
	"github.com/ccna35/simple-crud-app/internal/server"
	"github.com/ccna35/simple-crud-app/internal/service"
	"github.com/ccna35/simple-crud-app/internal/worker"
	"github.com/ccna35/simple-crud-app/pkg/auth"
	"github.com/ccna35/simple-crud-app/pkg/email/smtp"
	"github.com/ccna35/simple-crud-app/pkg/hash"
	"github.com/ccna35/simple-crud-app/pkg/logger"

	"github.com/hibiken/asynq"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	log := logger.SetupLogger(cfg.Env)

	log.Infow("starting backend api", "env", cfg.Env)
	log.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		log.Errorw("mysql connect problem", "error", err)
		os.Exit(1)
	}
	defer func() {
		err = dbMySQL.Close()
		if err != nil {
			log.Errorw("error when closing", "error", err)
		}
	}()
	log.Info("mysql connection done")

	if err := db.Migrate(dbMySQL); err != nil {
		log.Errorw("mysql migrate problem", "error", err)
		os.Exit(1)
	}

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		log.Errorw("redis connect problem", "error", err)
		os.Exit(1)
	}

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		log.Errorw("smtp sender creation failed", "error", err)
		return
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		log.Errorw("auth manager creation err", "error", err)
		return
	}

	// Email dispatch goes through asynq
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := asynqClient.Close(); err != nil {
			log.Errorw("asynq client close failed", "error", err)
		}
	}()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Logger:       log,
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		Notifier:     queue.NewEmailDispatcher(asynqClient),
		Redis:        redisClient,
		Repos:        repos,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Queue worker: verification emails + the daily expired token sweep
	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})
	queueServer, queueMux := asynqserver.New(cfg.Cache, workers, services.Verifications)
	go func() {
		if err := queueServer.Run(queueMux); err != nil {
			log.Errorw("error occurred while running queue server", "error", err)
		}
	}()

	scheduler, err := asynqserver.NewScheduler(cfg.Cache, cfg.Verification.CleanupCron)
	if err != nil {
		log.Errorw("scheduler creation failed", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Errorw("error occurred while running scheduler", "error", err)
		}
	}()

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("error occurred while running http server", "error", err)
		}
	}()
	log.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	scheduler.Shutdown()
	queueServer.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		log.Errorw("failed to stop server", "error", err)
	}

	log.Info("app stopped")
}
