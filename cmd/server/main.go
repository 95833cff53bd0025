package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reliefsupply/auth"
	"reliefsupply/cache"
	"reliefsupply/config"
	"reliefsupply/db"
	"reliefsupply/db/mongo"
	"reliefsupply/handlers"
	"reliefsupply/logger"
	"reliefsupply/models"
	"reliefsupply/repository"
	"reliefsupply/routes"
	"reliefsupply/service"

	"github.com/sirupsen/logrus"
)

type stores struct {
	users     repository.UserRepository
	supplies  repository.SupplyRepository
	resources map[string]repository.DocumentRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Load config from .env and the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	var st stores
	switch cfg.DBType {
	case config.DBTypeMongo:
		mg := mongo.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
		if err := mg.Connect(ctx); err != nil {
			log.WithError(err).Fatal("failed to initialize storage")
		}
		defer func() {
			if err := mg.Disconnect(context.Background()); err != nil {
				log.WithError(err).Error("failed to disconnect from mongo")
			}
		}()

		if cfg.RunMigrations {
			if err := db.RunMigrations(mg.Client, cfg.Mongo.Database, cfg.MigrationsPath, log); err != nil {
				log.WithError(err).Fatal("failed to run migrations")
			}
		}
		st = mongoStores(mg)

	case config.DBTypeMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		st = memoryStores()
	}

	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize provider cache")
		}
		defer rdb.Close()

		st.supplies = cache.NewCachedSupplyRepo(st.supplies, rdb, cfg.Redis.CacheTTL, log)
		st.resources[models.SupplyKind.Name] = st.supplies
		log.WithField("addr", cfg.Redis.Addr).Info("provider ranking cache enabled")
	}

	authService := service.NewAuthService(
		st.users,
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.ExpiresIn),
		log,
	)

	// Handlers
	h := routes.Handlers{
		User:     &handlers.UserHandler{Auth: authService, Log: log},
		Provider: &handlers.ProviderHandler{Ranker: st.supplies, Log: log},
	}
	for _, kind := range models.Kinds() {
		h.Resources = append(h.Resources, &handlers.ResourceHandler{
			Kind: kind,
			Repo: st.resources[kind.Name],
			Log:  log,
		})
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: routes.NewRouter(h, routes.Options{
			CORSAllowedOrigin: cfg.CORSAllowedOrigin,
			RequestTimeout:    cfg.Mongo.Timeout,
			Log:               log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("error during server shutdown")
	}
	log.Info("shutdown complete")
}

func mongoStores(mg *mongo.MongoDB) stores {
	database := mg.DB()
	st := stores{
		users:     repository.NewMongoUserRepo(database),
		resources: make(map[string]repository.DocumentRepository),
	}
	for _, kind := range models.Kinds() {
		repo := repository.NewMongoDocumentRepo(database, kind)
		if kind.Name == models.SupplyKind.Name {
			st.supplies = repo
		}
		st.resources[kind.Name] = repo
	}
	return st
}

func memoryStores() stores {
	st := stores{
		users:     repository.NewMemoryUserRepo(),
		resources: make(map[string]repository.DocumentRepository),
	}
	for _, kind := range models.Kinds() {
		repo := repository.NewMemoryDocumentRepo(kind)
		if kind.Name == models.SupplyKind.Name {
			st.supplies = repo
		}
		st.resources[kind.Name] = repo
	}
	return st
}
