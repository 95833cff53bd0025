package main

import (
	"context"
	"flag"
	"os"

	"reliefsupply/config"
	"reliefsupply/db"
	"reliefsupply/db/mongo"
	"reliefsupply/logger"

	"github.com/sirupsen/logrus"
)

// Usage: migrate [-steps n] up|down
func main() {
	steps := flag.Int("steps", 0, "number of migrations to roll back on down; 0 rolls back all")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.DBType != config.DBTypeMongo {
		log.Fatalf("migrations require DB_TYPE=%s, got %q", config.DBTypeMongo, cfg.DBType)
	}
	if flag.NArg() != 1 {
		log.Error("usage: migrate [-steps n] up|down")
		os.Exit(2)
	}

	ctx := context.Background()
	mg := mongo.NewMongoDB(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err := mg.Connect(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}
	defer mg.Disconnect(ctx)

	switch flag.Arg(0) {
	case "up":
		err = db.RunMigrations(mg.Client, cfg.Mongo.Database, cfg.MigrationsPath, log)
	case "down":
		err = db.RollbackMigrations(mg.Client, cfg.Mongo.Database, cfg.MigrationsPath, *steps, log)
	default:
		log.Errorf("unknown command %q, want up or down", flag.Arg(0))
		os.Exit(2)
	}
	if err != nil {
		log.WithError(err).Error("migration failed")
		os.Exit(1)
	}
}
