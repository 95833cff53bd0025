package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func newMigrator(client *mongo.Client, database, sourceURL string) (*migrate.Migrate, error) {
	driver, err := mongodb.WithInstance(client, &mongodb.Config{DatabaseName: database})
	if err != nil {
		return nil, fmt.Errorf("could not start mongodb migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, database, driver)
	if err != nil {
		return nil, fmt.Errorf("migration failed to start: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending migration under sourceURL.
func RunMigrations(client *mongo.Client, database, sourceURL string, log logrus.FieldLogger) error {
	m, err := newMigrator(client, database, sourceURL)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("migrations already up to date")
			return nil
		}
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	log.Info("migrations applied successfully")
	return nil
}

// RollbackMigrations reverts the last steps migrations, or all of them when steps <= 0.
func RollbackMigrations(client *mongo.Client, database, sourceURL string, steps int, log logrus.FieldLogger) error {
	m, err := newMigrator(client, database, sourceURL)
	if err != nil {
		return err
	}

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not roll back migrations: %w", err)
	}

	log.WithField("steps", steps).Info("migrations rolled back")
	return nil
}
