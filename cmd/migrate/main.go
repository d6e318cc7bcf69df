package main

import (
	"context"
	"log"
	"time"

	mongoMigration "github.com/samuelpalacioss/cue/internal/migrations/mongo"
	"github.com/samuelpalacioss/cue/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
