package main

import (
	"fmt"
	"os"
	"path/filepath"

	"homesight/server/config"
	"homesight/server/internal/api"
	"homesight/server/internal/database"
	"homesight/server/internal/features"
	"homesight/server/internal/geocoding"
	"homesight/server/internal/locator"
	"homesight/server/internal/prediction"
	"homesight/server/internal/processor"
	"homesight/server/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// The model's input contract is loaded once and immutable afterwards
	if err := config.LoadModelSchema(cfg.ModelSchemaPath); err != nil {
		logger.WithError(err).Fatal("Failed to load model schema")
	}
	schema := config.GetModelSchema()
	logger.Infof("Loaded model schema %s with %d columns", schema.Version, len(schema.Columns))

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Separate gorm handle for the transactional ingest path
	gormDB, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open gorm connection")
	}

	cacheDir := cfg.GeocodeCacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "homesight", "geocode_cache")
	}
	geocoder := geocoding.NewGeocoder(logger, cacheDir)

	// Assemble the pipeline
	loc := locator.NewLocator(db, logger)
	aggregator := features.NewAggregator(cfg.ReferenceIncome, logger)
	deriver := features.NewDeriver(loc, aggregator, logger)
	model := prediction.NewHTTPModel(cfg.ScoringURL, schema, logger)
	adapter := prediction.NewAdapter(model, logger)

	// Start the ingest pipeline
	ingestQueue := queue.NewRecordQueue(cfg.Ingest.MaxBatchSize, logger)
	batchProcessor := processor.NewBatchProcessor(gormDB, ingestQueue, cfg, logger)
	batchProcessor.Start()
	defer batchProcessor.Stop()

	handler := api.NewHandler(logger, geocoder, deriver, adapter, ingestQueue)

	router := gin.Default()
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %d", cfg.ServerPort)
	if err := router.Run(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
