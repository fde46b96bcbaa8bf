package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/drivent/hotel-booking/internal/config"
	"github.com/drivent/hotel-booking/internal/database"
	"github.com/drivent/hotel-booking/internal/services"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		dbURLFlag      string
		migrate        bool
		purgeAuditDays int
	)
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.BoolVar(&migrate, "migrate", false, "create missing tables and indexes")
	flag.IntVar(&purgeAuditDays, "purge-audit-days", 0, "delete audit logs older than this many days")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if !migrate && purgeAuditDays <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	// Build minimal database config without loading full app config
	dbCfg := config.DatabaseConfig{
		URL:                dbURL,
		Driver:             "postgres",
		MaxConnections:     2,
		MaxIdleConnections: 1,
	}
	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		dbCfg.Driver = driver
	}

	db, err := database.NewConnection(dbCfg, logger)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if migrate {
		if err := database.InitializeDBSchema(ctx, db); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		logger.Info("Schema is up to date")
	}

	if purgeAuditDays > 0 {
		deleted, err := services.NewAuditService(db).CleanupOldAuditLogs(ctx, time.Duration(purgeAuditDays)*24*time.Hour)
		if err != nil {
			logger.Fatalf("audit purge failed: %v", err)
		}
		logger.WithFields(logrus.Fields{
			"deleted":    deleted,
			"older_than": purgeAuditDays,
		}).Info("Audit logs purged")
	}
}
