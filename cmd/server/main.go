// Package main runs the credit report analyzer HTTP server: XML bureau
// report uploads in, normalized credit reports and query endpoints out.
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/config"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/handlers"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/services/database"
	s3service "github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/services/s3"
	"github.com/AshutoshKumar0206/CreditReportAnalyzer/internal/utils"
)

func main() {
	// Load config first so the logger level is honored
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	logger := utils.GetLogger()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewReportRepository(db)
	if err := repo.CreateTable(context.Background()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// S3 archiving is optional; the service runs fine without a bucket
	var archive *s3service.Service
	if cfg.S3Bucket != "" {
		archive, err = s3service.NewService(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			logger.Warn("Could not initialize S3 archive, continuing without it", utils.Error(err))
			archive = nil
		}
	}

	handler := handlers.NewHandler(db, repo, archive, cfg.MaxUploadMB)

	mux := http.NewServeMux()
	handler.Routes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := "0.0.0.0:" + cfg.Port
	logger.Info("Starting Credit Report Analyzer API server",
		utils.String("addr", addr),
		utils.String("stage", cfg.Stage),
		utils.Bool("s3Archive", archive != nil))

	if err := http.ListenAndServe(addr, c.Handler(mux)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
