package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// Creates the credit_reports schema. The server also does this on startup;
// the script exists for provisioning a database before first deploy.
func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Could not load .env file: %v\n", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("Connecting to PostgreSQL...")
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	fmt.Println("Connected. Creating schema...")

	_, err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS credit_reports (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			pan TEXT NOT NULL,
			mobile TEXT NOT NULL,
			credit_score INT NOT NULL,
			current_balance BIGINT NOT NULL,
			file_name TEXT NOT NULL,
			upload_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			document JSONB NOT NULL
		)`)
	if err != nil {
		fmt.Printf("Failed to create credit_reports table: %v\n", err)
		os.Exit(1)
	}

	_, err = conn.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_credit_reports_upload_date
		ON credit_reports (upload_date DESC)`)
	if err != nil {
		fmt.Printf("Failed to create index: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Schema ready.")
}
