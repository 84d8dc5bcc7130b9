package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"zipcode-api/internal/config"
	"zipcode-api/internal/repository"

	"github.com/jackc/pgx/v5"
)

func main() {
	configPath := flag.String("config", "configs", "Directory containing app.env")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DBSource == "" {
		fmt.Println("Error: DB_SOURCE is required")
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(context.Background(), repository.Schema); err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	count, err := verifySchema(conn)
	if err != nil {
		fmt.Printf("Error verifying schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("lookup_history ready with %d records\n", count)
}

func verifySchema(conn *pgx.Conn) (int, error) {
	var indexes int
	err := conn.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM pg_indexes WHERE tablename = 'lookup_history'").Scan(&indexes)
	if err != nil {
		return 0, fmt.Errorf("failed to count indexes: %w", err)
	}

	// primary key plus two lookup indexes
	if indexes < 3 {
		return 0, fmt.Errorf("index count mismatch: expected at least 3, got %d", indexes)
	}

	var count int
	err = conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM lookup_history").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}
