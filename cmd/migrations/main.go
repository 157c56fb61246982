package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/vncsmyrnk/electoral/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/electoral/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name is required, e.g. init.up")
	}
	migrationName := os.Args[1]

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = config.PostgresURL(os.Getenv)
	}

	db, err := postgres.Open(context.Background(), connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	fileContent, err := migrationFileContent(basePath, migrationName)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.Exec(string(fileContent)); err != nil {
		log.Fatalf("Failed to execute SQL file: %v", err)
	}

	fmt.Println("Migration file executed successfully.")
}

func migrationFileContent(basePath string, migrationName string) ([]byte, error) {
	fileName, err := migrationFileName(basePath, migrationName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(basePath, fileName))
}

// migrationFileName returns the first .sql file whose name ends with
// migrationName.
func migrationFileName(basePath string, migrationName string) (string, error) {
	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	files, err := os.ReadDir(basePath)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if !f.IsDir() && pattern.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file %q not found in %s", migrationName, basePath)
}
