package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vncsmyrnk/electoral/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/electoral/internal/config"
	"github.com/vncsmyrnk/electoral/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbURL, timezone string
	var withStations bool

	flag.StringVar(&dbURL, "db-url", os.Getenv("DATABASE_URL"), "Postgres connection URL (defaults to the POSTGRES_* variables)")
	flag.StringVar(&timezone, "timezone", valueOr(os.Getenv("TIMEZONE"), "UTC"), "IANA time zone used for schedule buckets")
	flag.BoolVar(&withStations, "stations", false, "Also print the per-station tally")
	flag.Parse()

	if dbURL == "" {
		dbURL = config.PostgresURL(os.Getenv)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Fatalf("invalid timezone: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	reports := services.NewReportService(postgres.NewReportRepository(db), services.NewClock(loc, time.Now))

	general, err := reports.General(ctx)
	if err != nil {
		log.Fatalf("Error building turnout report: %v", err)
	}
	renderGeneral(os.Stdout, general)

	if withStations {
		stations, err := reports.ByStation(ctx)
		if err != nil {
			log.Fatalf("Error building station report: %v", err)
		}
		renderStations(os.Stdout, stations)
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
