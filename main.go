package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"pricewatch/checker"
	"pricewatch/config"
	"pricewatch/models"
	"pricewatch/scraper/backoffice"
	"pricewatch/services"
	"pricewatch/storage"
	"pricewatch/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Booking price-integrity monitor starting ===")
	logger.Info("Config — venues: %d | days ahead: %d | concurrency: %d | rate: %dms",
		len(models.Venues), cfg.DaysAhead, cfg.MaxConcurrency, cfg.RateLimitMs)

	if cfg.AuthUser == "" || cfg.AuthPass == "" {
		logger.Error("Backoffice credentials missing — set AUTH_USER_BACK and AUTH_PASS_BACK")
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV report: %v", err)
		os.Exit(1)
	}

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer pgWriter.Close()

	allocCtx, cancelAlloc := backoffice.NewAllocator(cfg)
	defer cancelAlloc()

	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}

	var (
		mu         sync.Mutex
		collected  []models.Violation
		failedRuns int64
	)

	ctx := context.Background()
	start := models.Today()

	for _, v := range models.Venues {
		for day := 0; day < cfg.DaysAhead; day++ {
			venue := v
			date := start.AddDays(day)

			pool.Submit(func() {
				name := fmt.Sprintf("%s %s", venue.Name, date)

				var violations []models.Violation
				err := retry.Do(ctx, name, func(ctx context.Context) error {
					var runErr error
					violations, runErr = runCheck(ctx, allocCtx, cfg, logger, venue, date)
					return runErr
				})
				if err != nil {
					atomic.AddInt64(&failedRuns, 1)
					logger.Error("[run] %s: %v", name, err)
					return
				}
				if len(violations) == 0 {
					return
				}

				for _, viol := range violations {
					logger.Warn("[violation] %s", viol)
				}
				if err := csvWriter.Append(violations); err != nil {
					logger.Error("[run] %s: csv append: %v", name, err)
				}

				mu.Lock()
				collected = append(collected, violations...)
				mu.Unlock()
			})
		}
	}
	pool.Wait()

	if err := csvWriter.Close(); err != nil {
		logger.Error("CSV close failed: %v", err)
	}

	if err := pgWriter.Write(collected); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
	} else if len(collected) > 0 {
		logger.Info("Stored %d violations in PostgreSQL (table: violations)", len(collected))
	}

	stored, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch violations from DB for summary: %v", err)
		stored = collected
	}

	summarySvc := services.NewSummaryService(logger)
	summarySvc.Print(summarySvc.Generate(stored))

	logger.Info("Sweep complete — %d violations | %d failed runs | report → %s",
		len(collected), failedRuns, cfg.CSVOutputPath)

	if failedRuns > 0 || len(collected) > 0 {
		os.Exit(1)
	}
}

// runCheck performs one isolated (venue, date) check: its own browser
// session, its own login, its own navigator. Nothing is shared with other
// runs except the report writers.
func runCheck(ctx context.Context, allocCtx context.Context, cfg *config.Config, logger *utils.Logger, venue models.Venue, date models.CalendarDate) ([]models.Violation, error) {
	session := backoffice.NewSession(allocCtx, cfg, logger)
	defer session.Close()

	if err := session.Login(ctx); err != nil {
		return nil, err
	}

	nav := checker.NewNavigator(session, venue, logger)
	return nav.Run(ctx, date)
}
