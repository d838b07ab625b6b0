package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/app"
	"github.com/mingmingss/feedback-management/internal/config"
	"github.com/mingmingss/feedback-management/internal/controller/httpapi"
	"github.com/mingmingss/feedback-management/internal/repository"
	"github.com/mingmingss/feedback-management/internal/repository/inmem"
	"github.com/mingmingss/feedback-management/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting feedback management server",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
		zap.String("port", cfg.HTTPPort),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		students  service.StudentStore
		classes   service.ScheduledClassStore
		overrides service.OverrideStore
		feedback  service.FeedbackStore
	)

	if cfg.Storage == "memory" {
		db := inmem.Open()
		students = inmem.NewStudentStore(db)
		classes = inmem.NewScheduledClassStore(db)
		overrides = inmem.NewOverrideStore(db)
		feedback = inmem.NewFeedbackStore(db)
	} else {
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("Failed to create connection pool", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}

		migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
		if err != nil {
			logger.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		migrator.Close()

		students = repository.NewStudentRepository(pool)
		classes = repository.NewScheduledClassRepository(pool)
		overrides = repository.NewOverrideRepository(pool)
		feedback = repository.NewFeedbackRepository(pool)
	}

	studentService := service.NewStudentService(students, feedback, logger)
	scheduleService := service.NewScheduleService(classes, overrides, students, cfg.GranularityMinutes, logger)
	feedbackService := service.NewFeedbackService(feedback, students, overrides, logger)
	calendarService := service.NewCalendarService(classes, overrides, feedback, students, cfg.Timezone, logger)

	server := httpapi.New(studentService, feedbackService, scheduleService, calendarService, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(":" + cfg.HTTPPort)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		logger.Error("Server stopped unexpectedly", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
