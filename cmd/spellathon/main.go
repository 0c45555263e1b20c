package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"spellathon/internal/config"
	"spellathon/internal/database"
	"spellathon/internal/repository"
	"spellathon/internal/security"
	"spellathon/internal/service"
	"spellathon/internal/speech"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("database connection established", zap.String("type", cfg.DatabaseType))

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.WordListDir, 0o755); err != nil {
		logger.Fatal("failed to create word list directory", zap.Error(err))
	}

	users := repository.NewUserManager(db, logger)
	words := repository.NewWordManager(db, logger)

	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenDuration)
	auth := service.NewAuthService(users, tokens, cfg.AdminFile, logger)
	lists := service.NewListService(words, cfg.WordListDir, cfg.TrashDir, logger)

	reports, err := service.NewReportService(context.Background(), cfg.AWSRegion, cfg.ReportFrom, cfg.ReportFromName, logger)
	if err != nil {
		logger.Fatal("failed to create report service", zap.Error(err))
	}

	speaker := speech.New(cfg.SpeechBinary, logger)
	if !speaker.Available() {
		fmt.Printf("Note: speech binary %q not found; words will not be spoken aloud.\n", cfg.SpeechBinary)
	}

	app := NewApp(cfg, auth, lists, reports, users, speaker, logger)
	if err := app.Run(); err != nil {
		logger.Fatal("application error", zap.Error(err))
	}
}

// newLogger writes structured logs to a file so the terminal stays
// clear for the menus.
func newLogger() (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"spellathon.log"}
	logCfg.ErrorOutputPaths = []string{"spellathon.log"}
	return logCfg.Build()
}
