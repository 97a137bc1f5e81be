package main

import (
	"context"
	"log"
	"os"

	"github.com/SAP-F-2025/tutoring-service/internal/config"
	"github.com/SAP-F-2025/tutoring-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
	"github.com/SAP-F-2025/tutoring-service/internal/validator"
	"github.com/SAP-F-2025/tutoring-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewZapLogger(cfg.LogLevel, "console", false)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Schema changes are explicit here
	cfg.Database.AutoMigrate = false
	db, err := pkg.InitDatabase(cfg)
	errAndDie(logger, err)

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{DB: db, Logger: logger})
	errAndDie(logger, repoManager.Initialize())
	defer repoManager.Shutdown(context.Background()) //nolint:errcheck

	serviceManager := services.NewServiceManager(repoManager.GetRepository(), logger, validator.New(), nil, services.ServiceManagerConfig{})
	errAndDie(logger, serviceManager.Initialize(context.Background()))

	cli := commandLine{
		db:        db,
		videos:    serviceManager.Video(),
		analytics: serviceManager.Analytics(),
		out:       os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("Command failed", "error", err)
		}
		utils.Sync(logger)
		os.Exit(1)
	}
	utils.Sync(logger)
}

func errAndDie(logger utils.Logger, err error) {
	if err != nil {
		logger.Error("Admin setup failed", "error", err)
		utils.Sync(logger)
		os.Exit(1)
	}
}
