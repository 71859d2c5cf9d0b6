package main

import (
	"fmt"
	"os"

	"github.com/KwakOri/Temis-sub000/internal/cli"
	"github.com/KwakOri/Temis-sub000/internal/config"
	"github.com/KwakOri/Temis-sub000/internal/db"
	"github.com/KwakOri/Temis-sub000/internal/logger"
	"github.com/KwakOri/Temis-sub000/internal/service"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.Home}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)

	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger.Logger)}
	if cfg.LogUseCases {
		stderr := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "use-case"})
		observers = append(observers, service.NewLogUseCaseObserver(stderr))
	}

	templates := service.NewTemplateService(cfg.TemplatesDir, cfg.MaxPerDay, logger.Logger)
	app := &cli.App{
		Templates: templates,
		Weeks:     service.NewWeekService(uow, templates, logger.Logger, observers...),
		Teams:     service.NewTeamService(uow, templates, logger.Logger, observers...),
		Owner:     cfg.Owner,
	}

	// Forms need a real terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("starting", "db", cfg.DBPath, "templates", cfg.TemplatesDir, "owner", cfg.Owner)
	return cli.NewRootCmd(app).Execute()
}
