package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/piplan-io/piplan/internal/calendar"
	"github.com/piplan-io/piplan/internal/cli"
	"github.com/piplan-io/piplan/internal/cli/formatter"
	"github.com/piplan-io/piplan/internal/db"
	"github.com/piplan-io/piplan/internal/domain"
	"github.com/piplan-io/piplan/internal/proposer"
	"github.com/piplan-io/piplan/internal/repository"
	"github.com/piplan-io/piplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.piplan/piplan.db
	dbPath := os.Getenv("PIPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".piplan", "piplan.db")
	}

	// Load the holiday calendar when configured; capacity math treats a
	// missing calendar as "no holidays".
	var holidays map[string]bool
	if calPath := os.Getenv("PIPLAN_CALENDAR"); calPath != "" {
		cal, err := calendar.Load(calPath)
		if err != nil {
			return fmt.Errorf("loading holiday calendar: %w", err)
		}
		holidays = cal.DateSet()
	}

	cyclePolicy := domain.CyclePolicy(os.Getenv("PIPLAN_CYCLE_POLICY"))

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	teamRepo := repository.NewSQLiteTeamRepo(database)
	featureRepo := repository.NewSQLiteFeatureRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	versionRepo := repository.NewSQLitePlanVersionRepo(database)

	// Wire unit of work and per-session locking
	uow := db.NewSQLiteUnitOfWork(database)
	locker := service.NewSessionLocker()

	var observers []service.UseCaseObserver
	if v := os.Getenv("PIPLAN_LOG_USECASES"); v == "1" || v == "true" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire the AI proposer only when enabled.
	var proposerClient proposer.Client
	aiCfg := proposer.LoadConfig()
	if aiCfg.Enabled {
		var observer proposer.Observer = proposer.NoopObserver{}
		if aiCfg.LogCalls {
			observer = proposer.NewLogObserver(os.Stderr)
		}
		proposerClient = proposer.NewOllamaClient(aiCfg, observer)
	}

	app := &cli.App{
		Sessions:  service.NewSessionService(sessionRepo, sprintRepo, featureRepo, uow, cyclePolicy),
		Teams:     service.NewTeamService(teamRepo, sessionRepo),
		Features:  service.NewFeatureService(featureRepo, sessionRepo, uow),
		Plan:      service.NewPlanService(database, uow, locker, holidays, observers...),
		Reconcile: service.NewReconcileService(database, uow, locker, proposerClient, holidays, observers...),
		Versions:  service.NewVersionService(versionRepo, assignmentRepo, sessionRepo, uow, locker, observers...),
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
