package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/shopfloor/internal/cli"
	"github.com/alexanderramin/shopfloor/internal/config"
	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/mes"
	"github.com/alexanderramin/shopfloor/internal/metrics"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("SHOPFLOOR_CONFIG"))
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	logger := newLogger(cfg.Log.Level, interactive)

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	entryRepo := repository.NewSQLiteEntryRepo(database)
	qualityRepo := repository.NewSQLiteQualityRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	metrics.Register()
	mesOpts := []mes.Option{
		mes.WithObserver(mes.MultiObserver{mes.NewLogObserver(logger), metrics.MESObserver{}}),
	}
	if ttl := cfg.CacheTTL(); ttl > 0 {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		mesOpts = append(mesOpts, mes.WithRedisCache(rdb))
	}
	client := mes.NewClient(mes.Config{
		BaseURL:    cfg.API.BaseURL,
		TimeoutMs:  cfg.API.TimeoutMs,
		MaxRetries: cfg.API.MaxRetries,
		RateLimit:  cfg.API.RateLimit,
		CacheTTL:   cfg.CacheTTL(),
	}, service.NewSessionTokens(sessionRepo), mesOpts...)

	observer := service.MultiUseCaseObserver{
		service.NewLogUseCaseObserver(logger),
		service.MetricsUseCaseObserver{},
	}

	// Wire services
	app := &cli.App{
		Auth:     service.NewAuthService(client, sessionRepo, cfg.Auth.PublicKey, observer),
		WorkTime: service.NewWorkTimeService(entryRepo, sessionRepo, client, uow, cfg.ThrottleWindow(), observer),
		Qiandiao: service.NewQiandiaoService(sessionRepo, client, uow, cfg.ThrottleWindow(), observer),
		Quality:  service.NewQualityService(qualityRepo, sessionRepo, client, uow, observer),
		Lookup:   service.NewLookupService(client, cfg.Org.SysOrgCode),
		Report:   service.NewReportService(entryRepo, uow, observer),
	}

	// Prompts need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	err = rootCmd.ExecuteContext(ctx)

	if mErr := metrics.WriteTextfile(cfg.Metrics.Textfile); mErr != nil {
		logger.Warn().Err(mErr).Str("path", cfg.Metrics.Textfile).Msg("writing metrics textfile")
	}
	return err
}

// newLogger writes to stderr so command output on stdout stays clean.
// Terminals get the console writer, everything else JSON lines.
func newLogger(level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if console {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger = zerolog.New(output)
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}
