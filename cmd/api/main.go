package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pettycash-dev/pettycash/internal/config"
	"github.com/pettycash-dev/pettycash/internal/database"
	"github.com/pettycash-dev/pettycash/internal/entry"
	entryStore "github.com/pettycash-dev/pettycash/internal/entry/store"
	"github.com/pettycash-dev/pettycash/internal/export"
	pettycashHttp "github.com/pettycash-dev/pettycash/internal/http"
	entryHandler "github.com/pettycash-dev/pettycash/internal/http/entry"
	exportHandler "github.com/pettycash-dev/pettycash/internal/http/export"
	importHandler "github.com/pettycash-dev/pettycash/internal/http/importcsv"
	refdataHandler "github.com/pettycash-dev/pettycash/internal/http/refdata"
	reportHandler "github.com/pettycash-dev/pettycash/internal/http/report"
	"github.com/pettycash-dev/pettycash/internal/importer"
	"github.com/pettycash-dev/pettycash/internal/refdata"
	"github.com/pettycash-dev/pettycash/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repo, err := newRepository(cfg)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}

	refSource := refdata.NewSource()

	var (
		entryService  = entry.NewService(repo)
		reportService = report.NewService(entryService)
		exportService = export.NewService(entryService, cfg.Receipts.Token)
	)

	var (
		entryH   = entryHandler.NewHandler(entryService, refSource)
		reportH  = reportHandler.NewHandler(reportService)
		importH  = importHandler.NewHandler(importer.NewParser(), entryService, refSource)
		exportH  = exportHandler.NewHandler(exportService)
		refdataH = refdataHandler.NewHandler(refSource)
	)

	router := pettycashHttp.New(entryH, reportH, importH, exportH, refdataH, pettycashHttp.Options{
		AuthSecret:     cfg.Auth.Secret,
		AllowedOrigins: cfg.CORS.Origins,
	})

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.App.Port),
		Handler:     router,
		ReadTimeout: cfg.App.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "backend", cfg.Store.Backend)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newRepository(cfg *config.Config) (entry.Repository, error) {
	if cfg.Store.Backend == config.BackendPostgres {
		db, err := database.New(cfg.ConnectionString(), database.Options{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}

		return entryStore.NewPostgres(db), nil
	}

	return entryStore.NewMemory(), nil
}
