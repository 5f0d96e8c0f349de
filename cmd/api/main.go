package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/voucherdesk/internal/config"
	"github.com/MrJamesThe3rd/voucherdesk/internal/database"
	deskHttp "github.com/MrJamesThe3rd/voucherdesk/internal/http"
	journalHandler "github.com/MrJamesThe3rd/voucherdesk/internal/http/journal"
	voucherHandler "github.com/MrJamesThe3rd/voucherdesk/internal/http/voucher"
	"github.com/MrJamesThe3rd/voucherdesk/internal/importer"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/voucherdesk/internal/ledger/store"
	"github.com/MrJamesThe3rd/voucherdesk/internal/storage"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
	voucherStore "github.com/MrJamesThe3rd/voucherdesk/internal/voucher/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, "postgres"); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	files, err := storage.New(cfg.Server.UploadDir)
	if err != nil {
		slog.Error("failed to open file storage", "error", err)
		os.Exit(1)
	}

	var (
		ledgerService  = ledger.NewService(ledgerStore.New(db))
		voucherService = voucher.NewService(voucherStore.New(db), ledgerService)
		importService  = importer.NewService()
	)

	var (
		fileURL  = strings.TrimSuffix(cfg.Server.PublicURL, "/") + "/api/v1" + deskHttp.FilesPath
		voucherH = voucherHandler.NewHandler(voucherService, files, fileURL)
		journalH = journalHandler.NewHandler(ledgerService, importService)
	)

	router := deskHttp.New(deskHttp.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AuthSecret:     cfg.Server.AuthSecret,
	}, voucherH, journalH, files.Handler())

	if cfg.Server.AuthSecret == "" {
		slog.Warn("AUTH_SECRET is not set, API authentication is disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
