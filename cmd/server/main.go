package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/45061/Hotelregistryapp/internal/config"
	"github.com/45061/Hotelregistryapp/internal/infra"
	"github.com/45061/Hotelregistryapp/internal/metrics"
	"github.com/45061/Hotelregistryapp/internal/repository"
	"github.com/45061/Hotelregistryapp/internal/router"
	"github.com/45061/Hotelregistryapp/internal/service"
	"github.com/45061/Hotelregistryapp/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if cfg.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	corteHora, corteMinuto, err := service.ParseCorte(cfg.ReportCutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid REPORT_CUTOFF")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL, cfg.WorkerPoolSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	m := metrics.New()

	// Daily report: shared by the admin endpoint and the worker pool.
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"), m)
	mailer := infra.NewBreakerMailer(infra.NewMailer(cfg), mailCB)
	reporteSvc := service.NewReporteService(
		repository.NewLibroRepository(db),
		infra.GenerateReportePDF,
		mailer,
		service.ReporteConfig{
			Destinatario: cfg.ReportRecipient,
			Location:     cfg.Location(),
			CorteHora:    corteHora,
			CorteMinuto:  corteMinuto,
		},
		m,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(rdb, map[string]worker.Handler{
		worker.JobReporte: worker.NewReporteWorker(reporteSvc),
	})
	pool.Start(ctx, cfg.WorkerPoolSize)

	if _, err := worker.StartReportScheduler(ctx, cfg.ReportCron, cfg.Location(), worker.NewDispatcher(rdb)); err != nil {
		log.Fatal().Err(err).Msg("failed to start report scheduler")
	}

	r := router.New(cfg, db, rdb, m, reporteSvc, mailCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // enviar-reporte renders and mails synchronously
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("hotel registry backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	_ = rdb.Close()
	log.Info().Msg("server exited")
}
