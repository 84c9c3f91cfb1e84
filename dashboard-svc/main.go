package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restodash/config"
	httpapi "restodash/dashboard-svc/internal/api/http"
	"restodash/dashboard-svc/internal/apiclient"
	"restodash/dashboard-svc/internal/live"
	"restodash/dashboard-svc/internal/logger"
	"restodash/dashboard-svc/internal/service"
	"restodash/dashboard-svc/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// instanceName identifies this replica in its Kafka consumer group.
func instanceName() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return uuid.NewString()
}

func newUploader(ctx context.Context, cfg *config.Configuration, log logrus.FieldLogger) httpapi.Uploader {
	if !cfg.S3Enabled() {
		log.WithField("dir", cfg.UploadDir).Info("storing uploads on local disk")
		return storage.NewLocalUploader(cfg.UploadDir)
	}
	client, err := config.NewS3Client(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to init S3 client")
	}
	log.WithField("bucket", cfg.S3Bucket).Info("storing uploads in S3")
	return storage.NewS3Uploader(client, cfg.S3Bucket, cfg.S3PublicBaseURL)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.WithError(err).Fatal("Failed to ensure schema")
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg)
	defer writer.Close()

	reader := config.NewKafkaReader(cfg, instanceName())
	defer reader.Close()

	backend := apiclient.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}, log)

	query := service.NewQueryService(storage.NewRedisCache(rdb, cfg.CacheTTL), log)
	sessions := service.NewSessionService(backend, storage.NewRedisSessionStore(rdb), repo, cfg.SessionTTL, log)
	changes := service.NewChangeService(query, repo, storage.NewKafkaPublisher(writer), log)
	qr := service.NewQRService(repo, service.DefaultQRGenerator{BaseURL: cfg.GuestURL}, log)

	hub := live.NewHub(log)
	go hub.Run(ctx)

	consumer := service.NewConsumer(reader, query, hub, log)
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(sessions, query, changes, qr, backend, newUploader(ctx, cfg, log), hub, httpapi.TTLs{
		Default:      cfg.CacheTTL,
		ChatSessions: cfg.ChatSessionsTTL,
		ChatMessages: cfg.ChatMessagesTTL,
	}, log)
	handler.Activity = repo

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           httpapi.NewRouter(handler, cfg.AllowedOrigins(), cfg.UploadDir, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("address", cfg.Address).Info("Dashboard Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
