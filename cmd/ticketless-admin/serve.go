package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/db"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/metrics"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/notify"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/server"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/storage"
	"github.com/RandyVollrath/ticketlesschicago-sub011/internal/store"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the admin moderation HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	if err := db.Migrate(config, logger); err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	docsRepo := store.NewPermitDocumentRepository(pool)
	proofsRepo := store.NewResidencyProofRepository(pool)
	queueRepo := store.NewPropertyTaxQueueRepository(pool)

	fileStore := storage.NewClient(config.SupabaseProjectID, config.SupabaseServiceKey, config.StorageBucketName)
	mailer := notify.NewMailer(config.MailerBaseURL, config.MailerAPIKey, config.MailFrom)
	serverMetrics := metrics.NewServerMetrics()

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("https://%s.supabase.co/auth/v1/.well-known/jwks.json", config.SupabaseProjectID)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register supabase jwk with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		serverMetrics,
		docsRepo,
		proofsRepo,
		queueRepo,
		fileStore,
		mailer,
		jwkCache,
		jwksURL,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
