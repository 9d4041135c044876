// Package main runs the actifly beta API as a plain HTTP server for local
// development, with the same wiring as the Lambda backend.
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

	"github.com/actifly/api/internal/config"
	"github.com/actifly/api/internal/constants"
	ddb "github.com/actifly/api/internal/database/dynamodb"
	"github.com/actifly/api/internal/logger"
	"github.com/actifly/api/internal/mail"
	"github.com/actifly/api/internal/server"
	"github.com/actifly/api/internal/signup"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.MustLoadBackend()
	log := logger.Initialize(constants.Development, cfg.GetLogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, cfg.InitTimeout)
	awsCfg, err := awsconfig.LoadDefaultConfig(initCtx)
	cancel()
	if err != nil {
		log.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	store := ddb.NewSignupRepository(dynamodb.NewFromConfig(awsCfg), cfg.SignupsTable, log)
	registry := signup.NewRegistry(store, cfg.MaxCapacity, log)

	var mailer mail.Sender
	if cfg.MailAPIKey != "" {
		mailer = mail.NewClient(cfg.MailEndpoint, cfg.MailAPIKey,
			cfg.MailFromAddress, cfg.MailFromName, cfg.MailToAddress, log)
	} else {
		log.Warn("ZOHO_API_KEY not set, contact endpoint disabled")
	}

	router := server.NewRouter(cfg, registry, mailer, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("local backend listening", "addr", srv.Addr)
		if serveErr := srv.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down local backend")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("local backend exited with error", "error", err)
		os.Exit(1)
	}
}
