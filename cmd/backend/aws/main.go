// Package main implements the AWS Lambda backend for the actifly beta API.
// It serves the beta-signup, stats, admin and contact endpoints.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/actifly/api/internal/config"
	"github.com/actifly/api/internal/constants"
	ddb "github.com/actifly/api/internal/database/dynamodb"
	"github.com/actifly/api/internal/lambdaapi"
	"github.com/actifly/api/internal/logger"
	"github.com/actifly/api/internal/mail"
	"github.com/actifly/api/internal/server"
	"github.com/actifly/api/internal/signup"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func main() {
	cfg := config.MustLoadBackend()
	log := logger.Initialize(constants.Production, cfg.GetLogLevel())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	cancel()
	if err != nil {
		log.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	router := buildRouter(cfg, awsCfg, log)

	log.Debug("starting beta API Lambda handler")
	lambda.Start(lambdaapi.NewHandler(router))
}

func buildRouter(cfg *config.Config, awsCfg aws.Config, log *slog.Logger) *server.Router {
	store := ddb.NewSignupRepository(dynamodb.NewFromConfig(awsCfg), cfg.SignupsTable, log)
	registry := signup.NewRegistry(store, cfg.MaxCapacity, log)

	var mailer mail.Sender
	if cfg.MailAPIKey != "" {
		mailer = mail.NewClient(cfg.MailEndpoint, cfg.MailAPIKey,
			cfg.MailFromAddress, cfg.MailFromName, cfg.MailToAddress, log)
	} else {
		log.Warn("ZOHO_API_KEY not set, contact endpoint disabled")
	}

	return server.NewRouter(cfg, registry, mailer, log)
}
