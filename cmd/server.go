package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/segmentio/analytics-go/v3"

	"github.com/getforesight/foresight-backend/api"
	"github.com/getforesight/foresight-backend/infra"
	"github.com/getforesight/foresight-backend/repositories"
	"github.com/getforesight/foresight-backend/usecases"
	"github.com/getforesight/foresight-backend/utils"
)

func RunServer(apiVersion string) error {
	// This is where we read the environment variables and set up the configuration for the application.
	gcpConfig := infra.GcpConfig{
		EnableTracing:                utils.GetEnv("ENABLE_GCP_TRACING", false),
		ProjectId:                    utils.GetEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleApplicationCredentials: utils.GetEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
	}
	if gcpConfig.ProjectId == "" {
		// on Cloud Run the project id comes from the metadata server instead
		gcpConfig.ProjectId, _ = infra.GetProjectId()
	}
	apiConfig := api.Configuration{
		Env:               utils.GetEnv("ENV", "development"),
		AppName:           "foresight-backend",
		ApiVersion:        apiVersion,
		Port:              utils.GetRequiredEnv[string]("PORT"),
		ForesightAppUrl:   utils.GetEnv("FORESIGHT_APP_URL", ""),
		SimulationTimeout: utils.GetEnvDuration("SIMULATION_TIMEOUT", 30*time.Second),
		DefaultTimeout:    utils.GetEnvDuration("DEFAULT_TIMEOUT", 5*time.Second),
		MaxRequestSize:    int64(utils.GetEnv("MAX_REQUEST_SIZE", 0)),
		EnablePrometheus:  utils.GetEnv("ENABLE_PROMETHEUS", true),
		GcpConfig:         gcpConfig,
	}
	pgConfig := infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           "foresight",
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
	serverConfig := struct {
		loggingFormat   string
		sentryDsn       string
		segmentWriteKey string
		resultBucketUrl string
		cacheTtlDays    int
		seedOrgName     string
	}{
		loggingFormat:   utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:       utils.GetEnv("SENTRY_DSN", ""),
		segmentWriteKey: utils.GetEnv("SEGMENT_WRITE_KEY", ""),
		resultBucketUrl: utils.GetEnv("RESULTS_BUCKET_URL", ""),
		cacheTtlDays:    utils.GetEnv("SIMULATION_CACHE_TTL_DAYS", usecases.DefaultCacheTtlDays),
		seedOrgName:     utils.GetEnv("CREATE_ORG_NAME", ""),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, apiVersion)
	defer sentry.Flush(3 * time.Second)

	tracingConfig := infra.TelemetryConfiguration{
		ApplicationName: apiConfig.AppName,
		Enabled:         gcpConfig.EnableTracing,
		ProjectID:       gcpConfig.ProjectId,
		Exporter:        utils.GetEnv("TELEMETRY_EXPORTER", "otlp"),
	}
	telemetryRessources, err := infra.InitTelemetry(tracingConfig, apiVersion)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
	}
	ctx = utils.StoreOpenTelemetryTracerInContext(ctx, telemetryRessources.Tracer)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		telemetryRessources.TracerProvider, pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repos := repositories.NewRepositories(pool, gcpConfig.GoogleApplicationCredentials)

	uc := usecases.NewUsecases(repos,
		usecases.WithAppName(apiConfig.AppName),
		usecases.WithApiVersion(apiVersion),
		usecases.WithResultBucketUrl(serverConfig.resultBucketUrl),
		usecases.WithCacheTtlDays(serverConfig.cacheTtlDays),
	)

	if serverConfig.seedOrgName != "" {
		if err := uc.NewOrgSeedUsecase().SeedDemoOrganization(ctx, serverConfig.seedOrgName); err != nil {
			utils.LogAndReportSentryError(ctx, err)
			return err
		}
	}

	segmentClient := analytics.New(serverConfig.segmentWriteKey)

	go utils.RunCheckOutdated(apiVersion)

	router := api.InitRouterMiddlewares(ctx, apiConfig, segmentClient, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	segmentClient.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(
			ctx,
			errors.Wrap(err, "Error while shutting down the server"),
		)
		return err
	}

	return nil
}
