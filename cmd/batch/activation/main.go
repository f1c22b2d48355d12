package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pool-booking/internal/domain/lifecycle"
	"pool-booking/internal/handler/middleware"
	"pool-booking/internal/infra/batchstore"
	"pool-booking/internal/infra/db"
	"pool-booking/internal/pkg/clock"
	"pool-booking/internal/pkg/config"
	"pool-booking/internal/pkg/errs"
	"pool-booking/internal/usecase/batch"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/joho/godotenv"
)

const segmentName = "pool-booking-activation"

func isLocal() bool {
	return os.Getenv("ENV") == "LOCAL"
}

func main() {
	_ = godotenv.Load()

	batchSize := flag.Int("batch-size", 500, "maximum number of bookings activated per run")
	flag.Parse()

	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	// Step Functions passes the task token as the last argument unless it is set in the environment.
	taskToken := cfg.Batch.TaskToken
	if taskToken == "" && flag.NArg() > 0 {
		taskToken = flag.Arg(flag.NArg() - 1)
	}
	if taskToken == "" && !isLocal() {
		logger.Error("task token is required outside ENV=LOCAL")
		os.Exit(1)
	}

	if cfg.Batch.EnableTracing {
		if err := xray.Configure(xray.Config{
			DaemonAddr:     cfg.Batch.XRayDaemon,
			ServiceVersion: "1.0.0",
		}); err != nil {
			logger.Warn("failed to configure X-Ray, using defaults", "error", err)
			if err := xray.Configure(xray.Config{}); err != nil {
				logger.Error("failed to configure default X-Ray settings", "error", err)
				os.Exit(1)
			}
		}
		_ = os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
	}

	var notifier batch.TaskNotifier
	if !isLocal() {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		notifier = sfn.NewFromConfig(awsCfg)
	}

	sqlDB, cleanup, err := db.OpenSQLX(cfg.DB, cfg.Batch.EnableTracing)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	clk := clock.NewRealClock()
	service := batch.NewActivationService(
		batchstore.NewBookingStore(sqlDB, cfg.Batch.EnableTracing),
		lifecycle.NewController(clk, logger),
		clk,
		notifier,
		batch.ActivationOptions{
			TaskToken: taskToken,
			BatchSize: *batchSize,
			Tracing:   cfg.Batch.EnableTracing,
		},
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Batch.Timeout)
	defer cancel()

	if cfg.Batch.EnableTracing {
		var seg *xray.Segment
		ctx, seg = xray.BeginSegment(ctx, segmentName)
		defer seg.Close(nil)
		if err := seg.AddMetadata("timeout", cfg.Batch.Timeout.String()); err != nil {
			logger.Warn("failed to add timeout metadata", "error", err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- service.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Warn("received signal, stopping activation batch", "signal", sig.String())
		cancel()
		<-errChan
		os.Exit(1)
	case <-ctx.Done():
		err := errs.Wrapf(ctx.Err(), "activation batch timed out after %s", cfg.Batch.Timeout)
		fail(logger, service, err)
	case err := <-errChan:
		if err != nil {
			fail(logger, service, err)
		}
		logger.Info("activation batch completed successfully")
	}
}

func fail(logger *slog.Logger, service *batch.ActivationService, err error) {
	logger.Error("activation batch failed",
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 8))

	// The run context may already be done; the callback gets its own.
	if notifyErr := service.ReportFailure(context.Background(), err); notifyErr != nil {
		logger.Error("failed to send task failure", "error", notifyErr)
	}
	os.Exit(1)
}
