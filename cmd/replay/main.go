// Command replay re-delivers previously logged activity event batches to a
// collection endpoint, preserving the original batch boundaries. Useful for
// backfilling a new sink from an existing log file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
	"github.com/xinran093/synthesisAI-V2/infrastructure/config"
	"github.com/xinran093/synthesisAI-V2/infrastructure/delivery"
	"github.com/xinran093/synthesisAI-V2/infrastructure/persistence/file"
	"github.com/xinran093/synthesisAI-V2/pkg/observability"
)

func main() {
	logPath := flag.String("log", "", "event log to replay (default: the configured log)")
	sinkURL := flag.String("sink", "", "collection endpoint (default: the configured sink)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	path := *logPath
	if path == "" {
		path = filepath.Join(cfg.Storage.DataDir, cfg.Storage.EventLog)
	}
	url := *sinkURL
	if url == "" {
		url = cfg.Buffer.SinkURL
	}

	eventLog, err := file.NewEventLog(path, logger)
	if err != nil {
		logger.Fatal("Failed to open event log", zap.Error(err))
	}

	ctx := context.Background()
	batches, err := eventLog.ReadAll(ctx)
	if err != nil {
		logger.Fatal("Failed to read event log", zap.Error(err))
	}
	if len(batches) == 0 {
		logger.Info("event log is empty, nothing to replay", zap.String("path", path))
		return
	}

	sink := delivery.NewHTTPSink(url, &http.Client{}, logger)

	delivered := 0
	failed := 0
	skipped := 0
	for _, raw := range batches {
		var events []entities.Event
		if err := json.Unmarshal(raw, &events); err != nil {
			skipped++
			logger.Warn("skipping batch that does not parse as events", zap.Error(err))
			continue
		}
		if len(events) == 0 {
			continue
		}
		if err := sink.Deliver(ctx, events); err != nil {
			failed++
			logger.Warn("batch delivery failed", zap.Int("events", len(events)), zap.Error(err))
			continue
		}
		delivered += len(events)
	}

	logger.Info("replay finished",
		zap.String("sink", url),
		zap.Int("events", delivered),
		zap.Int("failedBatches", failed),
		zap.Int("skippedBatches", skipped),
	)
}
