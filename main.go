package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/railpath-hq/railrouter/pkg/adapters"
	"github.com/railpath-hq/railrouter/pkg/circuitbreaker"
	"github.com/railpath-hq/railrouter/pkg/compliance"
	"github.com/railpath-hq/railrouter/pkg/config"
	"github.com/railpath-hq/railrouter/pkg/events"
	kafkaevents "github.com/railpath-hq/railrouter/pkg/events/kafka"
	"github.com/railpath-hq/railrouter/pkg/health"
	"github.com/railpath-hq/railrouter/pkg/liquidity"
	"github.com/railpath-hq/railrouter/pkg/logger"
	"github.com/railpath-hq/railrouter/pkg/rails"
	"github.com/railpath-hq/railrouter/pkg/router"
	"github.com/railpath-hq/railrouter/pkg/storage"
	"github.com/railpath-hq/railrouter/pkg/storage/memory"
	"github.com/railpath-hq/railrouter/pkg/storage/postgres"
)

// main is the composition root: it constructs the single routing service
// instance with all collaborators injected and exposes the operational
// surface. The surrounding payment service embeds the router as a library;
// transport for the boundary operations lives there, not here.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	stdLogger := logger.NewStdLogger(cfg.LoggerConfig.Coloring, cfg.LoggerConfig.Level)

	catalog := rails.DefaultCatalog()
	breakers := circuitbreaker.NewRegistry(cfg.Breaker.Threshold, cfg.Breaker.Cooldown)

	// Rail adapters: one HTTP client covers every fiat category, the
	// ledger adapter settles stablecoin rails on-chain.
	fiatAdapter := adapters.NewFiatAdapter(cfg.FiatGateway.URL, cfg.FiatGateway.APIKey, stdLogger)
	ledgerAdapter, err := adapters.NewLedgerAdapter(
		cfg.Ledger.RPCURL,
		cfg.Ledger.PrivateKey,
		cfg.Ledger.TokenAddress,
		cfg.Ledger.TokenDecimals,
		stdLogger,
	)
	if err != nil {
		log.Fatalf("Failed to create ledger adapter: %v", err)
	}

	adapterTable := make(map[string]adapters.RailAdapter)
	for _, r := range catalog.Rails() {
		switch r.Category {
		case rails.CategoryLedgerAsset:
			adapterTable[r.ID] = ledgerAdapter
		default:
			adapterTable[r.ID] = fiatAdapter
		}
	}

	var gate compliance.Gate
	if cfg.Compliance.URL != "" {
		gate = compliance.NewClient(cfg.Compliance.URL, cfg.Compliance.APIKey, stdLogger)
	} else {
		stdLogger.Notice("COMPLIANCE_URL not set, using built-in allow-all gate")
		gate = compliance.NewStaticGate(1.0)
	}

	var repo storage.IntentRepository
	if cfg.PostgresDSN != "" {
		pgStore, err := postgres.NewStore(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		repo = pgStore
	} else {
		stdLogger.Notice("POSTGRES_DSN not set, intents are held in memory only")
		repo = memory.NewStore()
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafkaevents.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				stdLogger.Error("Failed to close kafka publisher: %v", err)
			}
		}()
		publisher = kafkaPublisher
	}

	svc, err := router.NewService(router.Params{
		Catalog:   catalog,
		Gate:      gate,
		Liquidity: liquidity.NewStaticProvider(),
		Adapters:  adapterTable,
		Breakers:  breakers,
		Repo:      repo,
		Publisher: publisher,
		Weights: router.Weights{
			Cost:        cfg.Weights.Cost,
			Time:        cfg.Weights.Time,
			FX:          cfg.Weights.FX,
			Liquidity:   cfg.Weights.Liquidity,
			Policy:      cfg.Weights.Policy,
			Reliability: cfg.Weights.Reliability,
		},
		Logger:         stdLogger,
		AttemptTimeout: cfg.AttemptTimeout,
		IntentTTL:      cfg.IntentTTL,
	})
	if err != nil {
		log.Fatalf("Failed to create routing service: %v", err)
	}

	healthServer := health.NewServer(cfg.MetricsPort, svc.Catalog(), svc.Breakers(), stdLogger)
	go healthServer.Start()

	stdLogger.Info("Rail routing service ready with %d rails", catalog.Len())

	// Block until termination; the embedding service drives CreateIntent
	// and ExecuteIntent directly.
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	<-signalCh
	stdLogger.Info("Received termination signal, shutting down")
}
