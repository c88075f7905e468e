package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chorusnet/discovery-indexer/internal/adapter"
	"github.com/chorusnet/discovery-indexer/internal/chain"
	"github.com/chorusnet/discovery-indexer/internal/config"
	"github.com/chorusnet/discovery-indexer/internal/entities"
	"github.com/chorusnet/discovery-indexer/internal/indexer"
	"github.com/chorusnet/discovery-indexer/internal/ledger"
	"github.com/chorusnet/discovery-indexer/internal/lock"
	"github.com/chorusnet/discovery-indexer/internal/logger"
	"github.com/chorusnet/discovery-indexer/internal/providers/jetstream"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "discovery-indexer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Discovery Indexer")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	ethClient, err := ethDialer.Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial chain RPC", zap.Error(err), zap.String("rpc_url", cfg.Chain.RPCURL))
	}
	defer ethClient.Close()

	decoder, err := chain.NewCalldataDecoder(common.HexToAddress(cfg.Chain.ContractAddress))
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create calldata decoder", zap.Error(err))
	}
	source := chain.NewEthereumSource(ethClient, decoder, chain.EthereumConfig{
		MaxRetries:    cfg.Chain.MaxRetries,
		RetryInterval: cfg.Chain.RetryInterval,
	})

	// Initialize NATS publisher
	natsPublisher, err := jetstream.NewPublisher(
		jetstream.Config{
			URL:            cfg.NATS.URL,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, natsJS, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer natsPublisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	// Initialize Redis lease
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = redisClient.Close() }()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}
	lease := lock.NewLease(redisClient, lock.Config{
		Key: cfg.Redis.LockKey,
		TTL: cfg.Redis.LockTTL,
	})

	// Wire the reconciler and ledger
	rec := reconciler.New(reconciler.Config{
		OrderCutover:   cfg.Chain.OrderCutover,
		VerifierWallet: cfg.Chain.VerifierWallet,
	}, entities.Handlers())
	blockLedger := ledger.New(dataStore, rec, source, ledger.Config{
		StartBlock: cfg.Chain.StartBlock,
	})

	loop := indexer.New(blockLedger, lease, natsPublisher, dataStore, clockAdapter, indexer.Config{
		TickInterval:       cfg.Loop.TickInterval,
		CheckpointSaveFreq: cfg.Loop.CheckpointSaveFreq,
		CheckpointDelay:    cfg.Loop.CheckpointDelay,
	})

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for loop errors
	errCh := make(chan error, 1)

	// Start the loop
	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "indexer"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Discovery Indexer stopped")
}
