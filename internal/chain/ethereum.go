package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"go.uber.org/zap"

	"github.com/chorusnet/discovery-indexer/internal/adapter"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/logger"
)

// EthereumConfig holds the settings for the Ethereum-backed source
type EthereumConfig struct {
	// MaxRetries bounds the retry loop around transient RPC failures
	MaxRetries uint64
	// RetryInterval is the initial backoff between retries
	RetryInterval time.Duration
}

// ethereumSource implements Source over an Ethereum JSON-RPC endpoint
type ethereumSource struct {
	client  adapter.EthClient
	decoder Decoder
	config  EthereumConfig
}

// NewEthereumSource creates a Source reading blocks from client and decoding
// entity transactions with decoder
func NewEthereumSource(client adapter.EthClient, decoder Decoder, cfg EthereumConfig) Source {
	return &ethereumSource{client: client, decoder: decoder, config: cfg}
}

func (s *ethereumSource) LatestHeight(ctx context.Context) (int64, error) {
	header, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest header: %w", err)
	}
	return header.Number.Int64(), nil
}

func (s *ethereumSource) BlockByNumber(ctx context.Context, number int64) (*domain.BlockData, error) {
	var data *domain.BlockData

	operation := func() error {
		block, err := s.client.BlockByNumber(ctx, big.NewInt(number))
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return backoff.Permanent(domain.ErrBlockNotAvailable)
			}
			return fmt.Errorf("failed to get block %d: %w", number, err)
		}

		txs := make([]domain.EntityTx, 0, len(block.Transactions()))
		for i, raw := range block.Transactions() {
			entityTx, ok, err := s.decoder.Decode(raw, i)
			if err != nil {
				// malformed calldata is the sender's problem, not ours
				logger.WarnCtx(ctx, "skipping undecodable transaction",
					zap.String("txhash", raw.Hash().Hex()),
					zap.Int64("height", number),
					zap.Error(err))
				continue
			}
			if !ok {
				continue
			}
			txs = append(txs, *entityTx)
		}

		data = &domain.BlockData{
			BlockRef: domain.BlockRef{
				Number:     block.Number().Int64(),
				Hash:       block.Hash().Hex(),
				ParentHash: block.ParentHash().Hex(),
				Timestamp:  time.Unix(int64(block.Time()), 0).UTC(), //nolint:gosec,G115
			},
			Txs: txs,
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(s.config.RetryInterval),
		), s.config.MaxRetries),
		ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return data, nil
}
