package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorusnet/discovery-indexer/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
debug: true
database:
  host: localhost
  user: postgres
  password: postgres
  dbname: discovery
chain:
  rpc_url: http://localhost:8545
  contract_address: "0x7e4a00000000000000000000000000000000c0de"
  start_block: 100
`

func TestLoadIndexerConfig(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := config.LoadIndexerConfig(path, t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "discovery", cfg.Database.DBName)
	assert.Equal(t, "http://localhost:8545", cfg.Chain.RPCURL)
	assert.Equal(t, int64(100), cfg.Chain.StartBlock)
}

func TestLoadIndexerConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := config.LoadIndexerConfig(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "indexer.changes", cfg.NATS.SubjectPrefix)
	assert.Equal(t, 10, cfg.NATS.MaxReconnects)
	assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
	assert.Equal(t, "discovery-indexer", cfg.NATS.ConnectionName)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "discovery-indexer:lease", cfg.Redis.LockKey)
	assert.Equal(t, 60*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, uint64(5), cfg.Chain.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Chain.RetryInterval)
	assert.Equal(t, time.Second, cfg.Loop.TickInterval)
	assert.Equal(t, int64(100), cfg.Loop.CheckpointSaveFreq)
	assert.Equal(t, 30*time.Second, cfg.Loop.CheckpointDelay)
}

func TestLoadIndexerConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)
	t.Setenv("DISCOVERY_INDEXER_DATABASE_PASSWORD", "hunter2")
	t.Setenv("DISCOVERY_INDEXER_CHAIN_ORDER_CUTOVER", "12345")

	cfg, err := config.LoadIndexerConfig(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, int64(12345), cfg.Chain.OrderCutover)
}

func TestLoadIndexerConfig_EnvOnly(t *testing.T) {
	t.Setenv("DISCOVERY_INDEXER_DATABASE_HOST", "db.internal")
	t.Setenv("DISCOVERY_INDEXER_DATABASE_DBNAME", "discovery")
	t.Setenv("DISCOVERY_INDEXER_CHAIN_RPC_URL", "http://rpc.internal:8545")
	t.Setenv("DISCOVERY_INDEXER_CHAIN_CONTRACT_ADDRESS", "0xc0de")

	cfg, err := config.LoadIndexerConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "http://rpc.internal:8545", cfg.Chain.RPCURL)
}

func TestLoadIndexerConfig_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing database host",
			content: `
database:
  dbname: discovery
chain:
  rpc_url: http://localhost:8545
  contract_address: "0xc0de"
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing database name",
			content: `
database:
  host: localhost
chain:
  rpc_url: http://localhost:8545
  contract_address: "0xc0de"
`,
			wantErr: "database.dbname is required",
		},
		{
			name: "missing rpc url",
			content: `
database:
  host: localhost
  dbname: discovery
chain:
  contract_address: "0xc0de"
`,
			wantErr: "chain.rpc_url is required",
		},
		{
			name: "missing contract address",
			content: `
database:
  host: localhost
  dbname: discovery
chain:
  rpc_url: http://localhost:8545
`,
			wantErr: "chain.contract_address is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.content)
			_, err := config.LoadIndexerConfig(path, t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadIndexerConfig_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "database: [not: valid")

	_, err := config.LoadIndexerConfig(path, t.TempDir())
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	db := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		DBName:   "discovery",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=discovery sslmode=disable",
		db.DSN())
}
