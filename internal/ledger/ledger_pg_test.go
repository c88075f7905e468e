package ledger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/entities"
	"github.com/chorusnet/discovery-indexer/internal/ledger"
	"github.com/chorusnet/discovery-indexer/internal/mocks"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// startPostgres brings up a throwaway database with the full schema loaded
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	schemaSQL, err := os.ReadFile(filepath.Join("..", "..", "db", "init_pg_db.sql"))
	require.NoError(t, err)
	_, err = sqlDB.Exec(string(schemaSQL))
	require.NoError(t, err)

	return db
}

// Applying an update displaces the prior version in place, so reverting the
// update must hand the flag back to that row rather than re-insert its
// pre-image. The entity ends up with exactly the rows it had before the
// reverted block.
func TestRevertAfterUpdateLeavesSingleVersion(t *testing.T) {
	const (
		wallet        = "0xcccc000000000000000000000000000000003333"
		userID  int32 = 3_000_201
	)

	ctx := context.Background()
	db := startPostgres(t)
	st := store.NewPGStore(db)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	source := mocks.NewMockSource(ctrl)

	rec := reconciler.New(reconciler.Config{}, entities.Handlers())
	lg := ledger.New(st, rec, source, ledger.Config{StartBlock: 1})

	create := blockData(1, "0xone", "")
	create.Txs = []domain.EntityTx{{
		TxHash: "0xmint", TxIndex: 0,
		UserID: userID, Kind: domain.KindUser, EntityID: userID,
		Action:   domain.ActionCreate,
		Metadata: `{"cid": "QmC", "data": {"handle": "carol", "bio": "first"}}`,
		Signer:   wallet,
	}}
	update := blockData(2, "0xtwo", "0xone")
	update.Txs = []domain.EntityTx{{
		TxHash: "0xedit", TxIndex: 0,
		UserID: userID, Kind: domain.KindUser, EntityID: userID,
		Action:   domain.ActionUpdate,
		Metadata: `{"cid": "QmD", "data": {"bio": "second"}}`,
		Signer:   wallet,
	}}
	source.EXPECT().BlockByNumber(gomock.Any(), int64(1)).Return(create, nil)
	source.EXPECT().BlockByNumber(gomock.Any(), int64(2)).Return(update, nil)

	_, err := lg.Advance(ctx)
	require.NoError(t, err)
	_, err = lg.Advance(ctx)
	require.NoError(t, err)

	// two versions on disk, the update current
	var count int64
	require.NoError(t, db.Model(&schema.User{}).Where("user_id = ?", userID).Count(&count).Error)
	require.Equal(t, int64(2), count)

	require.NoError(t, lg.Revert(ctx))

	// only the block-1 version remains and it is current again
	require.NoError(t, db.Model(&schema.User{}).Where("user_id = ?", userID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	rows, err := st.CurrentUsers(ctx, []int32{userID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "first", *rows[0].Bio)
	require.Equal(t, int64(1), rows[0].Blocknumber)
	require.True(t, rows[0].IsCurrent)

	tip, err := st.GetCurrentBlock(ctx)
	require.NoError(t, err)
	require.NotNil(t, tip)
	require.Equal(t, "0xone", tip.Blockhash)
}
