package indexer

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/entities"
	"github.com/chorusnet/discovery-indexer/internal/ledger"
	"github.com/chorusnet/discovery-indexer/internal/logger"
	"github.com/chorusnet/discovery-indexer/internal/messaging"
	"github.com/chorusnet/discovery-indexer/internal/mocks"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testIndexerMocks contains all the mocks needed for testing the tick loop
type testIndexerMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	source    *mocks.MockSource
	lease     *mocks.MockLease
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	indexer   *indexer

	published []*messaging.ChangeEvent
}

func setupTestIndexer(t *testing.T, cfg Config) *testIndexerMocks {
	ctrl := gomock.NewController(t)
	tm := &testIndexerMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		source:    mocks.NewMockSource(ctrl),
		lease:     mocks.NewMockLease(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	rec := reconciler.New(reconciler.Config{}, entities.Handlers())
	lg := ledger.New(tm.store, rec, tm.source, ledger.Config{})
	tm.indexer = New(lg, tm.lease, tm.publisher, tm.store, tm.clock, cfg).(*indexer)

	st := tm.store
	st.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(store.Store) error) error {
			return fn(st)
		}).
		AnyTimes()

	st.EXPECT().CurrentUsers(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentUsersByWallets(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentTracks(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentPlaylists(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentGrants(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentDeveloperApps(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentFollows(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentSubscriptions(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentSaves(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().CurrentReposts(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	st.EXPECT().MaxTrackRouteCollision(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int32(0), false, nil).AnyTimes()
	st.EXPECT().MaxPlaylistRouteCollision(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int32(0), false, nil).AnyTimes()

	st.EXPECT().FlipUsersNotCurrent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().FlipTracksNotCurrent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().FlipTrackRoutesNotCurrent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().InsertUsers(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().InsertTracks(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().InsertTrackRoutes(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().InsertSkippedTransactions(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().PutRevertBlock(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	st.EXPECT().InsertBlock(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tm.clock.EXPECT().Now().Return(time.Unix(1_700_000_000, 0).UTC()).AnyTimes()

	return tm
}

func tearDownTestIndexer(tm *testIndexerMocks) {
	tm.ctrl.Finish()
}

// capturePublished records change events instead of asserting them one by one
func (tm *testIndexerMocks) capturePublished() {
	tm.publisher.EXPECT().
		PublishChanges(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.ChangeEvent) error {
			tm.published = append(tm.published, event)
			return nil
		}).
		AnyTimes()
}

func blockData(number int64, hash, parent string, txs ...domain.EntityTx) *domain.BlockData {
	return &domain.BlockData{
		BlockRef: domain.BlockRef{
			Number:     number,
			Hash:       hash,
			ParentHash: parent,
			Timestamp:  time.Unix(1_700_000_000, 0).UTC(),
		},
		Txs: txs,
	}
}

func TestTick_LockHeldSkips(t *testing.T) {
	tm := setupTestIndexer(t, Config{})
	defer tearDownTestIndexer(tm)

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(domain.ErrLockHeld)
	// no Release, no ledger work

	assert.NoError(t, tm.indexer.tick(context.Background()))
}

func TestTick_AcquireError(t *testing.T) {
	tm := setupTestIndexer(t, Config{})
	defer tearDownTestIndexer(tm)

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(errors.New("redis down"))

	assert.Error(t, tm.indexer.tick(context.Background()))
}

func TestTick_AdvancesToTipAndCheckpoints(t *testing.T) {
	tm := setupTestIndexer(t, Config{CheckpointSaveFreq: 1, CheckpointDelay: time.Hour})
	defer tearDownTestIndexer(tm)

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(nil)
	tm.lease.EXPECT().Release(gomock.Any()).Return(nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	gomock.InOrder(
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 9, Blockhash: "0xnine"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 10, Blockhash: "0xten"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 11, Blockhash: "0xeleven"}, nil),
	)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine"), nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(11)).
		Return(blockData(11, "0xeleven", "0xten"), nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(12)).
		Return(nil, domain.ErrBlockNotAvailable)

	tm.store.EXPECT().SetCheckpoint(gomock.Any(), "last_indexed_block", "10").Return(nil)
	tm.store.EXPECT().SetCheckpoint(gomock.Any(), "last_indexed_block", "11").Return(nil)

	assert.NoError(t, tm.indexer.tick(context.Background()))
}

func TestTick_ForkUnwindsAndContinues(t *testing.T) {
	tm := setupTestIndexer(t, Config{CheckpointSaveFreq: 100, CheckpointDelay: time.Hour})
	defer tearDownTestIndexer(tm)

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(nil)
	tm.lease.EXPECT().Release(gomock.Any()).Return(nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	tip := &schema.Block{Number: 9, Blockhash: "0xnine", Parenthash: "0xeight"}
	gomock.InOrder(
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).Return(tip, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).Return(tip, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 8, Blockhash: "0xeight"}, nil),
	)

	// block 10 no longer links to our tip, the tip gets unwound
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine-prime"), nil)
	tm.store.EXPECT().DeleteVersionsAtBlock(gomock.Any(), int64(9)).Return(nil)
	tm.store.EXPECT().GetRevertBlock(gomock.Any(), int64(9)).Return(nil, nil)
	tm.store.EXPECT().RevertRoutesAtBlock(gomock.Any(), int64(9)).Return(nil)
	tm.store.EXPECT().DeleteBlock(gomock.Any(), "0xnine").Return(nil)
	tm.store.EXPECT().SetBlockCurrent(gomock.Any(), "0xeight", true).Return(nil)

	// the loop retries from the new tip
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(9)).
		Return(nil, domain.ErrBlockNotAvailable)

	assert.NoError(t, tm.indexer.tick(context.Background()))
}

func TestTick_PublishesChangeEvents(t *testing.T) {
	tm := setupTestIndexer(t, Config{CheckpointSaveFreq: 100, CheckpointDelay: time.Hour})
	defer tearDownTestIndexer(tm)
	tm.capturePublished()

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(nil)
	tm.lease.EXPECT().Release(gomock.Any()).Return(nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	gomock.InOrder(
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 9, Blockhash: "0xnine"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 10, Blockhash: "0xten"}, nil),
	)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine", domain.EntityTx{
			TxHash: "0xcreate-user", TxIndex: 0,
			UserID: 3_000_001, Kind: domain.KindUser, EntityID: 3_000_001,
			Action:   domain.ActionCreate,
			Metadata: `{"cid": "QmU", "data": {"handle": "alice"}}`,
			Signer:   "0xaaaa000000000000000000000000000000001111",
		}), nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(11)).
		Return(nil, domain.ErrBlockNotAvailable)

	require.NoError(t, tm.indexer.tick(context.Background()))

	require.Len(t, tm.published, 1)
	event := tm.published[0]
	assert.Equal(t, int64(10), event.Blocknumber)
	assert.Equal(t, "0xten", event.Blockhash)
	assert.Equal(t, domain.KindUser, event.Kind)
	assert.Equal(t, []string{"3000001"}, event.Keys)
}

func TestTick_CheckpointFailureIsNotFatal(t *testing.T) {
	tm := setupTestIndexer(t, Config{CheckpointSaveFreq: 1, CheckpointDelay: time.Hour})
	defer tearDownTestIndexer(tm)

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(nil)
	tm.lease.EXPECT().Release(gomock.Any()).Return(nil)
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	gomock.InOrder(
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 9, Blockhash: "0xnine"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 10, Blockhash: "0xten"}, nil),
	)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine"), nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(11)).
		Return(nil, domain.ErrBlockNotAvailable)

	tm.store.EXPECT().SetCheckpoint(gomock.Any(), "last_indexed_block", "10").
		Return(errors.New("deadlock"))

	assert.NoError(t, tm.indexer.tick(context.Background()))
}

func TestTick_CheckpointThrottleSpansTicks(t *testing.T) {
	tm := setupTestIndexer(t, Config{CheckpointSaveFreq: 5, CheckpointDelay: time.Hour})
	defer tearDownTestIndexer(tm)

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(nil).Times(2)
	tm.lease.EXPECT().Release(gomock.Any()).Return(nil).Times(2)
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	gomock.InOrder(
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 9, Blockhash: "0xnine"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 10, Blockhash: "0xten"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 10, Blockhash: "0xten"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 11, Blockhash: "0xeleven"}, nil),
	)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine"), nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(11)).
		Return(nil, domain.ErrBlockNotAvailable)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(11)).
		Return(blockData(11, "0xeleven", "0xten"), nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(12)).
		Return(nil, domain.ErrBlockNotAvailable)

	// only the first tick saves; block 11 is one past the last checkpoint
	// and the block budget is five
	tm.store.EXPECT().SetCheckpoint(gomock.Any(), "last_indexed_block", "10").Return(nil)

	assert.NoError(t, tm.indexer.tick(context.Background()))
	assert.NoError(t, tm.indexer.tick(context.Background()))
}

func TestTick_CheckpointOnDelay(t *testing.T) {
	tm := setupTestIndexer(t, Config{CheckpointSaveFreq: 1_000_000, CheckpointDelay: time.Minute})
	defer tearDownTestIndexer(tm)

	tm.lease.EXPECT().Acquire(gomock.Any()).Return(nil)
	tm.lease.EXPECT().Release(gomock.Any()).Return(nil)
	// enough wall time has passed even though the block budget has not
	tm.clock.EXPECT().Since(gomock.Any()).Return(2 * time.Minute).AnyTimes()

	gomock.InOrder(
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 9, Blockhash: "0xnine"}, nil),
		tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
			Return(&schema.Block{Number: 10, Blockhash: "0xten"}, nil),
	)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine"), nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(11)).
		Return(nil, domain.ErrBlockNotAvailable)

	tm.store.EXPECT().SetCheckpoint(gomock.Any(), "last_indexed_block", "10").Return(nil)

	assert.NoError(t, tm.indexer.tick(context.Background()))
}
