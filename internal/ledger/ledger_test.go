package ledger_test

import (
	"context"
	"encoding/json"
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

// testLedgerMocks contains all the mocks needed for testing the ledger
type testLedgerMocks struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	source *mocks.MockSource
	ledger *ledger.Ledger
}

func setupTestLedger(t *testing.T, cfg ledger.Config) *testLedgerMocks {
	ctrl := gomock.NewController(t)
	tm := &testLedgerMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		source: mocks.NewMockSource(ctrl),
	}
	rec := reconciler.New(reconciler.Config{}, entities.Handlers())
	tm.ledger = ledger.New(tm.store, rec, tm.source, cfg)

	// transactions run against the same mock
	tm.store.EXPECT().
		WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(store.Store) error) error {
			return fn(tm.store)
		}).
		AnyTimes()

	return tm
}

func tearDownTestLedger(tm *testLedgerMocks) {
	tm.ctrl.Finish()
}

// expectEmptyPrefetch stubs the batched current-row queries for blocks whose
// transactions touch nothing
func (tm *testLedgerMocks) expectEmptyPrefetch() {
	st := tm.store
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
}

func blockData(number int64, hash, parent string) *domain.BlockData {
	return &domain.BlockData{
		BlockRef: domain.BlockRef{
			Number:     number,
			Hash:       hash,
			ParentHash: parent,
			Timestamp:  time.Unix(1_700_000_000, 0).UTC(),
		},
	}
}

func TestAdvance_Bootstrap(t *testing.T) {
	tm := setupTestLedger(t, ledger.Config{StartBlock: 5})
	defer tearDownTestLedger(tm)
	tm.expectEmptyPrefetch()

	tm.store.EXPECT().GetCurrentBlock(gomock.Any()).Return(nil, nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(5)).
		Return(blockData(5, "0xfive", "0xfour"), nil)
	tm.store.EXPECT().InsertBlock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *schema.Block) error {
			assert.Equal(t, int64(5), b.Number)
			assert.Equal(t, "0xfive", b.Blockhash)
			assert.Equal(t, "0xfour", b.Parenthash)
			return nil
		})

	outcome, err := tm.ledger.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), outcome.Block.Number)
	assert.Equal(t, 0, outcome.Mutations)
}

func TestAdvance_NextAfterTip(t *testing.T) {
	tm := setupTestLedger(t, ledger.Config{StartBlock: 0})
	defer tearDownTestLedger(tm)
	tm.expectEmptyPrefetch()

	tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
		Return(&schema.Block{Number: 9, Blockhash: "0xnine"}, nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine"), nil)
	tm.store.EXPECT().InsertBlock(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := tm.ledger.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), outcome.Block.Number)
}

func TestAdvance_BlockNotAvailable(t *testing.T) {
	tm := setupTestLedger(t, ledger.Config{})
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().GetCurrentBlock(gomock.Any()).
		Return(&schema.Block{Number: 9, Blockhash: "0xnine"}, nil)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(nil, domain.ErrBlockNotAvailable)

	_, err := tm.ledger.Advance(context.Background())
	assert.ErrorIs(t, err, domain.ErrBlockNotAvailable)
}

func TestAdvance_ForkUnwindsTip(t *testing.T) {
	tm := setupTestLedger(t, ledger.Config{})
	defer tearDownTestLedger(tm)

	tip := &schema.Block{Number: 9, Blockhash: "0xnine", Parenthash: "0xeight"}
	tm.store.EXPECT().GetCurrentBlock(gomock.Any()).Return(tip, nil).Times(2)
	tm.source.EXPECT().BlockByNumber(gomock.Any(), int64(10)).
		Return(blockData(10, "0xten", "0xnine-prime"), nil)

	// the tip is unwound before the fork error surfaces
	tm.store.EXPECT().DeleteVersionsAtBlock(gomock.Any(), int64(9)).Return(nil)
	tm.store.EXPECT().GetRevertBlock(gomock.Any(), int64(9)).Return(nil, nil)
	tm.store.EXPECT().RevertRoutesAtBlock(gomock.Any(), int64(9)).Return(nil)
	tm.store.EXPECT().DeleteBlock(gomock.Any(), "0xnine").Return(nil)
	tm.store.EXPECT().SetBlockCurrent(gomock.Any(), "0xeight", true).Return(nil)

	_, err := tm.ledger.Advance(context.Background())
	assert.ErrorIs(t, err, domain.ErrForkDetected)
}

func TestRevert_RestoresPreImages(t *testing.T) {
	tm := setupTestLedger(t, ledger.Config{})
	defer tearDownTestLedger(tm)

	prev := map[string][]json.RawMessage{
		"users": {json.RawMessage(`{"user_id": 3000001, "is_current": true}`)},
	}
	body, err := json.Marshal(prev)
	require.NoError(t, err)

	tip := &schema.Block{Number: 9, Blockhash: "0xnine", Parenthash: "0xeight"}
	tm.store.EXPECT().GetCurrentBlock(gomock.Any()).Return(tip, nil)
	tm.store.EXPECT().DeleteVersionsAtBlock(gomock.Any(), int64(9)).Return(nil)
	tm.store.EXPECT().GetRevertBlock(gomock.Any(), int64(9)).
		Return(&schema.RevertBlock{Blocknumber: 9, PrevRecords: body}, nil)
	tm.store.EXPECT().RestoreRows(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got map[string][]json.RawMessage) error {
			require.Len(t, got["users"], 1)
			return nil
		})
	tm.store.EXPECT().DeleteRevertBlock(gomock.Any(), int64(9)).Return(nil)
	tm.store.EXPECT().RevertRoutesAtBlock(gomock.Any(), int64(9)).Return(nil)
	tm.store.EXPECT().DeleteBlock(gomock.Any(), "0xnine").Return(nil)
	tm.store.EXPECT().SetBlockCurrent(gomock.Any(), "0xeight", true).Return(nil)

	require.NoError(t, tm.ledger.Revert(context.Background()))
}

func TestRevert_GenesisHasNoParentToPromote(t *testing.T) {
	tm := setupTestLedger(t, ledger.Config{})
	defer tearDownTestLedger(tm)

	tip := &schema.Block{Number: 0, Blockhash: "0xgenesis", Parenthash: ""}
	tm.store.EXPECT().GetCurrentBlock(gomock.Any()).Return(tip, nil)
	tm.store.EXPECT().DeleteVersionsAtBlock(gomock.Any(), int64(0)).Return(nil)
	tm.store.EXPECT().GetRevertBlock(gomock.Any(), int64(0)).Return(nil, nil)
	tm.store.EXPECT().RevertRoutesAtBlock(gomock.Any(), int64(0)).Return(nil)
	tm.store.EXPECT().DeleteBlock(gomock.Any(), "0xgenesis").Return(nil)
	// no SetBlockCurrent call expected

	require.NoError(t, tm.ledger.Revert(context.Background()))
}

func TestRevert_EmptyLedger(t *testing.T) {
	tm := setupTestLedger(t, ledger.Config{})
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().GetCurrentBlock(gomock.Any()).Return(nil, nil)

	err := tm.ledger.Revert(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoCurrentBlock)
}
