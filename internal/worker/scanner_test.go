package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightforgift/reward-engine/internal/gateway"
	"github.com/fightforgift/reward-engine/internal/logger"
	"github.com/fightforgift/reward-engine/internal/mocks"
	"github.com/fightforgift/reward-engine/internal/store/schema"
	"github.com/fightforgift/reward-engine/internal/worker"
)

// testScannerMocks contains all the mocks needed for testing the scanner
type testScannerMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	gateway *mocks.MockGateway
	clock   *mocks.MockClock
	scanner worker.Worker
}

// setupTestScanner creates all the mocks and the scanner for testing
func setupTestScanner(t *testing.T) *testScannerMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testScannerMocks{
		ctrl:    ctrl,
		store:   mocks.NewMockStore(ctrl),
		gateway: mocks.NewMockGateway(ctrl),
		clock:   mocks.NewMockClock(ctrl),
	}

	config := &worker.ScannerConfig{
		Interval:  2 * time.Minute,
		ScanDepth: 200,
		SourceRef: "@gift_feed",
	}

	tm.scanner = worker.NewInventoryScanner(config, tm.store, tm.gateway, tm.clock)

	return tm
}

func tearDownTestScanner(mocks *testScannerMocks) {
	mocks.ctrl.Finish()
}

// expectClock wires the clock so the loop runs one cycle and then idles
// long enough for Stop to land
func (tm *testScannerMocks) expectClock() {
	now := time.Now()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()
	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(func(d time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		go func() {
			time.Sleep(50 * time.Millisecond)
			ch <- time.Now()
		}()
		return ch
	}).AnyTimes()
}

func TestInventoryScanner_Name(t *testing.T) {
	mocks := setupTestScanner(t)
	defer tearDownTestScanner(mocks)

	assert.Equal(t, "inventory-scanner", mocks.scanner.Name())
}

func TestInventoryScanner_IngestsNewItem(t *testing.T) {
	mocks := setupTestScanner(t)
	defer tearDownTestScanner(mocks)

	ctx := context.Background()
	price := int64(25)
	event := gateway.GiftEvent{
		Identifier:    42,
		Label:         "Plush Pepe",
		Slug:          "PlushPepe-1287",
		TransferPrice: &price,
		MessageRef:    9001,
		Raw:           []byte(`{"gift_id":42}`),
	}

	mocks.expectClock()

	gomock.InOrder(
		mocks.gateway.EXPECT().
			ScanUpstreamFeed(gomock.Any(), "@gift_feed", 200).
			Return([]gateway.GiftEvent{event}, nil).
			Times(1),
		mocks.gateway.EXPECT().
			ScanUpstreamFeed(gomock.Any(), "@gift_feed", 200).
			Return([]gateway.GiftEvent{}, nil).
			AnyTimes(),
	)

	mocks.store.EXPECT().
		HasActiveInventoryItem(gomock.Any(), int64(42)).
		Return(false, nil)

	mocks.store.EXPECT().
		InsertInventoryItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item *schema.InventoryItem) error {
			assert.Equal(t, int64(42), item.Identifier)
			assert.Equal(t, "Plush Pepe", item.Label)
			assert.Equal(t, int64(9001), item.AcquisitionRef)
			assert.Equal(t, "https://t.me/nft/PlushPepe-1287", item.Link)
			assert.False(t, item.Used)
			return nil
		})

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = mocks.scanner.Stop(ctx)
	}()

	err := mocks.scanner.Start(ctx)
	require.NoError(t, err)
}

func TestInventoryScanner_SkipsActiveDuplicate(t *testing.T) {
	mocks := setupTestScanner(t)
	defer tearDownTestScanner(mocks)

	ctx := context.Background()
	event := gateway.GiftEvent{
		Identifier: 42,
		Label:      "Plush Pepe",
		MessageRef: 9002,
	}

	mocks.expectClock()

	gomock.InOrder(
		mocks.gateway.EXPECT().
			ScanUpstreamFeed(gomock.Any(), "@gift_feed", 200).
			Return([]gateway.GiftEvent{event}, nil).
			Times(1),
		mocks.gateway.EXPECT().
			ScanUpstreamFeed(gomock.Any(), "@gift_feed", 200).
			Return([]gateway.GiftEvent{}, nil).
			AnyTimes(),
	)

	// An unused row with the same identifier already exists; no insert
	mocks.store.EXPECT().
		HasActiveInventoryItem(gomock.Any(), int64(42)).
		Return(true, nil)

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = mocks.scanner.Stop(ctx)
	}()

	err := mocks.scanner.Start(ctx)
	require.NoError(t, err)
}

func TestInventoryScanner_DedupCheckFailureSkipsEvent(t *testing.T) {
	mocks := setupTestScanner(t)
	defer tearDownTestScanner(mocks)

	ctx := context.Background()
	event := gateway.GiftEvent{
		Identifier: 77,
		Label:      "Lol Pop",
		MessageRef: 9003,
	}

	mocks.expectClock()

	gomock.InOrder(
		mocks.gateway.EXPECT().
			ScanUpstreamFeed(gomock.Any(), "@gift_feed", 200).
			Return([]gateway.GiftEvent{event}, nil).
			Times(1),
		mocks.gateway.EXPECT().
			ScanUpstreamFeed(gomock.Any(), "@gift_feed", 200).
			Return([]gateway.GiftEvent{}, nil).
			AnyTimes(),
	)

	// A failed dedup lookup must not fall through to an insert
	mocks.store.EXPECT().
		HasActiveInventoryItem(gomock.Any(), int64(77)).
		Return(false, errors.New("connection reset"))

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = mocks.scanner.Stop(ctx)
	}()

	err := mocks.scanner.Start(ctx)
	require.NoError(t, err)
}

func TestInventoryScanner_FeedErrorDoesNotStopLoop(t *testing.T) {
	mocks := setupTestScanner(t)
	defer tearDownTestScanner(mocks)

	ctx := context.Background()

	mocks.expectClock()

	mocks.gateway.EXPECT().
		ScanUpstreamFeed(gomock.Any(), "@gift_feed", 200).
		Return(nil, errors.New("upstream unavailable")).
		MinTimes(1)

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = mocks.scanner.Stop(ctx)
	}()

	err := mocks.scanner.Start(ctx)
	require.NoError(t, err)
}
