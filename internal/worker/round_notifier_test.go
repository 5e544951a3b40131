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

// testRoundNotifierMocks contains all the mocks needed for testing the round notifier
type testRoundNotifierMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	gateway  *mocks.MockGateway
	clock    *mocks.MockClock
	notifier worker.Worker
}

// setupTestRoundNotifier creates all the mocks and the notifier for testing
func setupTestRoundNotifier(t *testing.T) *testRoundNotifierMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testRoundNotifierMocks{
		ctrl:    ctrl,
		store:   mocks.NewMockStore(ctrl),
		gateway: mocks.NewMockGateway(ctrl),
		clock:   mocks.NewMockClock(ctrl),
	}

	config := &worker.RoundNotifierConfig{
		Interval:      10 * time.Second,
		BatchSize:     50,
		PoolSize:      2,
		WebAppBaseURL: "https://app.example.com",
	}

	tm.notifier = worker.NewRoundNotifier(config, tm.store, tm.gateway, tm.clock)

	return tm
}

func tearDownTestRoundNotifier(mocks *testRoundNotifierMocks) {
	mocks.ctrl.Finish()
}

func (tm *testRoundNotifierMocks) expectClock() {
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

func (tm *testRoundNotifierMocks) run(t *testing.T) {
	ctx := context.Background()
	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = tm.notifier.Stop(ctx)
	}()
	require.NoError(t, tm.notifier.Start(ctx))
}

func TestRoundNotifier_Name(t *testing.T) {
	mocks := setupTestRoundNotifier(t)
	defer tearDownTestRoundNotifier(mocks)

	assert.Equal(t, "round-notifier", mocks.notifier.Name())
}

func TestRoundNotifier_AnnouncesCompletedRound(t *testing.T) {
	mocks := setupTestRoundNotifier(t)
	defer tearDownTestRoundNotifier(mocks)

	round := schema.WheelRound{
		ID:         12,
		PrizeLabel: "Plush Pepe",
		Status:     schema.RoundStatusCompleted,
	}

	mocks.expectClock()

	gomock.InOrder(
		mocks.store.EXPECT().
			ListUnnotifiedCompletedRounds(gomock.Any(), 50).
			Return([]schema.WheelRound{round}, nil).
			Times(1),
		mocks.store.EXPECT().
			ListUnnotifiedCompletedRounds(gomock.Any(), 50).
			Return([]schema.WheelRound{}, nil).
			AnyTimes(),
	)

	mocks.store.EXPECT().
		ListRoundParticipants(gomock.Any(), uint64(12)).
		Return([]schema.WheelParticipant{
			{RoundID: 12, AccountID: 100, Handle: "alice"},
			{RoundID: 12, AccountID: 200, Handle: "bob"},
		}, nil)

	// Every participant hears about the round exactly once
	mocks.gateway.EXPECT().
		SendMessage(gomock.Any(), gateway.Recipient{AccountID: 100, Handle: "alice"}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gateway.Recipient, text string, button *gateway.Button) error {
			assert.Contains(t, text, "Plush Pepe")
			require.NotNil(t, button)
			assert.Equal(t, "https://app.example.com/wheel/12", button.URL)
			return nil
		})
	mocks.gateway.EXPECT().
		SendMessage(gomock.Any(), gateway.Recipient{AccountID: 200, Handle: "bob"}, gomock.Any(), gomock.Any()).
		Return(nil)

	// The flag flips only after the fan-out drains
	mocks.store.EXPECT().
		MarkRoundNotified(gomock.Any(), uint64(12)).
		Return(true, nil)

	mocks.run(t)
}

func TestRoundNotifier_ParticipantFailureStillFlipsFlag(t *testing.T) {
	mocks := setupTestRoundNotifier(t)
	defer tearDownTestRoundNotifier(mocks)

	round := schema.WheelRound{
		ID:         13,
		PrizeLabel: "Lol Pop",
		Status:     schema.RoundStatusCompleted,
	}

	mocks.expectClock()

	gomock.InOrder(
		mocks.store.EXPECT().
			ListUnnotifiedCompletedRounds(gomock.Any(), 50).
			Return([]schema.WheelRound{round}, nil).
			Times(1),
		mocks.store.EXPECT().
			ListUnnotifiedCompletedRounds(gomock.Any(), 50).
			Return([]schema.WheelRound{}, nil).
			AnyTimes(),
	)

	mocks.store.EXPECT().
		ListRoundParticipants(gomock.Any(), uint64(13)).
		Return([]schema.WheelParticipant{
			{RoundID: 13, AccountID: 100, Handle: "alice"},
			{RoundID: 13, AccountID: 300, Handle: "carol"},
		}, nil)

	mocks.gateway.EXPECT().
		SendMessage(gomock.Any(), gateway.Recipient{AccountID: 100, Handle: "alice"}, gomock.Any(), gomock.Any()).
		Return(nil)
	// One blocked recipient does not hold the round open forever
	mocks.gateway.EXPECT().
		SendMessage(gomock.Any(), gateway.Recipient{AccountID: 300, Handle: "carol"}, gomock.Any(), gomock.Any()).
		Return(&gateway.DeliveryError{Kind: gateway.FailureRecipientUnreachable, Code: 403, Description: "bot was blocked"})

	mocks.store.EXPECT().
		MarkRoundNotified(gomock.Any(), uint64(13)).
		Return(true, nil)

	mocks.run(t)
}

func TestRoundNotifier_ParticipantListFailureLeavesRoundUnnotified(t *testing.T) {
	mocks := setupTestRoundNotifier(t)
	defer tearDownTestRoundNotifier(mocks)

	round := schema.WheelRound{
		ID:         14,
		PrizeLabel: "Desk Calendar",
		Status:     schema.RoundStatusCompleted,
	}

	mocks.expectClock()

	gomock.InOrder(
		mocks.store.EXPECT().
			ListUnnotifiedCompletedRounds(gomock.Any(), 50).
			Return([]schema.WheelRound{round}, nil).
			Times(1),
		mocks.store.EXPECT().
			ListUnnotifiedCompletedRounds(gomock.Any(), 50).
			Return([]schema.WheelRound{}, nil).
			AnyTimes(),
	)

	// The round stays unnotified and is retried on the next cycle
	mocks.store.EXPECT().
		ListRoundParticipants(gomock.Any(), uint64(14)).
		Return(nil, errors.New("connection reset"))

	mocks.run(t)
}
