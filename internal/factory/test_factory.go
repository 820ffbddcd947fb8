package factory

import (
	"time"

	"github.com/tondrop/tondrop-go/internal/dependencies/mocks"
	"github.com/tondrop/tondrop-go/internal/notify"
	"github.com/tondrop/tondrop-go/internal/services/booster"
	"github.com/tondrop/tondrop-go/internal/services/epoch"
	"github.com/tondrop/tondrop-go/internal/services/referral"
	"github.com/tondrop/tondrop-go/internal/storage/memory"
	"github.com/tondrop/tondrop-go/internal/testutil"
)

// TestAnchor is the competition anchor used by test apps
var TestAnchor = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock
// starting shortly after the competition anchor
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(TestAnchor.Add(12 * time.Hour))

	schedule, err := epoch.NewSchedule(TestAnchor, epoch.DefaultPeriod)
	if err != nil {
		panic(err)
	}

	app, err := newWithDependencies(
		store,
		mockClock,
		schedule,
		booster.DefaultConfig(),
		referral.DefaultConfig(),
		notify.Noop{},
		testutil.NopLogger(),
	)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
