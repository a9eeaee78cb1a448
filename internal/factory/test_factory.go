package factory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/mocks"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/auth"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/pricing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage/memory"
	"github.com/Phronesis2025/wcs-basketball-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock      *mocks.MockClock
	MockRandom     *mocks.MockRandom
	MockDispatcher *mocks.RecordingDispatcher
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and a fixed fee schedule
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockDispatcher := mocks.NewRecordingDispatcher()

	fees := pricing.Static{Schedule: model.FeeSchedule{
		Annual:    decimal.NewFromInt(360),
		Monthly:   decimal.NewFromInt(35),
		Quarterly: decimal.NewFromInt(100),
	}}

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		mockDispatcher,
		fees,
		auth.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:            app,
		MockClock:      mockClock,
		MockRandom:     mockRandom,
		MockDispatcher: mockDispatcher,
	}
}
