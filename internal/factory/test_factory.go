package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/aibingo/aibingo-go/internal/dependencies/mocks"
	"github.com/aibingo/aibingo-go/internal/services/auth"
	"github.com/aibingo/aibingo-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	authCfg := auth.DefaultConfig()
	authCfg.TokenSecret = []byte("test-secret")

	app := newWithDependencies(store, mockClock, mockRandom, auth.NewLogMailSender(logger), authCfg, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
