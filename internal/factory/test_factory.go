package factory

import (
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/cwlroster/internal/dependencies/mocks"
	"github.com/mcoot/cwlroster/internal/services/auth"
	"github.com/mcoot/cwlroster/internal/storage/memory"
	"github.com/mcoot/cwlroster/internal/storage/textfile"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
	Mirror    *textfile.Mirror
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// dataDir receives the registration mirror and the clan configuration copy.
func NewTestApp(dataDir string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs("id")
	mirror := textfile.New(filepath.Join(dataDir, textfile.DefaultFilename))

	authCfg := auth.DefaultConfig()
	authCfg.HashCost = bcrypt.MinCost

	app, err := newWithDependencies(store, mirror, mockClock, mockIDs, Config{
		AuthConfig:     authCfg,
		ClanConfigPath: filepath.Join(dataDir, "clan-config.json"),
	}, nil)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
		Mirror:    mirror,
	}
}
