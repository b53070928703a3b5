package testutil

import (
	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
)

// TestAPIKey is the API key set by NewTestConfig.
const TestAPIKey = "test-api-key"

// NewTestConfig returns a configuration pointing the upstream client at baseURL.
func NewTestConfig(baseURL string) *config.Config {
	cfg := &config.Config{
		DefaultLanguage: config.DefaultLanguage,
		ClientTimeout:   "5s",
	}
	cfg.OpenSubtitles.APIKey = TestAPIKey
	cfg.OpenSubtitles.BaseURL = baseURL
	cfg.OpenSubtitles.UserAgent = "OpenSubtitlesAutoTest/1.0"
	return cfg
}
