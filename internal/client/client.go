package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
)

// Client defines the interface for querying the OpenSubtitles REST API
type Client interface {
	// SearchSubtitles runs a single /subtitles search. Errors are typed with the
	// apperrors upstream taxonomy; callers decide whether to degrade.
	SearchSubtitles(ctx context.Context, params models.SearchParams) (*models.SearchResponse, error)

	// Close releases idle upstream connections.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// NewClient creates a new client instance with proxy configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	// Clone DefaultTransport to keep its pooling, HTTP/2 and dial timeouts
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil || proxyURL.Host == "" {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	if cfg.OpenSubtitles.APIKey == "" {
		logger.Warn().Msg("No OpenSubtitles API key configured, upstream searches will be rejected")
	}

	userAgent := cfg.OpenSubtitles.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	baseURL := cfg.OpenSubtitles.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	return &client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: newCompressionTransport(baseTransport),
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    cfg.OpenSubtitles.APIKey,
		userAgent: userAgent,
	}
}

// Close releases idle connections held by the underlying transport.
func (c *client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
