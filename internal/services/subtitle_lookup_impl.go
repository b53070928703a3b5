package services

import (
	"context"
	"errors"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/fallback"
	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/client"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/metrics"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
)

// errNoResponse stands in for a missing upstream response that came without an error
var errNoResponse = errors.New("upstream returned no response")

// DefaultSubtitleLookup implements SubtitleLookup on top of the upstream client
type DefaultSubtitleLookup struct {
	client          client.Client
	defaultLanguage string
	// emptyOnFailure turns any upstream failure into a nil response after reporting it
	emptyOnFailure fallback.Fallback[*models.SearchResponse]
}

// lookupScope is carried on the execution context so the fallback can report
// which lookup failed.
type lookupScope struct {
	request  models.LookupRequest
	language string
}

type lookupScopeKey struct{}

// NewSubtitleLookup creates a lookup service. An empty defaultLanguage falls back to "he".
func NewSubtitleLookup(c client.Client, defaultLanguage string) SubtitleLookup {
	if defaultLanguage == "" {
		defaultLanguage = config.DefaultLanguage
	}
	return &DefaultSubtitleLookup{
		client:          c,
		defaultLanguage: defaultLanguage,
		emptyOnFailure: fallback.NewBuilderWithFunc(degrade).
			HandleIf(func(response *models.SearchResponse, err error) bool {
				return err != nil || response == nil
			}).
			Build(),
	}
}

// Lookup searches subtitles for req.ContentID in the preferred language.
func (s *DefaultSubtitleLookup) Lookup(ctx context.Context, req models.LookupRequest) models.LookupResult {
	logger := config.GetLogger()

	language := req.PreferredLanguage
	if language == "" {
		language = s.defaultLanguage
	}

	contentID, err := models.ParseContentID(req.ContentID)
	if err != nil {
		logger.Warn().Err(err).Str("type", string(req.Type)).Msg("Ignoring lookup for unsupported content ID")
		metrics.SubtitleLookupsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return models.EmptyLookupResult()
	}

	// The outbound call runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	ctx = context.WithValue(ctx, lookupScopeKey{}, lookupScope{request: req, language: language})

	logger.Info().
		Str("contentID", req.ContentID).
		Str("imdbID", contentID.IMDbID).
		Str("language", language).
		Msg("Fetching subtitles")

	response, err := failsafe.With[*models.SearchResponse](s.emptyOnFailure).
		WithContext(ctx).
		Get(func() (*models.SearchResponse, error) {
			return s.client.SearchSubtitles(ctx, contentID.SearchParams(language))
		})

	// A nil response means the fallback already reported the failure
	if err != nil || response == nil {
		return models.EmptyLookupResult()
	}

	if len(response.Data) == 0 {
		logger.Info().Str("contentID", req.ContentID).Msg("No subtitles found")
		metrics.SubtitleLookupsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		metrics.SubtitlesReturned.Observe(0)
		return models.EmptyLookupResult()
	}

	result := toLookupResult(response.Data, language)

	logger.Info().Str("contentID", req.ContentID).Int("count", len(result)).Msg("Subtitles found")
	metrics.SubtitleLookupsTotal.WithLabelValues(metrics.OutcomeFound).Inc()
	metrics.SubtitlesReturned.Observe(float64(len(result)))

	return result
}

// degrade logs and reports a failed upstream search, then substitutes a nil response.
func degrade(exec failsafe.Execution[*models.SearchResponse]) (*models.SearchResponse, error) {
	ctx := exec.Context()
	scope, _ := ctx.Value(lookupScopeKey{}).(lookupScope)

	err := exec.LastError()
	if err == nil {
		err = errNoResponse
	}

	logger := config.GetLogger()
	logger.Error().Err(err).Str("contentID", scope.request.ContentID).Msg("Error fetching subtitles")
	reportError(ctx, err, scope)
	metrics.SubtitleLookupsTotal.WithLabelValues(metrics.OutcomeError).Inc()

	return nil, nil
}

// toLookupResult keeps upstream order and labels every entry with the requested
// language, not the language reported upstream.
func toLookupResult(records []models.UpstreamSubtitle, language string) models.LookupResult {
	result := make(models.LookupResult, len(records))
	for i, record := range records {
		result[i] = models.SubtitleEntry{
			ID:   record.ID,
			Lang: language,
			URL:  record.Attributes.URL,
		}
	}
	return result
}

func reportError(ctx context.Context, err error, scope lookupScope) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(sentryScope *sentry.Scope) {
		sentryScope.SetTag("content_type", string(scope.request.Type))
		sentryScope.SetTag("language", scope.language)
		sentryScope.SetTag("content_id", scope.request.ContentID)
		hub.CaptureException(err)
	})
}
