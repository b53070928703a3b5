package models

import (
	"strconv"
	"strings"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/apperrors"
)

// IMDbPrefix is the only identifier prefix the addon declares.
const IMDbPrefix = "tt"

// ContentType is the Stremio content kind of a request
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// SupportedContentTypes lists the types served by the addon, in manifest order.
var SupportedContentTypes = []ContentType{ContentTypeMovie, ContentTypeSeries}

// IsSupported reports whether the addon serves this content type.
func (t ContentType) IsSupported() bool {
	for _, supported := range SupportedContentTypes {
		if t == supported {
			return true
		}
	}
	return false
}

// InferContentType guesses the type of a bare identifier: episode ids
// ("tt<digits>:<season>:<episode>") are series, everything else a movie.
func InferContentType(raw string) ContentType {
	if strings.Contains(raw, ":") {
		return ContentTypeSeries
	}
	return ContentTypeMovie
}

// ContentID is a parsed Stremio content identifier.
// Movies are "tt<digits>"; series episodes are "tt<digits>:<season>:<episode>".
type ContentID struct {
	IMDbID  string // Numeric part, the identifier with the "tt" prefix stripped
	Season  *int
	Episode *int
}

// ParseContentID parses a "tt"-prefixed identifier.
func ParseContentID(raw string) (ContentID, error) {
	if !strings.HasPrefix(raw, IMDbPrefix) {
		return ContentID{}, apperrors.NewInvalidContentIDError(raw)
	}

	parts := strings.Split(strings.TrimPrefix(raw, IMDbPrefix), ":")
	if !isDigits(parts[0]) {
		return ContentID{}, apperrors.NewInvalidContentIDError(raw)
	}

	id := ContentID{IMDbID: parts[0]}
	switch len(parts) {
	case 1:
		return id, nil
	case 3:
		season, seasonErr := strconv.Atoi(parts[1])
		episode, episodeErr := strconv.Atoi(parts[2])
		if seasonErr != nil || episodeErr != nil || season < 0 || episode < 0 {
			return ContentID{}, apperrors.NewInvalidContentIDError(raw)
		}
		id.Season = &season
		id.Episode = &episode
		return id, nil
	default:
		return ContentID{}, apperrors.NewInvalidContentIDError(raw)
	}
}

// IsEpisode reports whether the identifier points at a single series episode.
func (c ContentID) IsEpisode() bool {
	return c.Season != nil && c.Episode != nil
}

// SearchParams builds the upstream query for this identifier in the given language.
func (c ContentID) SearchParams(language string) SearchParams {
	if c.IsEpisode() {
		return SearchParams{
			ParentIMDbID:  c.IMDbID,
			SeasonNumber:  c.Season,
			EpisodeNumber: c.Episode,
			Languages:     language,
		}
	}
	return SearchParams{
		IMDbID:    c.IMDbID,
		Languages: language,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
