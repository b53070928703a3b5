package models

// UpstreamSubtitle represents one record of the OpenSubtitles /subtitles search response.
// Only ID and Attributes.URL are used when building the addon response.
type UpstreamSubtitle struct {
	ID         string                     `json:"id"`
	Type       string                     `json:"type"`
	Attributes UpstreamSubtitleAttributes `json:"attributes"`
}

// UpstreamSubtitleAttributes holds the subset of subtitle attributes the addon decodes.
type UpstreamSubtitleAttributes struct {
	SubtitleID    string `json:"subtitle_id"`
	Language      string `json:"language"` // Language reported upstream, never copied to the output
	URL           string `json:"url"`      // Subtitle page URL
	Release       string `json:"release"`  // Release name the subtitle was made for
	DownloadCount int    `json:"download_count"`
}

// SearchResponse is the paginated envelope returned by the OpenSubtitles /subtitles endpoint
type SearchResponse struct {
	TotalPages int                `json:"total_pages"`
	TotalCount int                `json:"total_count"`
	PerPage    int                `json:"per_page"`
	Page       int                `json:"page"`
	Data       []UpstreamSubtitle `json:"data"`
}

// SearchParams are the query parameters of an upstream search.
// Encoded with go-querystring, so keys are emitted sorted and empty values are omitted.
type SearchParams struct {
	IMDbID        string `url:"imdb_id,omitempty"`
	ParentIMDbID  string `url:"parent_imdb_id,omitempty"`
	SeasonNumber  *int   `url:"season_number,omitempty"`
	EpisodeNumber *int   `url:"episode_number,omitempty"`
	Languages     string `url:"languages,omitempty"`
}

// LookupRequest is a single subtitle lookup as received from a routing adapter
type LookupRequest struct {
	Type              ContentType
	ContentID         string
	PreferredLanguage string
}

// SubtitleEntry is one subtitle in the addon response
type SubtitleEntry struct {
	ID   string `json:"id"`
	Lang string `json:"lang"`
	URL  string `json:"url"`
}

// LookupResult is the ordered list of subtitles for a lookup. It is never nil,
// so it always encodes as a JSON array.
type LookupResult []SubtitleEntry

// EmptyLookupResult returns a non-nil, empty result.
func EmptyLookupResult() LookupResult {
	return LookupResult{}
}

// SubtitlesResponse is the JSON body of the Stremio subtitles resource
type SubtitlesResponse struct {
	Subtitles LookupResult `json:"subtitles"`
}
