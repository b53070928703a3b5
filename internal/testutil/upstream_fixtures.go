package testutil

import (
	"fmt"
	"strings"
)

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// SubtitleRecordOptions contains options for generating one upstream subtitle record
type SubtitleRecordOptions struct {
	ID       string
	URL      string
	Language string // Language reported by the upstream, "en" when empty
	Release  string
}

// GenerateSearchResponseJSON builds an OpenSubtitles /subtitles response body
// with the paginated envelope and one record per option.
func GenerateSearchResponseJSON(records []SubtitleRecordOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `{"total_pages":1,"total_count":%d,"per_page":60,"page":1,"data":[`, len(records))
	for i, r := range records {
		if i > 0 {
			sb.WriteString(",")
		}
		language := r.Language
		if language == "" {
			language = "en"
		}
		fmt.Fprintf(&sb,
			`{"id":%q,"type":"subtitle","attributes":{"subtitle_id":%q,"language":%q,"download_count":%d,"release":%q,"url":%q,"files":[{"file_id":%d,"file_name":"%s.srt"}]}}`,
			r.ID, r.ID, language, 100+i, r.Release, r.URL, 1000+i, r.ID,
		)
	}
	sb.WriteString("]}")

	return sb.String()
}

// EmptySearchResponseJSON is the body the upstream returns when nothing matches.
const EmptySearchResponseJSON = `{"total_pages":0,"total_count":0,"per_page":60,"page":1,"data":[]}`

// NoDataSearchResponseJSON is a response without a data field at all.
const NoDataSearchResponseJSON = `{"total_pages":0,"total_count":0}`

// MalformedSearchResponseJSON has a data field of the wrong shape.
const MalformedSearchResponseJSON = `{"data":"unexpected"}`
