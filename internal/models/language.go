package models

import (
	"strings"

	"golang.org/x/text/language"
)

// regionalLanguages are the language-region codes OpenSubtitles filters on.
// Any other region is dropped.
var regionalLanguages = map[string]bool{
	"pt-br": true,
	"pt-pt": true,
	"zh-cn": true,
	"zh-tw": true,
}

// NormalizeLanguage turns a client language hint into the code OpenSubtitles expects.
// Recognised codes collapse to their two-letter form ("eng" becomes "en"). A region is
// kept only where OpenSubtitles has a dedicated code ("pt-BR" becomes "pt-br", "en-US"
// becomes "en"). Unrecognised hints pass through unchanged; only an empty hint yields fallback.
func NormalizeLanguage(hint, fallback string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return fallback
	}

	tag, err := language.Parse(hint)
	if err != nil || tag.IsRoot() {
		return hint
	}

	base, confidence := tag.Base()
	if confidence == language.No {
		return hint
	}

	if region, regionConfidence := tag.Region(); regionConfidence == language.Exact {
		if code := base.String() + "-" + strings.ToLower(region.String()); regionalLanguages[code] {
			return code
		}
	}
	return base.String()
}
