package services

import (
	"context"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
)

// SubtitleLookup defines the interface for translating a Stremio subtitles request
// into an OpenSubtitles search
type SubtitleLookup interface {
	// Lookup never fails: upstream errors, invalid identifiers and empty upstream
	// results all produce an empty, non-nil LookupResult.
	Lookup(ctx context.Context, req models.LookupRequest) models.LookupResult
}
