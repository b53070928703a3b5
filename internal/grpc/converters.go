package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
)

// convertManifestToStruct keeps the manifest's JSON field names and shapes.
func convertManifestToStruct(manifest models.Manifest) (*structpb.Struct, error) {
	raw, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("failed to convert manifest: %w", err)
	}
	return out, nil
}

// convertLookupResultToStruct builds {"subtitles": [{id, lang, url}, ...]}.
func convertLookupResultToStruct(result models.LookupResult) (*structpb.Struct, error) {
	subtitles := make([]any, len(result))
	for i, entry := range result {
		subtitles[i] = map[string]any{
			"id":   entry.ID,
			"lang": entry.Lang,
			"url":  entry.URL,
		}
	}
	return structpb.NewStruct(map[string]any{"subtitles": subtitles})
}

// stringField returns the string value of key, or "" when absent or not a string.
func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}
