package grpc

import (
	"context"
	"sync"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
)

// mockLookup implements services.SubtitleLookup for testing
type mockLookup struct {
	mu         sync.Mutex
	requests   []models.LookupRequest
	lookupFunc func(ctx context.Context, req models.LookupRequest) models.LookupResult
}

func (m *mockLookup) Lookup(ctx context.Context, req models.LookupRequest) models.LookupResult {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.lookupFunc != nil {
		return m.lookupFunc(ctx, req)
	}
	return models.EmptyLookupResult()
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("Failed to build struct: %v", err)
	}
	return s
}

func TestGetManifest(t *testing.T) {
	t.Parallel()
	srv := NewServer(&mockLookup{}, "")

	resp, err := srv.GetManifest(context.Background(), &structpb.Struct{})
	if err != nil {
		t.Fatalf("GetManifest returned error: %v", err)
	}
	if got := stringField(resp, "name"); got != "OpenSubtitles Auto" {
		t.Errorf("Expected manifest name, got %q", got)
	}
}

func TestGetSubtitles_Success(t *testing.T) {
	t.Parallel()
	mock := &mockLookup{
		lookupFunc: func(ctx context.Context, req models.LookupRequest) models.LookupResult {
			return models.LookupResult{{ID: "abc", Lang: req.PreferredLanguage, URL: "http://x/y.srt"}}
		},
	}
	srv := NewServer(mock, "")

	resp, err := srv.GetSubtitles(context.Background(), mustStruct(t, map[string]any{
		"type": "movie",
		"id":   "tt0111161",
		"lang": "eng",
	}))
	if err != nil {
		t.Fatalf("GetSubtitles returned error: %v", err)
	}

	if len(mock.requests) != 1 {
		t.Fatalf("Expected 1 lookup, got %d", len(mock.requests))
	}
	req := mock.requests[0]
	if req.Type != models.ContentTypeMovie || req.ContentID != "tt0111161" || req.PreferredLanguage != "en" {
		t.Errorf("Unexpected lookup request %+v", req)
	}

	values := resp.GetFields()["subtitles"].GetListValue().GetValues()
	if len(values) != 1 {
		t.Fatalf("Expected 1 subtitle, got %d", len(values))
	}
	entry := values[0].GetStructValue()
	if stringField(entry, "id") != "abc" || stringField(entry, "lang") != "en" || stringField(entry, "url") != "http://x/y.srt" {
		t.Errorf("Unexpected entry %v", entry)
	}
}

func TestGetSubtitles_Defaults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		id       string
		wantType models.ContentType
	}{
		{"movie id", "tt0111161", models.ContentTypeMovie},
		{"episode id", "tt0944947:1:1", models.ContentTypeSeries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockLookup{}
			srv := NewServer(mock, "")

			if _, err := srv.GetSubtitles(context.Background(), mustStruct(t, map[string]any{"id": tt.id})); err != nil {
				t.Fatalf("GetSubtitles returned error: %v", err)
			}
			req := mock.requests[0]
			if req.Type != tt.wantType {
				t.Errorf("Expected type %q, got %q", tt.wantType, req.Type)
			}
			if req.PreferredLanguage != "he" {
				t.Errorf("Expected default language 'he', got %q", req.PreferredLanguage)
			}
		})
	}
}

func TestGetSubtitles_UnsupportedType(t *testing.T) {
	t.Parallel()
	mock := &mockLookup{}
	srv := NewServer(mock, "")

	resp, err := srv.GetSubtitles(context.Background(), mustStruct(t, map[string]any{"type": "tv", "id": "tt1"}))
	if err != nil {
		t.Fatalf("GetSubtitles returned error: %v", err)
	}
	if len(mock.requests) != 0 {
		t.Errorf("Expected no lookup for an unsupported type, got %d", len(mock.requests))
	}
	if list := resp.GetFields()["subtitles"].GetListValue(); list == nil || len(list.GetValues()) != 0 {
		t.Errorf("Expected an empty subtitles list, got %v", resp)
	}
}

func TestGetSubtitles_MissingID(t *testing.T) {
	t.Parallel()
	srv := NewServer(&mockLookup{}, "")

	for name, req := range map[string]*structpb.Struct{
		"nil request":  nil,
		"empty struct": {},
		"empty id":     mustStruct(t, map[string]any{"id": ""}),
		"numeric id":   mustStruct(t, map[string]any{"id": 111161}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := srv.GetSubtitles(context.Background(), req)
			if err == nil {
				t.Fatal("Expected an error")
			}
			st, ok := status.FromError(err)
			if !ok {
				t.Fatalf("Expected a gRPC status error, got %v", err)
			}
			if st.Code() != codes.InvalidArgument {
				t.Errorf("Expected InvalidArgument, got %v", st.Code())
			}

			var found bool
			for _, detail := range st.Details() {
				if br, ok := detail.(*errdetails.BadRequest); ok {
					for _, v := range br.GetFieldViolations() {
						if v.GetField() == "id" {
							found = true
						}
					}
				}
			}
			if !found {
				t.Error("Expected a BadRequest field violation for 'id'")
			}
		})
	}
}
