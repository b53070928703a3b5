package grpc

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/services"
)

// server implements the AddonServiceServer interface
type server struct {
	lookup          services.SubtitleLookup
	defaultLanguage string
	logger          zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(lookup services.SubtitleLookup, defaultLanguage string) AddonServiceServer {
	if defaultLanguage == "" {
		defaultLanguage = config.DefaultLanguage
	}
	return &server{
		lookup:          lookup,
		defaultLanguage: defaultLanguage,
		logger:          config.GetLogger(),
	}
}

// GetManifest implements AddonServiceServer.GetManifest
func (s *server) GetManifest(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s.logger.Debug().Msg("GetManifest called")

	manifest, err := convertManifestToStruct(models.NewManifest())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to convert manifest")
		return nil, status.Errorf(codes.Internal, "failed to convert manifest: %v", err)
	}
	return manifest, nil
}

// GetSubtitles implements AddonServiceServer.GetSubtitles. Only a missing id is an
// error; every other problem answers an empty subtitles list.
func (s *server) GetSubtitles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	contentID := stringField(req, "id")
	if contentID == "" {
		return nil, invalidArgument("id", "content id is required")
	}

	contentType := models.ContentType(stringField(req, "type"))
	if contentType == "" {
		contentType = models.InferContentType(contentID)
	}
	language := models.NormalizeLanguage(stringField(req, "lang"), s.defaultLanguage)

	s.logger.Debug().
		Str("type", string(contentType)).
		Str("contentID", contentID).
		Str("language", language).
		Msg("GetSubtitles called")

	result := models.EmptyLookupResult()
	if contentType.IsSupported() {
		result = s.lookup.Lookup(ctx, models.LookupRequest{
			Type:              contentType,
			ContentID:         contentID,
			PreferredLanguage: language,
		})
	}

	response, err := convertLookupResultToStruct(result)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to convert subtitles")
		return nil, status.Errorf(codes.Internal, "failed to convert subtitles: %v", err)
	}

	s.logger.Debug().Str("contentID", contentID).Int("count", len(result)).Msg("GetSubtitles completed")
	return response, nil
}

func invalidArgument(field, description string) error {
	st := status.New(codes.InvalidArgument, description)
	detailed, err := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: field, Description: description},
		},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
