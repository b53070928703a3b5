package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/services"
)

const jsonSuffix = ".json"

type handlers struct {
	lookup          services.SubtitleLookup
	defaultLanguage string
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handlers) manifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewManifest())
}

// subtitles serves both the bare /subtitles/{type}/{id} form and the Stremio
// protocol forms ending in .json. It always answers 200.
func (h *handlers) subtitles(w http.ResponseWriter, r *http.Request) {
	contentType := models.ContentType(chi.URLParam(r, "type"))
	contentID := pathParam(r, "id")
	extra := pathParam(r, "extra")
	if extra == "" {
		contentID = strings.TrimSuffix(contentID, jsonSuffix)
	}

	language := models.NormalizeLanguage(languageHint(r, extra), h.defaultLanguage)

	if !contentType.IsSupported() {
		hlog.FromRequest(r).Debug().Str("type", string(contentType)).Msg("Unsupported content type")
		writeJSON(w, http.StatusOK, models.SubtitlesResponse{Subtitles: models.EmptyLookupResult()})
		return
	}

	result := h.lookup.Lookup(r.Context(), models.LookupRequest{
		Type:              contentType,
		ContentID:         contentID,
		PreferredLanguage: language,
	})
	writeJSON(w, http.StatusOK, models.SubtitlesResponse{Subtitles: result})
}

// pathParam returns a decoded route parameter. chi matches on the escaped path,
// so "tt0944947%3A1%3A1" arrives encoded. Undecodable values are returned as is.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

// languageHint reads "lang" from the Stremio extra segment (key=value&key=value)
// and then from the query string.
func languageHint(r *http.Request, extra string) string {
	if extra != "" {
		values, err := url.ParseQuery(strings.TrimSuffix(extra, jsonSuffix))
		if err == nil {
			if lang := values.Get("lang"); lang != "" {
				return lang
			}
		}
	}
	return r.URL.Query().Get("lang")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
