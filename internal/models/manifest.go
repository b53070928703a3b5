package models

// Manifest describes the capabilities of the addon.
// See https://github.com/Stremio/stremio-addon-sdk/blob/master/docs/api/responses/manifest.md
type Manifest struct {
	ID            string        `json:"id"`
	Version       string        `json:"version"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Resources     []string      `json:"resources"`
	Types         []ContentType `json:"types"`
	Catalogs      []CatalogItem `json:"catalogs"`
	IDPrefixes    []string      `json:"idPrefixes"`
	BehaviorHints BehaviorHints `json:"behaviorHints"`
}

// CatalogItem is a manifest catalog entry. The addon declares none.
type CatalogItem struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type BehaviorHints struct {
	Configurable bool `json:"configurable"`
}

// NewManifest returns the static addon manifest. A fresh value is built on
// every call so callers cannot mutate a shared copy.
func NewManifest() Manifest {
	types := make([]ContentType, len(SupportedContentTypes))
	copy(types, SupportedContentTypes)

	return Manifest{
		ID:            "org.stremio.opensubtitles.auto",
		Version:       "1.0.1",
		Name:          "OpenSubtitles Auto",
		Description:   "Fetches subtitles in your Stremio preferred language from OpenSubtitles.",
		Resources:     []string{"subtitles"},
		Types:         types,
		Catalogs:      []CatalogItem{},
		IDPrefixes:    []string{IMDbPrefix},
		BehaviorHints: BehaviorHints{Configurable: false},
	}
}
