package interfaces

import "context"

// OneSkyClient defines operations for the OneSky platform API
type OneSkyClient interface {
	// ExportAppDescription returns the raw JSON export of the app description
	// translation for a locale. An empty body means no translation exists.
	ExportAppDescription(ctx context.Context, locale string) ([]byte, error)
}

// MetadataStore persists metadata files of a locale
type MetadataStore interface {
	// Put writes content to {locale}/{filename}, replacing any existing file
	Put(ctx context.Context, locale, filename string, content []byte) error
}
