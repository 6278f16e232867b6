package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// FieldKey is a key of the app description object returned by OneSky
type FieldKey string

const (
	FieldAppName               FieldKey = "APP_NAME"
	FieldAppSubtitle           FieldKey = "APP_SUBTITLE"
	FieldAppPromotionalText    FieldKey = "APP_PROMOTIONAL_TEXT"
	FieldAppDescription        FieldKey = "APP_DESCRIPTION"
	FieldAppKeyword            FieldKey = "APP_KEYWORD"
	FieldAppVersionDescription FieldKey = "APP_VERSION_DESCRIPTION"
)

// fieldKeys keeps the table order for help output
var fieldKeys = []FieldKey{
	FieldAppName,
	FieldAppSubtitle,
	FieldAppPromotionalText,
	FieldAppDescription,
	FieldAppKeyword,
	FieldAppVersionDescription,
}

// filenames follows the file names used by fastlane deliver
var filenames = map[FieldKey]string{
	FieldAppName:               "name.txt",
	FieldAppSubtitle:           "subtitle.txt",
	FieldAppPromotionalText:    "promotional_text.txt",
	FieldAppDescription:        "description.txt",
	FieldAppKeyword:            "keywords.txt",
	FieldAppVersionDescription: "release_notes.txt",
}

// MapFilename returns the output file name for a field key. The second
// return value is false for any key that has no mapping.
func MapFilename(key string) (string, bool) {
	name, ok := filenames[FieldKey(key)]
	return name, ok
}

// FieldKeys returns all mapped field keys
func FieldKeys() []FieldKey {
	keys := make([]FieldKey, len(fieldKeys))
	copy(keys, fieldKeys)
	return keys
}

// AppDescription is the "data" object of an app description export. Values
// stay raw until Text is called, so fields that are never written can carry
// any JSON value.
type AppDescription map[string]json.RawMessage

// Text decodes the value of a field. The second return value is false when
// the field is missing or null.
func (d AppDescription) Text(key string) (string, bool, error) {
	raw, ok := d[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", false, goerr.Wrap(err, "field value is not a string", goerr.V("key", key))
	}
	return text, true, nil
}

// exportResponse is the body of the app description export API
type exportResponse struct {
	Data map[string]json.RawMessage `json:"data"`
}

// ParseAppDescription decodes the envelope of an export response. An empty
// body, a JSON null or a response without "data" returns ErrEmptyResponse.
func ParseAppDescription(raw []byte) (AppDescription, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyResponse
	}

	var resp exportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse app description response")
	}
	if resp.Data == nil {
		return nil, ErrEmptyResponse
	}

	return AppDescription(resp.Data), nil
}
