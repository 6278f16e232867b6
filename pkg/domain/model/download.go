package model

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/multierr"
)

var (
	// ErrInvalidRequest is returned by pre-flight validation. It is fatal for
	// the whole batch and no locale is downloaded.
	ErrInvalidRequest = goerr.New("invalid download request")

	// ErrEmptyResponse marks a locale whose export returned no data
	ErrEmptyResponse = goerr.New("empty app description response")
)

// DownloadRequest is built once per invocation from CLI configuration
type DownloadRequest struct {
	PublicKey      string
	SecretKey      string `masq:"secret"`
	ProjectID      string
	Locales        []string
	DestinationDir string

	// Concurrency caps the number of locales downloaded at the same time.
	// 0 runs one unit per locale.
	Concurrency int
}

// Validate checks the request before any locale is dispatched
func (r *DownloadRequest) Validate() error {
	if r.PublicKey == "" {
		return goerr.Wrap(ErrInvalidRequest, "no public key for OneSky given")
	}
	if r.SecretKey == "" {
		return goerr.Wrap(ErrInvalidRequest, "no secret key for OneSky given")
	}
	if r.ProjectID == "" {
		return goerr.Wrap(ErrInvalidRequest, "no project id given")
	}
	if len(r.Locales) == 0 {
		return goerr.Wrap(ErrInvalidRequest, "no locale for translation given")
	}
	if r.DestinationDir == "" {
		return goerr.Wrap(ErrInvalidRequest, "no destination directory given")
	}
	if r.Concurrency < 0 {
		return goerr.Wrap(ErrInvalidRequest, "concurrency must not be negative",
			goerr.V("concurrency", r.Concurrency))
	}

	seen := make(map[string]struct{}, len(r.Locales))
	for _, locale := range r.Locales {
		if err := validateLocale(locale); err != nil {
			return err
		}
		if _, ok := seen[locale]; ok {
			return goerr.Wrap(ErrInvalidRequest, "duplicated locale", goerr.V("locale", locale))
		}
		seen[locale] = struct{}{}
	}

	return nil
}

// validateLocale rejects locales that can not be used as a directory name
func validateLocale(locale string) error {
	if strings.TrimSpace(locale) == "" {
		return goerr.Wrap(ErrInvalidRequest, "empty locale in locale list")
	}
	if strings.TrimSpace(locale) != locale {
		return goerr.Wrap(ErrInvalidRequest, "locale has surrounding whitespace", goerr.V("locale", locale))
	}
	if locale == "." || locale == ".." ||
		strings.ContainsRune(locale, '/') ||
		strings.ContainsRune(locale, filepath.Separator) {
		return goerr.Wrap(ErrInvalidRequest, "locale is not a valid directory name", goerr.V("locale", locale))
	}
	return nil
}

// LocaleStatus is the outcome kind of one locale
type LocaleStatus string

const (
	StatusSuccess       LocaleStatus = "success"
	StatusEmptyResponse LocaleStatus = "empty_response"
	StatusFailed        LocaleStatus = "failed"
)

// LocaleOutcome is produced by exactly one download unit
type LocaleOutcome struct {
	Locale string
	Status LocaleStatus
	Files  []string // written file names, sorted
	Err    error    // set when Status is StatusFailed
}

// DownloadReport holds one outcome per requested locale, in request order
type DownloadReport struct {
	Outcomes []LocaleOutcome
}

func (r *DownloadReport) filter(status LocaleStatus) []LocaleOutcome {
	var out []LocaleOutcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Succeeded returns the outcomes of locales whose files were written
func (r *DownloadReport) Succeeded() []LocaleOutcome { return r.filter(StatusSuccess) }

// Empty returns the outcomes of locales without translation data
func (r *DownloadReport) Empty() []LocaleOutcome { return r.filter(StatusEmptyResponse) }

// Failed returns the outcomes of locales that hit a hard failure
func (r *DownloadReport) Failed() []LocaleOutcome { return r.filter(StatusFailed) }

// Err aggregates hard failures. Empty responses are soft and not included.
func (r *DownloadReport) Err() error {
	var err error
	for _, o := range r.Failed() {
		err = multierr.Append(err, goerr.Wrap(o.Err, "failed to download app description",
			goerr.V("locale", o.Locale)))
	}
	return err
}
