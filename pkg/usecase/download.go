package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/interfaces"
	"github.com/m-mizutani/onesky-appdesc/pkg/domain/model"
	"github.com/m-mizutani/onesky-appdesc/pkg/utils/async"
)

type downloadUseCase struct {
	client interfaces.OneSkyClient
	store  interfaces.MetadataStore
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(client interfaces.OneSkyClient, store interfaces.MetadataStore) interfaces.DownloadUseCase {
	return &downloadUseCase{
		client: client,
		store:  store,
	}
}

// Download runs one unit per locale and waits for all of them. A locale
// level problem never aborts other locales; it is reported in its outcome.
func (uc *downloadUseCase) Download(ctx context.Context, req *model.DownloadRequest) (*model.DownloadReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := ctxlog.From(ctx)
	outcomes := make([]model.LocaleOutcome, len(req.Locales))

	var g errgroup.Group
	if req.Concurrency > 0 {
		g.SetLimit(req.Concurrency)
	}

	for i, locale := range req.Locales {
		logger.Info("Downloading translation of app description from OneSky",
			"locale", locale,
			"destination", strings.TrimRight(req.DestinationDir, "/")+"/"+locale,
		)

		// each unit owns outcomes[i]
		g.Go(func() error {
			outcomes[i] = uc.downloadLocale(ctx, locale)
			return nil
		})
	}

	_ = g.Wait()

	return &model.DownloadReport{Outcomes: outcomes}, nil
}

// downloadLocale never returns an error; the outcome carries it
func (uc *downloadUseCase) downloadLocale(ctx context.Context, locale string) model.LocaleOutcome {
	logger := ctxlog.From(ctx).With("locale", locale)
	ctx = ctxlog.With(ctx, logger)

	outcome := model.LocaleOutcome{Locale: locale}

	err := async.Guard(ctx, func(ctx context.Context) error {
		files, err := uc.exportLocale(ctx, locale)
		outcome.Files = files
		return err
	})

	switch {
	case err == nil:
		outcome.Status = model.StatusSuccess
		logger.Info("Downloaded app description", "files", outcome.Files)

	case errors.Is(err, model.ErrEmptyResponse):
		outcome.Status = model.StatusEmptyResponse
		logger.Warn("Couldn't download app description")

	default:
		outcome.Status = model.StatusFailed
		outcome.Err = err
		logger.Error("Failed to download app description", "error", err)
	}

	return outcome
}

// exportLocale fetches one locale and writes its mapped fields. It returns
// the names of the files written so far, also on failure.
func (uc *downloadUseCase) exportLocale(ctx context.Context, locale string) ([]string, error) {
	logger := ctxlog.From(ctx)

	raw, err := uc.client.ExportAppDescription(ctx, locale)
	if err != nil {
		return nil, goerr.Wrap(err, "OneSky request failed", goerr.V("locale", locale))
	}

	desc, err := model.ParseAppDescription(raw)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(desc))
	for key := range desc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var files []string
	for _, key := range keys {
		filename, ok := model.MapFilename(key)
		if !ok {
			logger.Debug("Skip unknown field", "key", key)
			continue
		}

		text, ok, err := desc.Text(key)
		if err != nil {
			sort.Strings(files)
			return files, goerr.Wrap(err, "invalid app description field", goerr.V("locale", locale))
		}
		if !ok {
			logger.Debug("Skip null field", "key", key)
			continue
		}

		if err := uc.store.Put(ctx, locale, filename, []byte(text)); err != nil {
			sort.Strings(files)
			return files, goerr.Wrap(err, "failed to store metadata file",
				goerr.V("locale", locale),
				goerr.V("filename", filename),
			)
		}
		files = append(files, filename)
	}

	sort.Strings(files)
	return files, nil
}
