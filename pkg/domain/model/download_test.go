package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"go.uber.org/multierr"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/model"
)

func validRequest() *model.DownloadRequest {
	return &model.DownloadRequest{
		PublicKey:      "public",
		SecretKey:      "secret",
		ProjectID:      "12345",
		Locales:        []string{"en-US", "ja"},
		DestinationDir: "fastlane/metadata",
	}
}

func TestDownloadRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *model.DownloadRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			modify: func(r *model.DownloadRequest) {},
		},
		{
			name:   "valid with concurrency cap",
			modify: func(r *model.DownloadRequest) { r.Concurrency = 2 },
		},
		{
			name:    "missing public key",
			modify:  func(r *model.DownloadRequest) { r.PublicKey = "" },
			wantErr: true,
		},
		{
			name:    "missing secret key",
			modify:  func(r *model.DownloadRequest) { r.SecretKey = "" },
			wantErr: true,
		},
		{
			name:    "missing project id",
			modify:  func(r *model.DownloadRequest) { r.ProjectID = "" },
			wantErr: true,
		},
		{
			name:    "no locales",
			modify:  func(r *model.DownloadRequest) { r.Locales = nil },
			wantErr: true,
		},
		{
			name:    "missing destination",
			modify:  func(r *model.DownloadRequest) { r.DestinationDir = "" },
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			modify:  func(r *model.DownloadRequest) { r.Concurrency = -1 },
			wantErr: true,
		},
		{
			name:    "blank locale",
			modify:  func(r *model.DownloadRequest) { r.Locales = []string{"en-US", " "} },
			wantErr: true,
		},
		{
			name:    "locale with surrounding whitespace",
			modify:  func(r *model.DownloadRequest) { r.Locales = []string{"en-US", " ja"} },
			wantErr: true,
		},
		{
			name:    "duplicated locale",
			modify:  func(r *model.DownloadRequest) { r.Locales = []string{"ja", "en-US", "ja"} },
			wantErr: true,
		},
		{
			name:    "locale with path separator",
			modify:  func(r *model.DownloadRequest) { r.Locales = []string{"../en-US"} },
			wantErr: true,
		},
		{
			name:    "parent directory as locale",
			modify:  func(r *model.DownloadRequest) { r.Locales = []string{".."} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)

			err := req.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, model.ErrInvalidRequest))
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestDownloadReport(t *testing.T) {
	report := &model.DownloadReport{
		Outcomes: []model.LocaleOutcome{
			{Locale: "en-US", Status: model.StatusSuccess, Files: []string{"name.txt"}},
			{Locale: "ja", Status: model.StatusEmptyResponse},
			{Locale: "fr", Status: model.StatusFailed, Err: errors.New("boom")},
			{Locale: "de", Status: model.StatusFailed, Err: errors.New("disk full")},
		},
	}

	gt.A(t, report.Succeeded()).Length(1)
	gt.A(t, report.Empty()).Length(1)
	gt.A(t, report.Failed()).Length(2)
	gt.Equal(t, report.Empty()[0].Locale, "ja")

	err := report.Err()
	gt.Error(t, err)
	gt.A(t, multierr.Errors(err)).Length(2)
	gt.String(t, err.Error()).Contains("boom")
	gt.String(t, err.Error()).Contains("disk full")
}

func TestDownloadReport_ErrIgnoresSoftOutcomes(t *testing.T) {
	report := &model.DownloadReport{
		Outcomes: []model.LocaleOutcome{
			{Locale: "en-US", Status: model.StatusSuccess},
			{Locale: "ja", Status: model.StatusEmptyResponse},
		},
	}

	gt.NoError(t, report.Err())
}
