package interfaces

import (
	"context"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/model"
)

// DownloadUseCase defines the app description download
type DownloadUseCase interface {
	// Download fetches every requested locale and returns after all of them
	// finished. The error is only set when the request itself is invalid.
	Download(ctx context.Context, req *model.DownloadRequest) (*model.DownloadReport, error)
}
