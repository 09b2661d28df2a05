package ports

import (
	"context"

	"github.com/geocommerce/geopop/internal/core/domain"
)

// RasterSource opens read-only handles on the configured population raster.
type RasterSource interface {
	Open(ctx context.Context) (RasterDataset, error)
	// Fingerprint identifies the current file contents, e.g. path, size and mtime.
	Fingerprint() string
}

// RasterDataset is a request-local, read-only handle on a raster.
type RasterDataset interface {
	// Info describes the raster. NoData is taken from the given 1-based band.
	Info(band int) (domain.RasterInfo, error)
	// ReadBlock reads band cells for win into buf in row-major order.
	// win must lie entirely inside the raster grid.
	ReadBlock(ctx context.Context, band int, win domain.Window, buf []float64) error
	Close() error
}
