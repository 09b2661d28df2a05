// Package gdalraster reads GeoTIFF population rasters through GDAL.
package gdalraster

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/lukeroth/gdal"

	"github.com/geocommerce/geopop/internal/core/domain"
	"github.com/geocommerce/geopop/internal/core/ports"
	"github.com/geocommerce/geopop/internal/pkg/geospatial"
)

// Source implements ports.RasterSource for a single raster file.
type Source struct {
	path string
}

// NewSource returns a Source for the raster at path. The file is not opened.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Fingerprint identifies the file by path, size and modification time.
func (s *Source) Fingerprint() string {
	fi, err := os.Stat(s.path)
	if err != nil {
		return s.path
	}
	return fmt.Sprintf("%s@%d-%d", s.path, fi.Size(), fi.ModTime().UnixNano())
}

// Open opens a read-only handle. Callers must Close it.
func (s *Source) Open(ctx context.Context) (ports.RasterDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, err := gdal.Open(s.path, gdal.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open raster %s: %w", s.path, err)
	}
	return &Dataset{ds: ds}, nil
}

// Dataset wraps an open GDAL dataset.
type Dataset struct {
	ds gdal.Dataset
}

// Info returns size, geotransform, CRS, extent and the no-data value of band.
func (d *Dataset) Info(band int) (domain.RasterInfo, error) {
	info := domain.RasterInfo{
		Width:        d.ds.RasterXSize(),
		Height:       d.ds.RasterYSize(),
		Bands:        d.ds.RasterCount(),
		GeoTransform: d.ds.GeoTransform(),
		CRS:          crsString(d.ds.Projection()),
	}
	if band < 1 || band > info.Bands {
		return info, fmt.Errorf("raster has %d band(s), band %d requested", info.Bands, band)
	}

	// A NaN no-data value is left unset: NaN cells are already zeroed.
	if nd, ok := d.ds.RasterBand(band).NoDataValue(); ok && !math.IsNaN(nd) {
		info.NoData = &nd
	}

	gt := geospatial.GeoTransform(info.GeoTransform)
	info.Extent = domain.BBoxFromBounds(gt.Extent(info.Width, info.Height))
	return info, nil
}

// ReadBlock reads win from band into buf. win must lie inside the grid.
func (d *Dataset) ReadBlock(ctx context.Context, band int, win domain.Window, buf []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if band < 1 || band > d.ds.RasterCount() {
		return fmt.Errorf("raster has %d band(s), band %d requested", d.ds.RasterCount(), band)
	}
	if win.Empty() {
		return nil
	}
	if win.ColOff < 0 || win.RowOff < 0 ||
		win.ColOff+win.Width > d.ds.RasterXSize() || win.RowOff+win.Height > d.ds.RasterYSize() {
		return fmt.Errorf("window %+v outside %dx%d raster", win, d.ds.RasterXSize(), d.ds.RasterYSize())
	}
	n := win.Width * win.Height
	if len(buf) < n {
		return fmt.Errorf("buffer holds %d cells, window needs %d", len(buf), n)
	}

	err := d.ds.RasterBand(band).IO(gdal.Read,
		win.ColOff, win.RowOff, win.Width, win.Height,
		buf[:n], win.Width, win.Height, 0, 0)
	if err != nil {
		return fmt.Errorf("read band %d window %+v: %w", band, win, err)
	}
	return nil
}

// Close releases the GDAL handle.
func (d *Dataset) Close() error {
	d.ds.Close()
	return nil
}

// crsString returns "AUTHORITY:CODE" for an identifiable CRS, the raw WKT
// otherwise, and "" for an ungeoreferenced raster.
func crsString(wkt string) string {
	if wkt == "" {
		return ""
	}
	sr := gdal.CreateSpatialReference(wkt)
	defer sr.Destroy()

	// Identification fails for custom CRSs; fall through to whatever
	// authority the WKT already declares.
	_ = sr.AutoIdentifyEPSG()

	name, code := sr.AuthorityName(""), sr.AuthorityCode("")
	if name == "" || code == "" {
		return wkt
	}
	return name + ":" + code
}
