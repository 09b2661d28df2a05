package geospatial

import (
	"errors"
	"math"

	"github.com/twpayne/go-geom"

	"github.com/geocommerce/geopop/internal/core/domain"
)

// ErrSingularTransform is returned when a geotransform cannot be inverted.
var ErrSingularTransform = errors.New("geotransform is not invertible")

// GeoTransform is an affine transform in GDAL coefficient order:
//
//	x = gt[0] + col*gt[1] + row*gt[2]
//	y = gt[3] + col*gt[4] + row*gt[5]
//
// For north-up rasters gt[5] is negative, so rows grow as latitude falls.
type GeoTransform [6]float64

// Apply maps a pixel position to geographic coordinates.
func (gt GeoTransform) Apply(col, row float64) (x, y float64) {
	return gt[0] + col*gt[1] + row*gt[2], gt[3] + col*gt[4] + row*gt[5]
}

// Invert returns the transform mapping geographic coordinates back to pixels.
func (gt GeoTransform) Invert() (GeoTransform, error) {
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if math.Abs(det) < 1e-15 || math.IsNaN(det) {
		return GeoTransform{}, ErrSingularTransform
	}
	inv := 1 / det
	return GeoTransform{
		(gt[2]*gt[3] - gt[0]*gt[5]) * inv,
		gt[5] * inv,
		-gt[2] * inv,
		(-gt[1]*gt[3] + gt[0]*gt[4]) * inv,
		-gt[4] * inv,
		gt[1] * inv,
	}, nil
}

// Extent returns the geographic bounds covered by a width x height grid.
func (gt GeoTransform) Extent(width, height int) *geom.Bounds {
	w, h := float64(width), float64(height)
	flat := make([]float64, 0, 8)
	for _, p := range [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		x, y := gt.Apply(p[0], p[1])
		flat = append(flat, x, y)
	}
	return geom.NewBounds(geom.XY).ExtendFlatCoords(flat, 0, len(flat), 2)
}

// WindowFromBounds converts geographic bounds into the pixel window covering
// them. Fractional offsets and lengths are rounded to the nearest pixel.
// The window is not clipped to the raster.
func WindowFromBounds(b *geom.Bounds, gt GeoTransform) (domain.Window, error) {
	inv, err := gt.Invert()
	if err != nil {
		return domain.Window{}, err
	}

	minX, minY, maxX, maxY := b.Min(0), b.Min(1), b.Max(0), b.Max(1)
	colStart, rowStart := math.Inf(1), math.Inf(1)
	colStop, rowStop := math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{{minX, maxY}, {maxX, maxY}, {maxX, minY}, {minX, minY}} {
		col, row := inv.Apply(p[0], p[1])
		colStart, colStop = math.Min(colStart, col), math.Max(colStop, col)
		rowStart, rowStop = math.Min(rowStart, row), math.Max(rowStop, row)
	}

	return domain.Window{
		ColOff: roundPixel(colStart),
		RowOff: roundPixel(rowStart),
		Width:  roundPixel(colStop - colStart),
		Height: roundPixel(rowStop - rowStart),
	}, nil
}

func roundPixel(v float64) int {
	return int(math.Round(v))
}
