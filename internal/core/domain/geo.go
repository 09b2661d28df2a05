package domain

import "github.com/twpayne/go-geom"

// BBox is a geographic bounding box in decimal degrees (WGS 84).
type BBox struct {
	LatMin float64 `json:"lat_min"`
	LonMin float64 `json:"lon_min"`
	LatMax float64 `json:"lat_max"`
	LonMax float64 `json:"lon_max"`
}

// Bounds returns the box as an XY (lon, lat) geometry bounds.
func (b BBox) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(b.LonMin, b.LatMin, b.LonMax, b.LatMax)
}

// BBoxFromBounds converts XY geometry bounds back into a BBox.
func BBoxFromBounds(b *geom.Bounds) BBox {
	return BBox{
		LatMin: b.Min(1),
		LonMin: b.Min(0),
		LatMax: b.Max(1),
		LonMax: b.Max(0),
	}
}

// Window is a rectangular region of a raster's pixel grid.
// Offsets may be negative and the window may extend past the grid.
type Window struct {
	ColOff int `json:"col_off"`
	RowOff int `json:"row_off"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the window covers no cells.
func (w Window) Empty() bool {
	return w.Width <= 0 || w.Height <= 0
}

// Cells returns the number of cells the window covers.
func (w Window) Cells() int64 {
	if w.Empty() {
		return 0
	}
	return int64(w.Width) * int64(w.Height)
}

// Clip returns the part of w that lies inside a width x height grid.
func (w Window) Clip(width, height int) Window {
	c0, r0 := max(w.ColOff, 0), max(w.RowOff, 0)
	c1, r1 := min(w.ColOff+w.Width, width), min(w.RowOff+w.Height, height)
	if c1 <= c0 || r1 <= r0 {
		return Window{}
	}
	return Window{ColOff: c0, RowOff: r0, Width: c1 - c0, Height: r1 - r0}
}

// RasterInfo describes an opened raster dataset.
type RasterInfo struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Bands        int        `json:"bands"`
	GeoTransform [6]float64 `json:"geotransform"`
	CRS          string     `json:"crs"`
	NoData       *float64   `json:"nodata"`
	Extent       BBox       `json:"extent"`
}

// PopulationResult is the answer to a bounding-box population query.
type PopulationResult struct {
	Population int64 `json:"population"`
	Bounds     BBox  `json:"bounds"`
}
