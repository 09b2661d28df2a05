package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/twpayne/go-geom"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/geocommerce/geopop/internal/core/domain"
	"github.com/geocommerce/geopop/internal/core/ports"
	"github.com/geocommerce/geopop/internal/pkg/geospatial"
	"github.com/geocommerce/geopop/internal/pkg/metrics"
)

// RequiredCRS is the only coordinate reference system the service accepts.
const RequiredCRS = "EPSG:4326"

const defaultStripRows = 256

var tracer = otel.Tracer("github.com/geocommerce/geopop/internal/core/usecases")

// PopulationOptions tunes the aggregator.
type PopulationOptions struct {
	Band      int // 1-based band index, defaults to 1
	StripRows int // rows read per block, defaults to 256
	CacheTTL  int // seconds; 0 disables caching
}

// PopulationService sums raster population inside bounding boxes.
type PopulationService struct {
	raster ports.RasterSource
	cache  ports.CacheService
	opts   PopulationOptions
}

// NewPopulationService creates a new PopulationService. cache may be nil.
func NewPopulationService(raster ports.RasterSource, cache ports.CacheService, opts PopulationOptions) *PopulationService {
	if opts.Band <= 0 {
		opts.Band = 1
	}
	if opts.StripRows <= 0 {
		opts.StripRows = defaultStripRows
	}
	return &PopulationService{raster: raster, cache: cache, opts: opts}
}

// Population returns the rounded total population inside bbox.
//
// Cells outside the raster count as 0, as do NaN, no-data and negative cells.
func (s *PopulationService) Population(ctx context.Context, bbox domain.BBox) (*domain.PopulationResult, error) {
	if err := ValidateBBox(bbox); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "PopulationService.Population")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("bbox.lat_min", bbox.LatMin),
		attribute.Float64("bbox.lon_min", bbox.LonMin),
		attribute.Float64("bbox.lat_max", bbox.LatMax),
		attribute.Float64("bbox.lon_max", bbox.LonMax),
	)

	cacheKey := s.cacheKey(bbox)
	if s.cache != nil && s.opts.CacheTTL > 0 {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var res domain.PopulationResult
			if err := json.Unmarshal(data, &res); err == nil {
				metrics.CacheHits.WithLabelValues("population").Inc()
				res.Bounds = bbox
				return &res, nil
			}
			// Unreadable entry, drop it so the fresh total replaces it.
			_ = s.cache.Delete(ctx, cacheKey)
		}
		metrics.CacheMisses.WithLabelValues("population").Inc()
	}

	start := time.Now()
	total, err := s.sum(ctx, bbox)
	metrics.RasterReadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		kind := domain.KindOf(err)
		metrics.RasterReads.WithLabelValues(kind.String()).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	metrics.RasterReads.WithLabelValues("ok").Inc()

	res := &domain.PopulationResult{
		Population: int64(math.RoundToEven(total)),
		Bounds:     bbox,
	}
	span.SetAttributes(attribute.Int64("population", res.Population))

	if s.cache != nil && s.opts.CacheTTL > 0 {
		if data, err := json.Marshal(res); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.opts.CacheTTL)
		}
	}

	return res, nil
}

// Describe returns metadata of the configured raster.
func (s *PopulationService) Describe(ctx context.Context) (*domain.RasterInfo, error) {
	ds, err := s.raster.Open(ctx)
	if err != nil {
		return nil, domain.ProcessingError(err)
	}
	defer ds.Close()

	info, err := ds.Info(s.opts.Band)
	if err != nil {
		return nil, domain.ProcessingError(err)
	}
	return &info, nil
}

func (s *PopulationService) sum(ctx context.Context, bbox domain.BBox) (float64, error) {
	ds, err := s.raster.Open(ctx)
	if err != nil {
		return 0, domain.ProcessingError(err)
	}
	defer ds.Close()

	info, err := ds.Info(s.opts.Band)
	if err != nil {
		return 0, domain.ProcessingError(err)
	}
	// Query bounds are always degrees, so no other CRS can be windowed.
	if info.CRS != RequiredCRS {
		return 0, domain.ConfigurationError(fmt.Sprintf("raster must be in %s projection", RequiredCRS))
	}
	if s.opts.Band > info.Bands {
		return 0, domain.ProcessingError(fmt.Errorf("raster has %d band(s), band %d requested", info.Bands, s.opts.Band))
	}

	gt := geospatial.GeoTransform(info.GeoTransform)
	if !bbox.Bounds().Overlaps(geom.XY, gt.Extent(info.Width, info.Height)) {
		return 0, nil
	}

	win, err := geospatial.WindowFromBounds(bbox.Bounds(), gt)
	if err != nil {
		return 0, domain.ProcessingError(err)
	}
	metrics.WindowCells.Observe(float64(win.Cells()))

	// Cells of win outside the grid hold the boundless fill value 0.
	clip := win.Clip(info.Width, info.Height)
	if clip.Empty() {
		return 0, nil
	}

	strip := min(s.opts.StripRows, clip.Height)
	buf := make([]float64, clip.Width*strip)
	var total float64
	for row := clip.RowOff; row < clip.RowOff+clip.Height; row += strip {
		n := min(strip, clip.RowOff+clip.Height-row)
		block := domain.Window{ColOff: clip.ColOff, RowOff: row, Width: clip.Width, Height: n}
		cells := buf[:clip.Width*n]
		if err := ds.ReadBlock(ctx, s.opts.Band, block, cells); err != nil {
			return 0, domain.ProcessingError(err)
		}
		for _, v := range cells {
			total += cellValue(v, info.NoData)
		}
	}

	return total, nil
}

// cellValue maps NaN, no-data and negative cells to 0.
func cellValue(v float64, nodata *float64) float64 {
	if math.IsNaN(v) || (nodata != nil && v == *nodata) || v < 0 {
		return 0
	}
	return v
}

func (s *PopulationService) cacheKey(b domain.BBox) string {
	return fmt.Sprintf("population:%s:%d:%g:%g:%g:%g",
		s.raster.Fingerprint(), s.opts.Band, b.LatMin, b.LonMin, b.LatMax, b.LonMax)
}
