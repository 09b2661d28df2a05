package usecases

import (
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/geocommerce/geopop/internal/core/domain"
)

const (
	// MsgCoordinatesRequired is returned when a parameter is missing or not a number.
	MsgCoordinatesRequired = "valid coordinates are required: lat_min, lon_min, lat_max, lon_max"
	// MsgInvalidCoordinates is returned when bounds are out of range or misordered.
	MsgInvalidCoordinates = "invalid coordinates"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// bboxRequest carries the range and ordering rules for a bounding box.
type bboxRequest struct {
	LatMin float64 `validate:"latitude"`
	LonMin float64 `validate:"longitude"`
	LatMax float64 `validate:"latitude,gtfield=LatMin"`
	LonMax float64 `validate:"longitude,gtfield=LonMin"`
}

// ParseBBox parses and validates raw lat_min, lon_min, lat_max and lon_max
// values. Failures are input errors.
func ParseBBox(latMin, lonMin, latMax, lonMax string) (domain.BBox, error) {
	raw := [4]string{latMin, lonMin, latMax, lonMax}
	var vals [4]float64
	for i, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return domain.BBox{}, domain.InputError(MsgCoordinatesRequired)
		}
		vals[i] = v
	}

	bbox := domain.BBox{LatMin: vals[0], LonMin: vals[1], LatMax: vals[2], LonMax: vals[3]}
	if err := ValidateBBox(bbox); err != nil {
		return domain.BBox{}, err
	}
	return bbox, nil
}

// ValidateBBox checks -90 <= lat_min < lat_max <= 90 and
// -180 <= lon_min < lon_max <= 180.
func ValidateBBox(b domain.BBox) error {
	req := bboxRequest{LatMin: b.LatMin, LonMin: b.LonMin, LatMax: b.LatMax, LonMax: b.LonMax}
	if err := getValidator().Struct(&req); err != nil {
		return domain.InputError(MsgInvalidCoordinates)
	}
	return nil
}
