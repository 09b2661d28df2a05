package usecases_test

import (
	"testing"

	"github.com/geocommerce/geopop/internal/core/domain"
	"github.com/geocommerce/geopop/internal/core/usecases"
)

func TestParseBBox_Valid(t *testing.T) {
	b, err := usecases.ParseBBox("0", "0", "5", "5.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.BBox{LatMin: 0, LonMin: 0, LatMax: 5, LonMax: 5.5}
	if b != want {
		t.Errorf("expected %+v, got %+v", want, b)
	}
}

func TestParseBBox_FullRange(t *testing.T) {
	if _, err := usecases.ParseBBox("-90", "-180", "90", "180"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseBBox_MissingOrNonNumeric(t *testing.T) {
	cases := [][4]string{
		{"", "0", "5", "5"},
		{"0", "", "5", "5"},
		{"0", "0", "", "5"},
		{"0", "0", "5", ""},
		{"abc", "0", "5", "5"},
		{"0", "0", "5", "5deg"},
	}
	for _, tc := range cases {
		_, err := usecases.ParseBBox(tc[0], tc[1], tc[2], tc[3])
		if err == nil {
			t.Errorf("%v: expected error", tc)
			continue
		}
		if domain.KindOf(err) != domain.KindInput {
			t.Errorf("%v: expected input error, got %v", tc, domain.KindOf(err))
		}
		if err.Error() != usecases.MsgCoordinatesRequired {
			t.Errorf("%v: unexpected message %q", tc, err.Error())
		}
	}
}

func TestParseBBox_InvalidRangeOrOrder(t *testing.T) {
	cases := [][4]string{
		{"5", "0", "5", "10"},    // lat_min == lat_max
		{"6", "0", "5", "10"},    // lat_min > lat_max
		{"0", "10", "5", "10"},   // lon_min == lon_max
		{"0", "11", "5", "10"},   // lon_min > lon_max
		{"-91", "0", "5", "10"},  // lat below range
		{"0", "0", "90.5", "10"}, // lat above range
		{"0", "-181", "5", "10"}, // lon below range
		{"0", "0", "5", "180.1"}, // lon above range
		{"NaN", "0", "5", "10"},
	}
	for _, tc := range cases {
		_, err := usecases.ParseBBox(tc[0], tc[1], tc[2], tc[3])
		if err == nil {
			t.Errorf("%v: expected error", tc)
			continue
		}
		if domain.KindOf(err) != domain.KindInput {
			t.Errorf("%v: expected input error, got %v", tc, domain.KindOf(err))
		}
		if err.Error() != usecases.MsgInvalidCoordinates {
			t.Errorf("%v: unexpected message %q", tc, err.Error())
		}
	}
}
