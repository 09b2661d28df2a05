package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestWindowClip(t *testing.T) {
	tests := []struct {
		name string
		in   Window
		want Window
	}{
		{"inside", Window{ColOff: 1, RowOff: 2, Width: 3, Height: 4}, Window{ColOff: 1, RowOff: 2, Width: 3, Height: 4}},
		{"negative offsets", Window{ColOff: -2, RowOff: -1, Width: 5, Height: 3}, Window{ColOff: 0, RowOff: 0, Width: 3, Height: 2}},
		{"past far edge", Window{ColOff: 8, RowOff: 7, Width: 5, Height: 5}, Window{ColOff: 8, RowOff: 7, Width: 2, Height: 3}},
		{"covers grid", Window{ColOff: -5, RowOff: -5, Width: 20, Height: 20}, Window{ColOff: 0, RowOff: 0, Width: 10, Height: 10}},
		{"disjoint", Window{ColOff: 20, RowOff: -20, Width: 10, Height: 10}, Window{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clip(10, 10); got != tt.want {
				t.Errorf("Clip() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWindowCells(t *testing.T) {
	if n := (Window{Width: 3, Height: 4}).Cells(); n != 12 {
		t.Errorf("expected 12, got %d", n)
	}
	if n := (Window{Width: -3, Height: 4}).Cells(); n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}

func TestBBoxBoundsRoundTrip(t *testing.T) {
	b := BBox{LatMin: -10, LonMin: 20, LatMax: 30, LonMax: 40}
	if got := BBoxFromBounds(b.Bounds()); got != b {
		t.Errorf("round trip = %+v, want %+v", got, b)
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(InputError("bad")); k != KindInput {
		t.Errorf("expected input, got %v", k)
	}
	if k := KindOf(fmt.Errorf("wrapped: %w", ConfigurationError("crs"))); k != KindConfiguration {
		t.Errorf("expected configuration through wrapping, got %v", k)
	}
	if k := KindOf(errors.New("disk on fire")); k != KindProcessing {
		t.Errorf("expected processing for untagged error, got %v", k)
	}
}

func TestProcessingError(t *testing.T) {
	cause := errors.New("read failed")
	err := ProcessingError(cause)
	if err.Error() != "read failed" {
		t.Errorf("expected underlying message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
	if ProcessingError(nil) != nil {
		t.Error("expected nil for nil cause")
	}
	in := InputError("bad")
	if KindOf(ProcessingError(in)) != KindInput {
		t.Error("tagged errors keep their kind")
	}
}
