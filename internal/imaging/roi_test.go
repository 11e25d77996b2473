package imaging

import (
	"image"
	"testing"
)

func TestRegionRects(t *testing.T) {
	const w, h = 1000, 2000

	tests := []struct {
		region Region
		want   image.Rectangle
	}{
		{RegionFull, image.Rect(0, 0, 1000, 2000)},
		{RegionTop, image.Rect(0, 0, 1000, 1100)},
		{RegionSlate, image.Rect(0, 0, 1000, 1600)},
		{RegionCenter, image.Rect(100, 300, 900, 1500)},
		{RegionTopBand, image.Rect(0, 0, 1000, 900)},
		{RegionBottomBand, image.Rect(0, 900, 1000, 2000)},
		{RegionLeftBand, image.Rect(0, 100, 550, 1800)},
		{RegionRightBand, image.Rect(450, 100, 1000, 1800)},
		{RegionCenterSmall, image.Rect(250, 400, 750, 1400)},
		{Region("bogus"), image.Rect(0, 0, 1000, 2000)},
	}

	for _, tt := range tests {
		t.Run(string(tt.region), func(t *testing.T) {
			got := regionRect(tt.region, w, h)
			if got != tt.want {
				t.Errorf("regionRect(%s) = %v, want %v", tt.region, got, tt.want)
			}
		})
	}
}

func TestRegionRectsStayInBounds(t *testing.T) {
	full := image.Rect(0, 0, 640, 480)
	for _, r := range append(MarkerRegions(), RegionTop, RegionSlate, RegionCenter) {
		got := regionRect(r, 640, 480)
		if !got.In(full) {
			t.Errorf("region %s out of bounds: %v", r, got)
		}
		if got.Empty() {
			t.Errorf("region %s empty", r)
		}
	}
}

func TestMarkerRegionsOrder(t *testing.T) {
	regions := MarkerRegions()
	if len(regions) != 6 {
		t.Fatalf("len = %d", len(regions))
	}
	if regions[0] != RegionLeftBand || regions[len(regions)-1] != RegionFull {
		t.Errorf("scan order changed: %v", regions)
	}
}
