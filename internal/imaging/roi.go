// Package imaging provides page-bitmap helpers: named region crops, preview
// loading and the per-page image features (perceptual hash, brightness,
// blur).
package imaging

import (
	"image"

	"gocv.io/x/gocv"
)

// Region names a fixed relative crop of a page bitmap.
type Region string

const (
	RegionFull        Region = "full"
	RegionTop         Region = "top"
	RegionSlate       Region = "slate"
	RegionCenter      Region = "center"
	RegionTopBand     Region = "top_band"
	RegionBottomBand  Region = "bottom_band"
	RegionLeftBand    Region = "left_band"
	RegionRightBand   Region = "right_band"
	RegionCenterSmall Region = "center_small"
)

// MarkerRegions is the ordered scan list for room-marker detection.
// Scattered marker sheets place the letter anywhere, so side bands come
// first and the full frame is the last resort.
func MarkerRegions() []Region {
	return []Region{
		RegionLeftBand,
		RegionRightBand,
		RegionTopBand,
		RegionBottomBand,
		RegionCenterSmall,
		RegionFull,
	}
}

// Crop returns the sub-image for a named region. The result is a view into
// img and must be closed before img. An unrecognized region falls back to
// the full frame.
func Crop(img gocv.Mat, region Region) gocv.Mat {
	r := regionRect(region, img.Cols(), img.Rows())
	return img.Region(r)
}

// regionRect maps a region tag to pixel bounds for a w x h bitmap.
func regionRect(region Region, w, h int) image.Rectangle {
	fh := float64(h)
	fw := float64(w)
	switch region {
	case RegionTop:
		return image.Rect(0, 0, w, int(fh*0.55))
	case RegionSlate:
		return image.Rect(0, 0, w, int(fh*0.80))
	case RegionCenter:
		return image.Rect(int(fw*0.10), int(fh*0.15), int(fw*0.90), int(fh*0.75))
	case RegionTopBand:
		return image.Rect(0, 0, w, int(fh*0.45))
	case RegionBottomBand:
		return image.Rect(0, int(fh*0.45), w, h)
	case RegionLeftBand:
		return image.Rect(0, int(fh*0.05), int(fw*0.55), int(fh*0.90))
	case RegionRightBand:
		return image.Rect(int(fw*0.45), int(fh*0.05), w, int(fh*0.90))
	case RegionCenterSmall:
		return image.Rect(int(fw*0.25), int(fh*0.20), int(fw*0.75), int(fh*0.70))
	default:
		return image.Rect(0, 0, w, h)
	}
}
