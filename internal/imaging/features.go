package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/corona10/goimagehash"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	_ "golang.org/x/image/tiff"
)

// Features are the content-derived attributes stored per page image.
type Features struct {
	Width     int
	Height    int
	PHash     string
	MeanLuma  float64
	BlurScore float64 // variance of the Laplacian edge response
}

// previewExts lists accepted preview file extensions in lookup order.
var previewExts = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}

// FindPreview locates the rendered preview for a page, trying the source
// filename stem first and the canonical file id second.
func FindPreview(dir, stem, fileID string) (string, error) {
	for _, base := range []string{stem, fileID} {
		if base == "" {
			continue
		}
		for _, ext := range previewExts {
			path := filepath.Join(dir, base+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("no preview for %s in %s", fileID, dir)
}

// LoadPreview decodes a preview bitmap into a BGR Mat. Formats OpenCV does
// not read directly fall back to the Go image decoders.
func LoadPreview(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if !img.Empty() {
		return img, nil
	}
	img.Close()

	f, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("open preview: %w", err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("decode preview %s: %w", path, err)
	}
	mat, err := gocv.ImageToMatRGB(decoded)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert preview %s: %w", path, err)
	}
	return mat, nil
}

// Compute derives the stored image features from a BGR page bitmap.
func Compute(img gocv.Mat) (Features, error) {
	if img.Empty() {
		return Features{}, fmt.Errorf("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	mean := gray.Mean().Val1

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)
	vals, err := lap.DataPtrFloat64()
	if err != nil {
		return Features{}, fmt.Errorf("laplacian data: %w", err)
	}
	blur := stat.PopVariance(vals, nil)

	goImg, err := img.ToImage()
	if err != nil {
		return Features{}, fmt.Errorf("mat to image: %w", err)
	}
	hash, err := goimagehash.PerceptionHash(goImg)
	if err != nil {
		return Features{}, fmt.Errorf("perceptual hash: %w", err)
	}

	return Features{
		Width:     img.Cols(),
		Height:    img.Rows(),
		PHash:     hash.ToString(),
		MeanLuma:  mean,
		BlurScore: blur,
	}, nil
}
