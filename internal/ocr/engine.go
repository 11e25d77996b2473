// Package ocr turns page bitmaps into structured observations: slate
// (cover sheet) detection and room-marker recognition.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"pagetrace/internal/imaging"
)

// Engine wraps a Tesseract client for region-based recognition.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}

	// Disable dictionary-based correction: slate captions and marker
	// letters are not English words.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("language_model_penalty_non_dict_word", "0")
	_ = client.SetVariable("language_model_penalty_non_freq_dict_word", "0")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Recognize runs OCR over one named region of a page bitmap with the given
// page-segmentation mode and optional character whitelist.
func (e *Engine) Recognize(img gocv.Mat, region imaging.Region, psm gosseract.PageSegMode, whitelist string) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("empty image")
	}

	crop := imaging.Crop(img, region)
	defer crop.Close()

	processed := preprocess(crop)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("encode region: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetPageSegMode(psm); err != nil {
		return "", fmt.Errorf("set PSM: %w", err)
	}
	if err := e.client.SetWhitelist(whitelist); err != nil && whitelist != "" {
		return "", fmt.Errorf("set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// preprocess binarizes a crop for recognition: grayscale then Otsu
// threshold, the cleanest separation for flatbed-scanned pages.
func preprocess(region gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(region, &gray, gocv.ColorBGRToGray)

	binary := gocv.NewMat()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	gray.Close()

	return binary
}
