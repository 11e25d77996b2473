package ocr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"pagetrace/internal/imaging"
	"pagetrace/internal/segment"
)

// MarkerConfig tunes room-marker detection.
type MarkerConfig struct {
	Whitelist string
	Regions   []imaging.Region // scan order; nil = imaging.MarkerRegions()
}

// MarkerObservation is the stored marker signal for one page. OCRText keeps
// the provenance of the winning read (region and PSM) for auditability.
type MarkerObservation struct {
	HasMarker bool
	Marker    string
	OCRText   string
}

// markerPasses are the per-region OCR configurations, tried in order.
// Single-character mode reads isolated letters best and outscores the
// single-word fallback.
var markerPasses = []struct {
	psm   gosseract.PageSegMode
	score int
}{
	{gosseract.PSM_SINGLE_CHAR, 10},
	{gosseract.PSM_SINGLE_WORD, 8},
}

var letterPairs = regexp.MustCompile(`[A-Z]{1,2}`)

// DetectMarker scans the marker regions at both OCR configurations and
// keeps the highest-scoring valid candidate. Ties keep the first candidate
// found. A page with no valid candidate in any pass has no marker.
func (e *Engine) DetectMarker(img gocv.Mat, cfg MarkerConfig) (MarkerObservation, error) {
	regions := cfg.Regions
	if regions == nil {
		regions = imaging.MarkerRegions()
	}

	type candidate struct {
		score  int
		marker string
		text   string
		region imaging.Region
		psm    gosseract.PageSegMode
	}
	var best *candidate

	for _, region := range regions {
		for _, pass := range markerPasses {
			text, err := e.Recognize(img, region, pass.psm, cfg.Whitelist)
			if err != nil {
				continue
			}
			marker := bestCandidate(text)
			if marker == "" {
				continue
			}
			score := candidateScore(marker, text, pass.score)
			if best == nil || score > best.score {
				best = &candidate{score: score, marker: marker, text: text, region: region, psm: pass.psm}
			}
		}
	}

	if best == nil {
		return MarkerObservation{}, nil
	}
	return MarkerObservation{
		HasMarker: true,
		Marker:    best.marker,
		OCRText:   fmt.Sprintf("[roi=%s psm=%d] %s", best.region, best.psm, best.text),
	}, nil
}

// bestCandidate extracts a valid marker from raw OCR text: the letters-only
// cleaning of the whole text if valid, otherwise the first valid 1-2 letter
// substring.
func bestCandidate(text string) string {
	cleaned := cleanLetters(text)
	if segment.ValidMarker(cleaned) {
		return cleaned
	}
	for _, tok := range letterPairs.FindAllString(strings.ToUpper(text), -1) {
		if segment.ValidMarker(tok) {
			return tok
		}
	}
	return ""
}

// candidateScore ranks a candidate: the pass base score, a preference for
// doubled letters (a distinct room code, never noise), and a bonus for
// low-noise reads.
func candidateScore(marker, text string, base int) int {
	score := base
	if len(marker) == 2 {
		score += 2
	} else {
		score++
	}
	if noise := 5 - len(cleanLetters(text)); noise > 0 {
		score += noise
	}
	return score
}

// cleanLetters uppercases and strips everything but A-Z.
func cleanLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
