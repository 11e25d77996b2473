package ocr

import (
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"pagetrace/internal/imaging"
)

// SlateConfig tunes slate detection.
type SlateConfig struct {
	Region         imaging.Region
	PSM            int
	Keywords       []string
	MinKeywords    int
	StrongKeywords []string
}

// SlateObservation is the stored slate signal for one page.
type SlateObservation struct {
	IsSlate  bool
	Keywords []string // matched keywords
	OCRText  string
}

// DetectSlate reads the slate region and matches caption keywords. A page is
// a slate when enough keywords match, or when every strong keyword matches
// individually. Matching tolerates OCR noise by also comparing against a
// compacted alphanumeric form ("CASE ID" still matches as "CASEID").
func (e *Engine) DetectSlate(img gocv.Mat, cfg SlateConfig) (SlateObservation, error) {
	text, err := e.Recognize(img, cfg.Region, gosseract.PageSegMode(cfg.PSM), "")
	if err != nil {
		return SlateObservation{}, err
	}

	found := matchKeywords(text, cfg.Keywords)
	isSlate := len(found) >= cfg.MinKeywords || allKeywordsMatch(text, cfg.StrongKeywords)

	return SlateObservation{
		IsSlate:  isSlate,
		Keywords: found,
		OCRText:  text,
	}, nil
}

// matchKeywords returns the keywords present in text, checking both the
// uppercased raw text and its compacted form.
func matchKeywords(text string, keywords []string) []string {
	up := strings.ToUpper(text)
	cmp := compact(up)

	var found []string
	for _, kw := range keywords {
		if keywordIn(up, cmp, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// allKeywordsMatch reports whether every keyword matches individually.
// An empty keyword list never matches.
func allKeywordsMatch(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	up := strings.ToUpper(text)
	cmp := compact(up)
	for _, kw := range keywords {
		if !keywordIn(up, cmp, kw) {
			return false
		}
	}
	return true
}

func keywordIn(up, cmp, keyword string) bool {
	kwUp := strings.ToUpper(keyword)
	if strings.Contains(up, kwUp) {
		return true
	}
	kwCmp := compact(kwUp)
	return kwCmp != "" && strings.Contains(cmp, kwCmp)
}

// compact strips everything but A-Z and 0-9 from an uppercased string.
func compact(up string) string {
	var b strings.Builder
	b.Grow(len(up))
	for i := 0; i < len(up); i++ {
		c := up[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
