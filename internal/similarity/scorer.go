// Package similarity scores visual similarity between page previews: ORB
// keypoints, ratio-test matching, then homography verification. The score
// is the geometric inlier count, symmetric in its arguments by construction
// of the undirected graph that consumes it.
package similarity

import (
	"gocv.io/x/gocv"
)

const (
	// loweRatio rejects ambiguous matches: nearest neighbor must beat the
	// second nearest by this factor.
	loweRatio = 0.75
	// minGoodMatches below this there is not enough evidence to attempt
	// geometric verification.
	minGoodMatches = 12
	// reprojThreshold is the RANSAC reprojection tolerance in pixels.
	reprojThreshold = 5.0

	ransacMaxIters   = 2000
	ransacConfidence = 0.995
)

// PageFeatures holds the extracted keypoints and descriptors of one page.
// Descriptors own native memory and must be closed.
type PageFeatures struct {
	PageID      int64
	Keypoints   []gocv.KeyPoint
	Descriptors gocv.Mat
}

// Empty reports whether extraction produced no usable descriptors.
func (f *PageFeatures) Empty() bool {
	return f.Descriptors.Empty() || len(f.Keypoints) == 0
}

// Close releases the descriptor matrix.
func (f *PageFeatures) Close() {
	if !f.Descriptors.Empty() {
		f.Descriptors.Close()
	}
}

// Scorer extracts ORB features and scores page pairs.
type Scorer struct {
	orb     gocv.ORB
	matcher gocv.BFMatcher
}

// NewScorer creates a scorer. Close it to release the detector and matcher.
func NewScorer() *Scorer {
	return &Scorer{
		orb:     gocv.NewORB(),
		matcher: gocv.NewBFMatcherWithParams(gocv.NormHamming, false),
	}
}

// Close releases native resources.
func (s *Scorer) Close() {
	s.orb.Close()
	s.matcher.Close()
}

// Extract computes ORB keypoints and descriptors for a grayscale preview.
// A page yielding no descriptors is still a valid result; it scores zero
// against everything.
func (s *Scorer) Extract(pageID int64, gray gocv.Mat) PageFeatures {
	mask := gocv.NewMat()
	defer mask.Close()

	kps, desc := s.orb.DetectAndCompute(gray, mask)
	return PageFeatures{PageID: pageID, Keypoints: kps, Descriptors: desc}
}

// Score returns the verified-inlier count between two pages. Zero means no
// evidence of a shared scene: missing descriptors, too few ratio-test
// survivors, or a failed homography fit all degrade to zero rather than
// erroring.
func (s *Scorer) Score(a, b *PageFeatures) int {
	if a.Empty() || b.Empty() {
		return 0
	}

	knn := s.matcher.KnnMatch(a.Descriptors, b.Descriptors, 2)
	good := ratioFilter(knn, loweRatio)
	if len(good) < minGoodMatches {
		return 0
	}

	srcPts := gocv.NewMatWithSize(len(good), 1, gocv.MatTypeCV64FC2)
	defer srcPts.Close()
	dstPts := gocv.NewMatWithSize(len(good), 1, gocv.MatTypeCV64FC2)
	defer dstPts.Close()
	for i, m := range good {
		kpA := a.Keypoints[m.QueryIdx]
		kpB := b.Keypoints[m.TrainIdx]
		srcPts.SetDoubleAt(i, 0, kpA.X)
		srcPts.SetDoubleAt(i, 1, kpA.Y)
		dstPts.SetDoubleAt(i, 0, kpB.X)
		dstPts.SetDoubleAt(i, 1, kpB.Y)
	}

	mask := gocv.NewMat()
	defer mask.Close()
	h := gocv.FindHomography(srcPts, &dstPts, gocv.HomographyMethodRANSAC,
		reprojThreshold, &mask, ransacMaxIters, ransacConfidence)
	defer h.Close()

	if h.Empty() || mask.Empty() {
		return 0
	}
	return gocv.CountNonZero(mask)
}

// ratioFilter applies Lowe's ratio test to k=2 KNN matches.
func ratioFilter(knn [][]gocv.DMatch, ratio float64) []gocv.DMatch {
	var good []gocv.DMatch
	for _, pair := range knn {
		if len(pair) < 2 {
			continue
		}
		if pair[0].Distance < ratio*pair[1].Distance {
			good = append(good, pair[0])
		}
	}
	return good
}
