package segment

// Build folds the ordered page stream into segments. Pages must be sorted by
// ascending PageID; the fold is single-pass and order-dependent, so it must
// not be parallelized.
//
// Transition rules, per page:
//  1. location/shoot differing from the previous page closes any open
//     segment (location_change / shoot_change) before the page is evaluated
//     against the new context;
//  2. a slate page closes any open segment (slate) and joins no segment;
//  3. a valid marker opens a segment, extends a matching one, or closes a
//     differing one (marker_change) and opens its replacement;
//  4. a page without a valid marker extends the open segment if there is
//     one, otherwise opens an UNMARKED placeholder only when requested.
//
// The post-pass assigns confidence from file counts, then drops segments
// shorter than MinRun and UNMARKED segments unless kept.
func Build(pages []PageObs, opts Options) []Segment {
	var (
		segments []Segment
		cur      *Segment
		nextID   int64
	)

	close := func(reason ResetReason) {
		if cur == nil {
			return
		}
		cur.Reason = reason
		segments = append(segments, *cur)
		cur = nil
	}

	open := func(p PageObs, marker string) {
		nextID++
		cur = &Segment{
			ID:          nextID,
			Location:    p.Location,
			Shoot:       p.Shoot,
			Marker:      marker,
			StartPageID: p.PageID,
			EndPageID:   p.PageID,
			StartFileID: p.FileID,
			EndFileID:   p.FileID,
			FileCount:   1,
		}
	}

	extend := func(p PageObs) {
		cur.EndPageID = p.PageID
		cur.EndFileID = p.FileID
		cur.FileCount++
	}

	var (
		prevLoc   string
		prevShoot *int
		first     = true
	)

	for i := range pages {
		p := pages[i]
		if p.Location == "" {
			p.Location = UnknownLocation
		}

		if first {
			prevLoc, prevShoot = p.Location, p.Shoot
			first = false
		} else if p.Location != prevLoc {
			close(ResetLocationChange)
			prevLoc, prevShoot = p.Location, p.Shoot
		} else if !shootEqual(p.Shoot, prevShoot) {
			close(ResetShootChange)
			prevLoc, prevShoot = p.Location, p.Shoot
		}

		if p.IsSlate {
			close(ResetSlate)
			continue
		}

		marker := ""
		if p.HasMarker && ValidMarker(p.Marker) {
			marker = p.Marker
		}

		switch {
		case marker != "" && cur == nil:
			open(p, marker)
		case marker != "" && marker != cur.Marker:
			close(ResetMarkerChange)
			open(p, marker)
		case marker != "":
			extend(p)
		case cur != nil:
			// No signal: the page inherits the open segment.
			extend(p)
		case opts.KeepUnmarked:
			open(p, UnmarkedLabel)
		}
	}
	close(ResetEOF)

	kept := segments[:0]
	for i := range segments {
		s := segments[i]
		s.Confidence = ConfidenceFor(s.FileCount)
		if s.Marker == UnmarkedLabel && !opts.KeepUnmarked {
			continue
		}
		if s.FileCount < opts.MinRun {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func shootEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
