package store

import (
	"context"
	"database/sql"
	"fmt"
)

// AssignmentGroup is one (location, shoot) group with its page count.
type AssignmentGroup struct {
	Location string
	Shoot    *int
	Files    int
}

// MarkerCount is one marker with its occurrence count.
type MarkerCount struct {
	Marker string
	Count  int
}

// AssignmentSummary groups pages by (location, shoot).
func (s *Store) AssignmentSummary(ctx context.Context) ([]AssignmentGroup, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `
        SELECT location_label, shoot_index, COUNT(*)
        FROM assignments
        GROUP BY location_label, shoot_index
        ORDER BY location_label, shoot_index`)
	if err != nil {
		return nil, fmt.Errorf("query assignment summary: %w", err)
	}
	defer rows.Close()

	var groups []AssignmentGroup
	for rows.Next() {
		var (
			g        AssignmentGroup
			location sql.NullString
			shoot    sql.NullInt64
		)
		if err := rows.Scan(&location, &shoot, &g.Files); err != nil {
			return nil, fmt.Errorf("scan assignment group: %w", err)
		}
		g.Location = location.String
		if shoot.Valid {
			v := int(shoot.Int64)
			g.Shoot = &v
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// TopMarkers returns the most frequent detected markers.
func (s *Store) TopMarkers(ctx context.Context, limit int) ([]MarkerCount, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `
        SELECT marker_text, COUNT(*) AS n
        FROM room_markers
        WHERE has_marker
        GROUP BY marker_text
        ORDER BY n DESC, marker_text
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top markers: %w", err)
	}
	defer rows.Close()

	var counts []MarkerCount
	for rows.Next() {
		var mc MarkerCount
		if err := rows.Scan(&mc.Marker, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan marker count: %w", err)
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}

// SlateCount returns the number of detected slate pages.
func (s *Store) SlateCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT COUNT(*) FROM slates WHERE is_slate").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count slates: %w", err)
	}
	return n, nil
}

// NoMarkerCount returns the number of pages with no marker observation.
func (s *Store) NoMarkerCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT COUNT(*) FROM room_markers WHERE NOT has_marker").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unmarked: %w", err)
	}
	return n, nil
}
