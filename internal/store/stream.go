package store

import (
	"context"
	"database/sql"
	"fmt"
)

// OrderedStream returns every page joined with its assignment and
// observations, sorted by ascending page id. This is the input to the
// segmentation fold and the ordering is part of its contract.
func (s *Store) OrderedStream(ctx context.Context) ([]StreamRow, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `
        SELECT
            p.page_id,
            p.file_id,
            a.location_label,
            a.shoot_index,
            COALESCE(sl.is_slate, 0),
            COALESCE(rm.has_marker, 0),
            rm.marker_text
        FROM pages p
        LEFT JOIN assignments a USING (file_id)
        LEFT JOIN slates sl USING (file_id)
        LEFT JOIN room_markers rm USING (file_id)
        ORDER BY p.page_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query ordered stream: %w", err)
	}
	defer rows.Close()

	var stream []StreamRow
	for rows.Next() {
		var (
			r        StreamRow
			location sql.NullString
			shoot    sql.NullInt64
			marker   sql.NullString
		)
		if err := rows.Scan(&r.PageID, &r.FileID, &location, &shoot, &r.IsSlate, &r.HasMarker, &marker); err != nil {
			return nil, fmt.Errorf("scan stream row: %w", err)
		}
		r.Location = location.String
		if shoot.Valid {
			v := int(shoot.Int64)
			r.Shoot = &v
		}
		r.Marker = marker.String
		stream = append(stream, r)
	}
	return stream, rows.Err()
}
