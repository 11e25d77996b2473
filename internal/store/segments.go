package store

import (
	"context"
	"database/sql"
	"fmt"

	"pagetrace/internal/segment"
)

// ReplaceSegments drops the whole segment relation and writes the new set.
// Segments are always recomputed in full, never patched incrementally.
func (s *Store) ReplaceSegments(ctx context.Context, segments []segment.Segment) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin segments tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM room_segments"); err != nil {
			return fmt.Errorf("clear segments: %w", err)
		}

		for _, seg := range segments {
			_, err := tx.ExecContext(ctx, `
                INSERT INTO room_segments (
                    segment_id, location_label, shoot_index, marker_text,
                    start_page_id, end_page_id, start_file_id, end_file_id,
                    n_files, confidence, reset_reason
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				seg.ID, nullableString(seg.Location), nullableInt(seg.Shoot), seg.Marker,
				seg.StartPageID, seg.EndPageID, seg.StartFileID, seg.EndFileID,
				seg.FileCount, seg.Confidence, string(seg.Reason),
			)
			if err != nil {
				return fmt.Errorf("insert segment %d: %w", seg.ID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit segments: %w", err)
		}
		return nil
	})
}

// Segments returns the stored segment relation ordered by segment id.
func (s *Store) Segments(ctx context.Context) ([]segment.Segment, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `
        SELECT segment_id, location_label, shoot_index, marker_text,
               start_page_id, end_page_id, start_file_id, end_file_id,
               n_files, confidence, reset_reason
        FROM room_segments
        ORDER BY segment_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var segments []segment.Segment
	for rows.Next() {
		var (
			seg      segment.Segment
			location sql.NullString
			shoot    sql.NullInt64
			reason   string
		)
		if err := rows.Scan(&seg.ID, &location, &shoot, &seg.Marker,
			&seg.StartPageID, &seg.EndPageID, &seg.StartFileID, &seg.EndFileID,
			&seg.FileCount, &seg.Confidence, &reason); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		seg.Location = location.String
		if shoot.Valid {
			v := int(shoot.Int64)
			seg.Shoot = &v
		}
		seg.Reason = segment.ResetReason(reason)
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}
