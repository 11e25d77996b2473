package store

import (
	"context"
	"fmt"
)

// SavePage upserts all per-page rows for one page in a single transaction.
// Each table gets a delete-then-insert keyed by file id, so rewriting a
// page with identical inputs leaves identical rows.
func (s *Store) SavePage(ctx context.Context, b PageBundle) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin page tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		fileID := b.Page.FileID

		steps := []struct {
			del  string
			ins  string
			args []any
		}{
			{
				del: "DELETE FROM pages WHERE file_id = ?",
				ins: "INSERT INTO pages (file_id, path, page_id, bytes, sha256, page_count) VALUES (?, ?, ?, ?, ?, ?)",
				args: []any{
					fileID, b.Page.Path, b.Page.PageID, b.Page.Bytes, b.Page.SHA256, b.Page.PageCount,
				},
			},
			{
				del: "DELETE FROM images WHERE file_id = ?",
				ins: "INSERT INTO images (file_id, preview_path, width, height, phash, mean_luma, blur_score) VALUES (?, ?, ?, ?, ?, ?, ?)",
				args: []any{
					fileID, nullableString(b.Image.PreviewPath), b.Image.Width, b.Image.Height,
					nullableString(b.Image.PHash), b.Image.MeanLuma, b.Image.BlurScore,
				},
			},
			{
				del: "DELETE FROM assignments WHERE file_id = ?",
				ins: "INSERT INTO assignments (file_id, location_label, shoot_index, method, confidence) VALUES (?, ?, ?, ?, ?)",
				args: []any{
					fileID, nullableString(b.Assignment.Location), nullableInt(b.Assignment.Shoot),
					b.Assignment.Method, b.Assignment.Confidence,
				},
			},
			{
				del: "DELETE FROM slates WHERE file_id = ?",
				ins: "INSERT INTO slates (file_id, is_slate, keywords_found, ocr_text) VALUES (?, ?, ?, ?)",
				args: []any{
					fileID, b.Slate.IsSlate, nullableString(b.Slate.Keywords), nullableString(b.Slate.OCRText),
				},
			},
			{
				del: "DELETE FROM room_markers WHERE file_id = ?",
				ins: "INSERT INTO room_markers (file_id, has_marker, marker_text, ocr_text) VALUES (?, ?, ?, ?)",
				args: []any{
					fileID, b.Marker.HasMarker, nullableString(b.Marker.Marker), nullableString(b.Marker.OCRText),
				},
			},
		}

		for _, step := range steps {
			if _, err := tx.ExecContext(ctx, step.del, fileID); err != nil {
				return fmt.Errorf("delete for %s: %w", fileID, err)
			}
			if _, err := tx.ExecContext(ctx, step.ins, step.args...); err != nil {
				return fmt.Errorf("insert for %s: %w", fileID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit page %s: %w", fileID, err)
		}
		return nil
	})
}

// PageCount returns the number of stored pages.
func (s *Store) PageCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(*) FROM pages").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

// Previews returns (page_id, preview_path) for every page with a stored
// preview, ordered by page id. The rooms command loads these for feature
// extraction.
func (s *Store) Previews(ctx context.Context) (map[int64]string, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `
        SELECT p.page_id, i.preview_path
        FROM pages p
        JOIN images i USING (file_id)
        WHERE i.preview_path IS NOT NULL
        ORDER BY p.page_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query previews: %w", err)
	}
	defer rows.Close()

	previews := make(map[int64]string)
	for rows.Next() {
		var id int64
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, fmt.Errorf("scan preview: %w", err)
		}
		previews[id] = path
	}
	return previews, rows.Err()
}
