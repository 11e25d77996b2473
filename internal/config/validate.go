package config

import (
	"errors"
	"fmt"

	"pagetrace/internal/page"
)

// Validate checks the config for values the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.InputDir == "" {
		errs = append(errs, errors.New("paths.input_dir is required"))
	}
	if c.Paths.PreviewsDir == "" {
		errs = append(errs, errors.New("paths.previews_dir is required"))
	}
	if c.Paths.DBPath == "" {
		errs = append(errs, errors.New("paths.db_path is required"))
	}
	if _, err := page.NewParser(c.Naming.IDPattern); err != nil {
		errs = append(errs, fmt.Errorf("naming.id_pattern: %w", err))
	}
	if c.OCR.Slate.MinKeywords < 1 {
		errs = append(errs, errors.New("ocr.slate.min_keywords must be >= 1"))
	}
	if c.Similarity.InlierThreshold < 1 {
		errs = append(errs, errors.New("similarity.inlier_threshold must be >= 1"))
	}
	if c.Similarity.MaxPairs < 0 {
		errs = append(errs, errors.New("similarity.max_pairs must be >= 0"))
	}
	if c.Segments.MinRun < 1 {
		errs = append(errs, errors.New("segments.min_run must be >= 1"))
	}

	for i, seed := range c.Seeds {
		if seed.Location == "" {
			errs = append(errs, fmt.Errorf("seed_assignments[%d]: location is required", i))
		}
		for j, sh := range seed.Shoots {
			if sh.StartID > sh.EndID {
				errs = append(errs, fmt.Errorf("seed_assignments[%d].shoots[%d]: start_id %d > end_id %d",
					i, j, sh.StartID, sh.EndID))
			}
			if sh.Confidence < 0 || sh.Confidence > 1 {
				errs = append(errs, fmt.Errorf("seed_assignments[%d].shoots[%d]: confidence must be in [0,1]", i, j))
			}
		}
	}

	return errors.Join(errs...)
}
