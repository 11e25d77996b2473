package config

import "pagetrace/internal/page"

// Default returns a config populated with the tuned defaults. Fields a user
// file leaves unset keep these values.
func Default() *Config {
	return &Config{
		Naming: Naming{
			IDPattern: page.DefaultIDPattern,
		},
		OCR: OCR{
			Enabled: true,
			Slate: Slate{
				Region:         "top",
				PSM:            6,
				Keywords:       []string{"DATE", "CASE ID", "PHOTOGRAPHER", "LOCATION", "FBI"},
				MinKeywords:    3,
				StrongKeywords: []string{"DATE", "CASE ID", "LOCATION"},
			},
			Marker: Marker{
				Whitelist: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
			},
		},
		Similarity: Similarity{
			InlierThreshold: 25,
		},
		Segments: Segments{
			MinRun: 2,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// applyDefaults backfills zero values that yaml decoding may have cleared
// (an empty section overwrites the seeded struct).
func (c *Config) applyDefaults() {
	d := Default()
	if c.Naming.IDPattern == "" {
		c.Naming.IDPattern = d.Naming.IDPattern
	}
	if c.OCR.Slate.Region == "" {
		c.OCR.Slate.Region = d.OCR.Slate.Region
	}
	if c.OCR.Slate.PSM == 0 {
		c.OCR.Slate.PSM = d.OCR.Slate.PSM
	}
	if len(c.OCR.Slate.Keywords) == 0 {
		c.OCR.Slate.Keywords = d.OCR.Slate.Keywords
	}
	if c.OCR.Slate.MinKeywords == 0 {
		c.OCR.Slate.MinKeywords = d.OCR.Slate.MinKeywords
	}
	if c.OCR.Marker.Whitelist == "" {
		c.OCR.Marker.Whitelist = d.OCR.Marker.Whitelist
	}
	if c.Similarity.InlierThreshold == 0 {
		c.Similarity.InlierThreshold = d.Similarity.InlierThreshold
	}
	if c.Segments.MinRun == 0 {
		c.Segments.MinRun = d.Segments.MinRun
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}
