// Package ingest walks the source directory and builds the per-page
// relations: identity, file metadata, preview features, OCR observations
// and seeded assignments. Each page is processed independently; one bad
// page never aborts the run.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"pagetrace/internal/assign"
	"pagetrace/internal/config"
	"pagetrace/internal/imaging"
	"pagetrace/internal/ocr"
	"pagetrace/internal/page"
	"pagetrace/internal/pdfinfo"
	"pagetrace/internal/store"
)

// Options narrow an ingest run to a page-ID window.
type Options struct {
	StartID int64 // 0 = no lower bound
	EndID   int64 // 0 = no upper bound
	Limit   int   // 0 = no cap
}

// Pipeline runs the ingest stage.
type Pipeline struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
	parser *page.Parser
}

// New builds an ingest pipeline from a validated config.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Pipeline, error) {
	parser, err := page.NewParser(cfg.Naming.IDPattern)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		store:  st,
		logger: logger,
		parser: parser,
	}, nil
}

// Run ingests every matching source file and records a run summary.
func (p *Pipeline) Run(ctx context.Context, opts Options) (store.RunRecord, error) {
	run := store.RunRecord{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := p.logger.With("run_id", run.RunID)

	identities, unmatched, err := p.collect(opts)
	if err != nil {
		return run, err
	}
	run.Unmatched = unmatched
	log.Info("ingest started", "files", len(identities), "unmatched", unmatched)

	var engine *ocr.Engine
	if p.cfg.OCR.Enabled {
		engine, err = ocr.NewEngine()
		if err != nil {
			return run, fmt.Errorf("start OCR engine: %w", err)
		}
		defer engine.Close()
	}

	for _, id := range identities {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		outcome, err := p.processPage(ctx, engine, id)
		if err != nil {
			run.Failed++
			log.Error("page failed", "file_id", id.FileID, "error", err)
			continue
		}
		run.Files++
		if outcome.noFeatures {
			run.NoFeatures++
		}
		if outcome.isSlate {
			run.Slates++
		}
		if !outcome.hasMarker {
			run.NoMarker++
		}
	}

	run.FinishedAt = time.Now().UTC()
	if err := p.store.SaveRun(ctx, run); err != nil {
		return run, fmt.Errorf("record run: %w", err)
	}
	log.Info("ingest finished",
		"files", run.Files, "failed", run.Failed,
		"slates", run.Slates, "no_marker", run.NoMarker, "no_features", run.NoFeatures,
		"elapsed", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	return run, nil
}

// collect lists the source PDFs in ascending page-ID order. Filenames with
// malformed identities are counted and logged, never silently dropped.
func (p *Pipeline) collect(opts Options) ([]page.Identity, int, error) {
	entries, err := os.ReadDir(p.cfg.Paths.InputDir)
	if err != nil {
		return nil, 0, fmt.Errorf("read input dir: %w", err)
	}

	var (
		identities []page.Identity
		unmatched  int
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(p.cfg.Paths.InputDir, entry.Name())
		id, err := p.parser.Parse(path)
		if err != nil {
			unmatched++
			p.logger.Warn("malformed identity", "file", entry.Name(), "error", err)
			continue
		}
		if opts.StartID > 0 && id.ID < opts.StartID {
			continue
		}
		if opts.EndID > 0 && id.ID > opts.EndID {
			continue
		}
		identities = append(identities, id)
	}

	sort.Slice(identities, func(i, j int) bool { return identities[i].ID < identities[j].ID })
	if opts.Limit > 0 && len(identities) > opts.Limit {
		identities = identities[:opts.Limit]
	}
	return identities, unmatched, nil
}

type pageOutcome struct {
	noFeatures bool
	isSlate    bool
	hasMarker  bool
}

// processPage extracts everything for one page and writes it atomically.
// A missing or unreadable preview downgrades the page (no features, no
// observations) but still ingests its metadata.
func (p *Pipeline) processPage(ctx context.Context, engine *ocr.Engine, id page.Identity) (pageOutcome, error) {
	var outcome pageOutcome

	info, err := pdfinfo.Extract(id.Path)
	if err != nil {
		return outcome, err
	}

	bundle := store.PageBundle{
		Page: store.PageRecord{
			FileID:    id.FileID,
			Path:      id.Path,
			PageID:    id.ID,
			Bytes:     info.Bytes,
			SHA256:    info.SHA256,
			PageCount: info.PageCount,
		},
		Image:  store.ImageRecord{FileID: id.FileID},
		Slate:  store.SlateRecord{FileID: id.FileID},
		Marker: store.MarkerRecord{FileID: id.FileID},
	}

	a := assign.FromSeeds(id.ID, p.cfg.Seeds)
	bundle.Assignment = store.AssignmentRecord{
		FileID:     id.FileID,
		Location:   a.Location,
		Shoot:      a.Shoot,
		Method:     a.Method,
		Confidence: a.Confidence,
	}

	img, previewPath, err := p.loadPreview(id)
	if err != nil {
		outcome.noFeatures = true
		p.logger.Warn("no preview", "file_id", id.FileID, "error", err)
	} else {
		defer img.Close()
		bundle.Image.PreviewPath = previewPath

		feats, err := imaging.Compute(img)
		if err != nil {
			outcome.noFeatures = true
			p.logger.Warn("feature extraction failed", "file_id", id.FileID, "error", err)
		} else {
			bundle.Image.Width = feats.Width
			bundle.Image.Height = feats.Height
			bundle.Image.PHash = feats.PHash
			bundle.Image.MeanLuma = feats.MeanLuma
			bundle.Image.BlurScore = feats.BlurScore
		}

		if engine != nil {
			p.observe(engine, img, id.FileID, &bundle)
		}
	}

	outcome.isSlate = bundle.Slate.IsSlate
	outcome.hasMarker = bundle.Marker.HasMarker

	if err := p.store.SavePage(ctx, bundle); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (p *Pipeline) loadPreview(id page.Identity) (gocv.Mat, string, error) {
	stem := strings.TrimSuffix(filepath.Base(id.Path), filepath.Ext(id.Path))
	path, err := imaging.FindPreview(p.cfg.Paths.PreviewsDir, stem, id.FileID)
	if err != nil {
		return gocv.Mat{}, "", err
	}
	img, err := imaging.LoadPreview(path)
	if err != nil {
		return gocv.Mat{}, "", err
	}
	return img, path, nil
}

// observe runs slate and marker detection on a page bitmap. OCR failures
// leave the page unobserved rather than failing it.
func (p *Pipeline) observe(engine *ocr.Engine, img gocv.Mat, fileID string, bundle *store.PageBundle) {
	slateCfg := ocr.SlateConfig{
		Region:         imaging.Region(p.cfg.OCR.Slate.Region),
		PSM:            p.cfg.OCR.Slate.PSM,
		Keywords:       p.cfg.OCR.Slate.Keywords,
		MinKeywords:    p.cfg.OCR.Slate.MinKeywords,
		StrongKeywords: p.cfg.OCR.Slate.StrongKeywords,
	}
	slate, err := engine.DetectSlate(img, slateCfg)
	if err != nil {
		p.logger.Warn("slate detection failed", "file_id", fileID, "error", err)
	} else {
		bundle.Slate.IsSlate = slate.IsSlate
		bundle.Slate.Keywords = strings.Join(slate.Keywords, ",")
		bundle.Slate.OCRText = slate.OCRText
	}

	if bundle.Slate.IsSlate {
		// Slates never carry room markers; skip the marker scan.
		return
	}

	marker, err := engine.DetectMarker(img, ocr.MarkerConfig{Whitelist: p.cfg.OCR.Marker.Whitelist})
	if err != nil {
		p.logger.Warn("marker detection failed", "file_id", fileID, "error", err)
		return
	}
	bundle.Marker.HasMarker = marker.HasMarker
	bundle.Marker.Marker = marker.Marker
	bundle.Marker.OCRText = marker.OCRText
}
