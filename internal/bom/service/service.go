// Package service orchestrates one comparison session: detect, extract,
// map, normalize, then compare each target against the master.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/partsync/bomcompare/internal/bom"
	"github.com/partsync/bomcompare/internal/bom/columns"
	"github.com/partsync/bomcompare/internal/bom/compare"
	"github.com/partsync/bomcompare/internal/bom/detect"
	"github.com/partsync/bomcompare/internal/bom/extract"
	"github.com/partsync/bomcompare/internal/bom/normalize"
	"github.com/partsync/bomcompare/pkg/config"
	"github.com/partsync/bomcompare/pkg/metrics"
)

// Input is one uploaded document: raw bytes plus an optional declared
// format. When Format is empty the detector decides.
type Input struct {
	Filename string
	Data     []byte
	Format   bom.Format
}

// Service runs comparison sessions. It holds no mutable state; one
// instance is safe for concurrent use.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a comparison service.
func New(cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// Run compares the master input against every target and returns the
// assembled session. All-or-nothing: any document-level failure aborts
// the whole session with the offending document identified; partial
// per-target results are never surfaced.
func (s *Service) Run(ctx context.Context, master Input, targets []Input) (*bom.ComparisonSession, error) {
	start := time.Now()

	if len(targets) < 1 || len(targets) > s.cfg.MaxTargets {
		metrics.SessionsTotal.WithLabelValues("rejected").Inc()
		return nil, &bom.ValidationError{
			Message: fmt.Sprintf("expected between 1 and %d targets, got %d", s.cfg.MaxTargets, len(targets)),
		}
	}

	masterDoc, err := s.parseDocument(ctx, bom.RoleMaster, master)
	if err != nil {
		metrics.SessionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	if len(masterDoc.Records) == 0 {
		metrics.SessionsTotal.WithLabelValues("rejected").Inc()
		return nil, &bom.ValidationError{Message: "empty master BOM"}
	}

	// Targets are mutually independent; the master document is
	// immutable after normalization, so sharing it needs no locking.
	results := make([]bom.TargetComparisonResult, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			doc, err := s.parseDocument(gctx, bom.RoleTarget, target)
			if err != nil {
				return err
			}
			result, err := compare.TargetResult(masterDoc, doc)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.SessionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	session, err := compare.Session(masterDoc, results)
	if err != nil {
		metrics.SessionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.SessionsTotal.WithLabelValues("succeeded").Inc()
	metrics.CompareDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("comparison session complete",
		"session_id", session.ID,
		"master", masterDoc.Filename,
		"targets", len(targets),
		"missing", session.Summary.MissingCount,
		"extra", session.Summary.ExtraCount,
		"mismatch", session.Summary.MismatchCount,
		"duration", time.Since(start))

	return session, nil
}

// parseDocument runs the full ingestion pipeline for one input file.
func (s *Service) parseDocument(ctx context.Context, role bom.Role, in Input) (*bom.BOMDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := in.Format
	if format == "" {
		var err error
		format, err = detect.Detect(in.Filename, in.Data)
		if err != nil {
			return nil, err
		}
	}

	extractor, err := extract.ForFormat(format, extract.Config{
		PDFAlignTolerance: s.cfg.PDFAlignTolerance,
	})
	if err != nil {
		return nil, err
	}

	table, err := extractor.Extract(in.Data)
	if err != nil {
		return nil, s.identify(err, role, in.Filename)
	}

	mapping, err := columns.Map(table.Headers, columns.Aliases{
		PartNumber:     s.cfg.Aliases.PartNumber,
		Quantity:       s.cfg.Aliases.Quantity,
		RefDesignators: s.cfg.Aliases.RefDesignators,
		Description:    s.cfg.Aliases.Description,
	})
	if err != nil {
		return nil, s.identify(err, role, in.Filename)
	}

	res := normalize.Records(table, mapping, normalize.MergePolicy(s.cfg.Merge))

	metrics.DocumentsParsed.WithLabelValues(string(format), string(role)).Inc()
	if dropped := len(res.Warnings); dropped > 0 {
		metrics.RowsDropped.Add(float64(dropped))
		s.logger.Warn("dropped rows during normalization",
			"role", role, "filename", in.Filename, "dropped", dropped)
	}

	return &bom.BOMDocument{
		Role:     role,
		Format:   format,
		Filename: in.Filename,
		Records:  res.Records,
		Warnings: res.Warnings,
	}, nil
}

// identify stamps a parse error with the offending document so the
// caller never sees a generic failure.
func (s *Service) identify(err error, role bom.Role, filename string) error {
	if pe, ok := err.(*bom.ParseError); ok {
		pe.Role = role
		pe.Filename = filename
		return pe
	}
	return err
}
