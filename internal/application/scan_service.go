package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/repotriage/repotriage/internal/domain"
	"github.com/repotriage/repotriage/internal/domain/engine"
	"github.com/repotriage/repotriage/internal/domain/rules"
	"github.com/repotriage/repotriage/internal/domain/sampler"
)

// ScanService orchestrates the detection pipeline:
// sample → rule-based detection → optional AI review → aggregate.
type ScanService struct {
	cfg      domain.Config
	reviewer domain.Reviewer // nil disables the AI path entirely
	logger   *zap.Logger
}

func NewScanService(cfg domain.Config, reviewer domain.Reviewer, logger *zap.Logger) *ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScanService{cfg: cfg.Normalize(), reviewer: reviewer, logger: logger}
}

// Scan produces a report for an already-fetched snapshot. The AI path is
// strictly additive: its failures are logged per file and never abort the
// rule-based scan.
func (s *ScanService) Scan(ctx context.Context, snap *domain.Snapshot) (*domain.Report, error) {
	if err := domain.ValidateSnapshot(snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	files := sampler.Sample(snap, s.cfg.MaxFiles, s.cfg.MaxFileBytes)

	raw, err := engine.Detect(ctx, snap, files, rules.All(), s.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("running detection: %w", err)
	}

	if s.reviewer != nil {
		raw = append(raw, s.reviewFiles(ctx, files)...)
	}

	report := engine.Aggregate(raw, snap.ID)
	report.FilesAnalyzed = len(files)

	s.logger.Info("scan complete",
		zap.String("repository", snap.ID),
		zap.Int("files", len(files)),
		zap.Int("findings", report.Total()),
		zap.Int("quality_score", report.QualityScore))

	return report, nil
}

// reviewFiles runs the AI reviewer over a bounded prefix of the sample.
// Provider errors are local to the affected file.
func (s *ScanService) reviewFiles(ctx context.Context, files []domain.FileEntry) []domain.Finding {
	max := s.cfg.AIMaxFiles
	if max > len(files) {
		max = len(files)
	}

	var findings []domain.Finding
	for _, f := range files[:max] {
		if ctx.Err() != nil {
			break
		}
		fs, err := s.reviewer.Review(ctx, f)
		if err != nil {
			s.logger.Warn("ai review skipped", zap.String("file", f.Path), zap.Error(err))
			continue
		}
		findings = append(findings, fs...)
	}
	return findings
}
