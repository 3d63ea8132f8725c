package service

import (
	"context"
	"fmt"

	"aivault/internal/inference"
	"aivault/internal/model"
	"aivault/internal/repository"
)

// AnalysisService runs text analysis through the inference gateway and keeps
// the per-user scan history.
type AnalysisService interface {
	Analyze(ctx context.Context, username, text string) (string, error)
	Sentiment(ctx context.Context, username, text string) (string, error)
	History(ctx context.Context, username string) ([]model.Scan, error)
}

type analysisService struct {
	engine   inference.Engine
	scanRepo repository.ScanRepository
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(engine inference.Engine, scanRepo repository.ScanRepository) AnalysisService {
	return &analysisService{
		engine:   engine,
		scanRepo: scanRepo,
	}
}

// Analyze summarizes text and records the scan. Gateway failures are not
// recorded in history.
func (s *analysisService) Analyze(ctx context.Context, username, text string) (string, error) {
	summary, err := s.engine.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	if err := s.record(ctx, username, model.ScanKindSummary, text, summary); err != nil {
		return "", err
	}
	return summary, nil
}

// Sentiment classifies the mood of text and records the scan.
func (s *analysisService) Sentiment(ctx context.Context, username, text string) (string, error) {
	mood, err := s.engine.DetectMood(ctx, text)
	if err != nil {
		return "", err
	}

	if err := s.record(ctx, username, model.ScanKindSentiment, text, mood); err != nil {
		return "", err
	}
	return mood, nil
}

// History returns every scan recorded for the user.
func (s *analysisService) History(ctx context.Context, username string) ([]model.Scan, error) {
	scans, err := s.scanRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	return scans, nil
}

func (s *analysisService) record(ctx context.Context, username, kind, original, result string) error {
	scan := &model.Scan{
		Username:     username,
		Kind:         kind,
		OriginalText: original,
		ResultText:   result,
	}
	if err := s.scanRepo.Create(ctx, scan); err != nil {
		return fmt.Errorf("record scan: %w", err)
	}
	return nil
}
