package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aivault/internal/inference"
	"aivault/internal/model"
)

func TestAnalysisService_Analyze_RecordsScan(t *testing.T) {
	mockEngine := new(MockEngine)
	mockEngine.On("Summarize", mock.Anything, "long text").Return("short text", nil)

	mockScans := new(MockScanRepository)
	mockScans.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Scan) bool {
		return s.Username == "alice" &&
			s.Kind == model.ScanKindSummary &&
			s.OriginalText == "long text" &&
			s.ResultText == "short text"
	})).Return(nil)

	svc := NewAnalysisService(mockEngine, mockScans)

	summary, err := svc.Analyze(context.Background(), "alice", "long text")
	require.NoError(t, err)
	assert.Equal(t, "short text", summary)
	mockScans.AssertExpectations(t)
}

func TestAnalysisService_Sentiment_RecordsScan(t *testing.T) {
	mockEngine := new(MockEngine)
	mockEngine.On("DetectMood", mock.Anything, "happy text").Return("POSITIVE (91.0%)", nil)

	mockScans := new(MockScanRepository)
	mockScans.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Scan) bool {
		return s.Kind == model.ScanKindSentiment && s.ResultText == "POSITIVE (91.0%)"
	})).Return(nil)

	svc := NewAnalysisService(mockEngine, mockScans)

	mood, err := svc.Sentiment(context.Background(), "alice", "happy text")
	require.NoError(t, err)
	assert.Equal(t, "POSITIVE (91.0%)", mood)
	mockScans.AssertExpectations(t)
}

func TestAnalysisService_GatewayFailureNotRecorded(t *testing.T) {
	gwErr := &inference.GatewayError{Model: "m", Message: "all mirrors exhausted"}

	mockEngine := new(MockEngine)
	mockEngine.On("Summarize", mock.Anything, "text").Return("", gwErr)
	mockEngine.On("DetectMood", mock.Anything, "text").Return("", gwErr)

	mockScans := new(MockScanRepository)

	svc := NewAnalysisService(mockEngine, mockScans)

	_, err := svc.Analyze(context.Background(), "alice", "text")
	assert.ErrorIs(t, err, gwErr)

	_, err = svc.Sentiment(context.Background(), "alice", "text")
	assert.ErrorIs(t, err, gwErr)

	// Failed analyses leave no history row behind.
	mockScans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalysisService_History(t *testing.T) {
	scans := []model.Scan{
		{ID: 1, Username: "alice", Kind: model.ScanKindSummary},
		{ID: 2, Username: "alice", Kind: model.ScanKindSentiment},
	}

	mockScans := new(MockScanRepository)
	mockScans.On("ListByUsername", mock.Anything, "alice").Return(scans, nil)

	svc := NewAnalysisService(new(MockEngine), mockScans)

	got, err := svc.History(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, scans, got)
}
