package inference

import (
	"context"
	"encoding/json"
	"fmt"
)

// Engine exposes the two analysis operations served by the hosted models.
// Implementations never panic on upstream failures; every failure path is an
// explicit error return.
type Engine interface {
	Summarize(ctx context.Context, text string) (string, error)
	DetectMood(ctx context.Context, text string) (string, error)
}

// Analyzer runs summarization and sentiment models through a gateway client.
type Analyzer struct {
	client         *Client
	summaryModel   string
	sentimentModel string
}

var _ Engine = (*Analyzer)(nil)

// NewAnalyzer creates an analyzer bound to the given model IDs.
func NewAnalyzer(client *Client, summaryModel, sentimentModel string) *Analyzer {
	return &Analyzer{
		client:         client,
		summaryModel:   summaryModel,
		sentimentModel: sentimentModel,
	}
}

// upstreamError is the {"error": ...} object some replies carry even with a
// 2xx status.
type upstreamError struct {
	Error string `json:"error"`
}

// Summarize returns the summary text produced by the summarization model.
func (a *Analyzer) Summarize(ctx context.Context, text string) (string, error) {
	raw, err := a.client.Call(ctx, a.summaryModel, text, nil)
	if err != nil {
		return "", err
	}

	var results []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.Unmarshal(raw, &results); err == nil && len(results) > 0 && results[0].SummaryText != "" {
		return results[0].SummaryText, nil
	}

	var ue upstreamError
	if err := json.Unmarshal(raw, &ue); err == nil && ue.Error != "" {
		return "", &GatewayError{Model: a.summaryModel, Message: ue.Error}
	}

	return "", &GatewayError{Model: a.summaryModel, Message: "unexpected reply shape: " + truncate(raw, 200)}
}

// labelScore is one classification candidate.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// DetectMood returns the top sentiment label formatted as "LABEL (91.0%)".
// The hosted API returns either a flat list of label/score pairs or a list
// nested one level deeper; both shapes are normalized here.
func (a *Analyzer) DetectMood(ctx context.Context, text string) (string, error) {
	raw, err := a.client.Call(ctx, a.sentimentModel, text, nil)
	if err != nil {
		return "", err
	}

	candidates, ok := decodeLabelScores(raw)
	if !ok {
		var ue upstreamError
		if err := json.Unmarshal(raw, &ue); err == nil && ue.Error != "" {
			return "", &GatewayError{Model: a.sentimentModel, Message: ue.Error}
		}
		return "", &GatewayError{Model: a.sentimentModel, Message: "unexpected reply shape: " + truncate(raw, 200)}
	}

	top := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > top.Score {
			top = c
		}
	}
	return fmt.Sprintf("%s (%.1f%%)", top.Label, top.Score*100), nil
}

func decodeLabelScores(raw json.RawMessage) ([]labelScore, bool) {
	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, true
	}

	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], true
	}

	return nil, false
}
