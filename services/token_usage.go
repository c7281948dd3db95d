package services

import (
	"sync"
	"time"
)

// maxUsageRecords bounds the in-memory usage log
const maxUsageRecords = 500

// TokenUsageRecord is a single tracked AI model call
type TokenUsageRecord struct {
	Timestamp        string `json:"timestamp"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"promptTokens"`
	CompletionTokens int    `json:"completionTokens"`
	TotalTokens      int    `json:"totalTokens"`
	Endpoint         string `json:"endpoint"`
}

// ModelUsage is the per-model aggregate in a usage report
type ModelUsage struct {
	Requests         int `json:"requests"`
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// TokenUsageSummary is the top-level aggregate in a usage report
type TokenUsageSummary struct {
	TotalRequests         int     `json:"totalRequests"`
	TotalPromptTokens     int     `json:"totalPromptTokens"`
	TotalCompletionTokens int     `json:"totalCompletionTokens"`
	TotalTokensUsed       int     `json:"totalTokensUsed"`
	TrackingSince         *string `json:"trackingSince"`
}

// TokenUsageReport is the full payload served by the developer console
type TokenUsageReport struct {
	Summary        TokenUsageSummary     `json:"summary"`
	ModelBreakdown map[string]ModelUsage `json:"modelBreakdown"`
	RecentRequests []TokenUsageRecord    `json:"recentRequests"`
}

// TokenUsageTracker records AI token consumption in memory. It is injected
// into the collaborators that need it rather than living as package state,
// and keeps at most maxUsageRecords entries.
type TokenUsageTracker struct {
	mu      sync.Mutex
	records []TokenUsageRecord

	totalPromptTokens     int
	totalCompletionTokens int
	totalTokensUsed       int
	totalRequests         int
}

func NewTokenUsageTracker() *TokenUsageTracker {
	return &TokenUsageTracker{}
}

// Track appends a usage record, evicting the oldest once the cap is reached
func (t *TokenUsageTracker) Track(model string, promptTokens, completionTokens, totalTokens int, endpoint string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = append(t.records, TokenUsageRecord{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
		Endpoint:         endpoint,
	})
	t.totalPromptTokens += promptTokens
	t.totalCompletionTokens += completionTokens
	t.totalTokensUsed += totalTokens
	t.totalRequests++

	if len(t.records) > maxUsageRecords {
		removed := t.records[0]
		t.records = t.records[1:]
		t.totalPromptTokens -= removed.PromptTokens
		t.totalCompletionTokens -= removed.CompletionTokens
		t.totalTokensUsed -= removed.TotalTokens
		t.totalRequests--
	}
}

// Report builds the usage payload for the developer console, including a
// per-model breakdown and the 20 most recent calls (newest first)
func (t *TokenUsageTracker) Report() TokenUsageReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	breakdown := make(map[string]ModelUsage)
	for _, rec := range t.records {
		usage := breakdown[rec.Model]
		usage.Requests++
		usage.PromptTokens += rec.PromptTokens
		usage.CompletionTokens += rec.CompletionTokens
		usage.TotalTokens += rec.TotalTokens
		breakdown[rec.Model] = usage
	}

	recentCount := len(t.records)
	if recentCount > 20 {
		recentCount = 20
	}
	recent := make([]TokenUsageRecord, 0, recentCount)
	for i := len(t.records) - 1; i >= len(t.records)-recentCount; i-- {
		recent = append(recent, t.records[i])
	}

	var since *string
	if len(t.records) > 0 {
		first := t.records[0].Timestamp
		since = &first
	}

	return TokenUsageReport{
		Summary: TokenUsageSummary{
			TotalRequests:         t.totalRequests,
			TotalPromptTokens:     t.totalPromptTokens,
			TotalCompletionTokens: t.totalCompletionTokens,
			TotalTokensUsed:       t.totalTokensUsed,
			TrackingSince:         since,
		},
		ModelBreakdown: breakdown,
		RecentRequests: recent,
	}
}

// Reset clears all counters and records
func (t *TokenUsageTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = nil
	t.totalPromptTokens = 0
	t.totalCompletionTokens = 0
	t.totalTokensUsed = 0
	t.totalRequests = 0
}
