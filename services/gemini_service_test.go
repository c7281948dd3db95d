package services

import (
	"errors"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAIResponsePlainJSON(t *testing.T) {
	text := `{"analysis_summary": "Needs drug coverage.", "identified_needs": ["prescription drugs"], "results": [{"company_name": "Sun Life", "rating": 4}]}`

	parsed, err := parseAIResponse(text)

	require.NoError(t, err)
	assert.Equal(t, "Needs drug coverage.", parsed.AnalysisSummary)
	require.Len(t, parsed.Results, 1)
	assert.Equal(t, "Sun Life", parsed.Results[0].CompanyName)
}

func TestParseAIResponseCodeFenced(t *testing.T) {
	text := "Here is my analysis:\n```json\n{\"analysis_summary\": \"ok\", \"identified_needs\": [], \"results\": []}\n```\nLet me know if you need more."

	parsed, err := parseAIResponse(text)

	require.NoError(t, err)
	assert.Equal(t, "ok", parsed.AnalysisSummary)
	assert.NotNil(t, parsed.Results)
}

func TestParseAIResponseSurroundingProse(t *testing.T) {
	text := `Sure! Based on your story: {"analysis_summary": "x", "results": []} Hope that helps.`

	parsed, err := parseAIResponse(text)

	require.NoError(t, err)
	assert.Equal(t, "x", parsed.AnalysisSummary)
}

func TestParseAIResponseInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not json", text: "I cannot help with that."},
		{name: "truncated object", text: `{"analysis_summary": "x", "results": [`},
		{name: "missing results", text: `{"analysis_summary": "x"}`},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAIResponse(tt.text)
			assert.ErrorIs(t, err, ErrAIParse)
		})
	}
}

func TestSanitizeAIResponseFillsDefaults(t *testing.T) {
	resp := &AISearchResponse{
		Results: []AIInsuranceResult{{}},
	}

	sanitizeAIResponse(resp)

	r := resp.Results[0]
	assert.Equal(t, "Unknown Provider", r.CompanyName)
	assert.Equal(t, "Health Insurance Plan", r.PolicyName)
	assert.Equal(t, "This plan may match your needs.", r.Explanation)
	assert.NotNil(t, r.CoverageHighlights)
	assert.Equal(t, "Contact for pricing", r.EstimatedMonthlyCost)
	assert.Equal(t, 1.0, r.Rating)
	assert.Equal(t, "General health coverage", r.BestFor)
	assert.NotEmpty(t, resp.AnalysisSummary)
	assert.NotNil(t, resp.IdentifiedNeeds)
}

func TestSanitizeAIResponseClampsRating(t *testing.T) {
	resp := &AISearchResponse{
		Results: []AIInsuranceResult{
			{CompanyName: "A", Rating: 0},
			{CompanyName: "B", Rating: 9.5},
			{CompanyName: "C", Rating: 3.5},
		},
	}

	sanitizeAIResponse(resp)

	byName := map[string]float64{}
	for _, r := range resp.Results {
		byName[r.CompanyName] = r.Rating
	}
	assert.Equal(t, 1.0, byName["A"])
	assert.Equal(t, 5.0, byName["B"])
	assert.Equal(t, 3.5, byName["C"])
}

func TestSanitizeAIResponseSortsByRatingDescending(t *testing.T) {
	resp := &AISearchResponse{
		Results: []AIInsuranceResult{
			{CompanyName: "Low", Rating: 2},
			{CompanyName: "High", Rating: 5},
			{CompanyName: "Mid", Rating: 4},
		},
	}

	sanitizeAIResponse(resp)

	assert.Equal(t, "High", resp.Results[0].CompanyName)
	assert.Equal(t, "Mid", resp.Results[1].CompanyName)
	assert.Equal(t, "Low", resp.Results[2].CompanyName)
}

func TestReliableURLKnownProvider(t *testing.T) {
	got := reliableURL("Sun Life Financial", "https://broken.example.com/deep/link")
	assert.Equal(t, "https://www.sunlife.ca/en/insurance/health-insurance/", got)
}

func TestReliableURLMostSpecificNameWins(t *testing.T) {
	// Ambiguous names resolve by table order: repeated calls must keep
	// returning the entry for the most specific matching name.
	for i := 0; i < 100; i++ {
		assert.Equal(t, "https://www.medavie.bluecross.ca/en/health-insurance",
			reliableURL("Medavie Blue Cross", ""))
		assert.Equal(t, "https://www.bcbs.com/find-a-plan",
			reliableURL("Blue Cross Blue Shield", ""))
		assert.Equal(t, "https://www.bluecross.ca/en/health-insurance",
			reliableURL("Blue Cross", ""))
	}
}

func TestReliableLogoURLMostSpecificNameWins(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "https://logo.clearbit.com/bcbs.com",
			reliableLogoURL("Blue Cross Blue Shield", ""))
		assert.Equal(t, "https://logo.clearbit.com/medavie.bluecross.ca",
			reliableLogoURL("Medavie Blue Cross", ""))
	}
}

func TestReliableURLUnknownProviderKeepsValidURL(t *testing.T) {
	got := reliableURL("Acme Mutual", "https://acmemutual.example/plans")
	assert.Equal(t, "https://acmemutual.example/plans", got)
}

func TestReliableURLUnknownProviderBadURL(t *testing.T) {
	tests := []string{"#", "[object Object]", "undefined/plans", ""}

	for _, bad := range tests {
		got := reliableURL("Acme Mutual", bad)
		assert.Contains(t, got, "https://www.google.com/search?q=", "input %q", bad)
		assert.Contains(t, got, "Acme+Mutual")
	}
}

func TestReliableLogoURLKnownProvider(t *testing.T) {
	got := reliableLogoURL("Manulife Financial", "")
	assert.Equal(t, "https://logo.clearbit.com/manulife.ca", got)
}

func TestReliableLogoURLUnknownProviderFallsBackToClearbit(t *testing.T) {
	got := reliableLogoURL("Acme Insurance Group", "")
	assert.Equal(t, "https://logo.clearbit.com/acme.com", got)
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(errors.New("googleapi: Error 429: Resource has been exhausted")))
	assert.True(t, isQuotaError(errors.New("quota exceeded for metric")))
	assert.True(t, isQuotaError(errors.New("Too Many Requests")))
	assert.False(t, isQuotaError(errors.New("googleapi: Error 400: API key not valid")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("", 5))
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	// Shortening must never split a multi-byte character
	assert.Equal(t, "Qué", truncate("Québec santé", 3))
	assert.Equal(t, "记录已", truncate("记录已截断", 3))
	assert.True(t, utf8.ValidString(truncate("Protection Complète — santé", 20)))
}

func TestTokenUsageTrackerReport(t *testing.T) {
	tracker := NewTokenUsageTracker()
	tracker.Track("gemini-2.0-flash", 100, 50, 150, "/api/ai-search")
	tracker.Track("gemini-2.0-flash", 200, 80, 280, "/api/ai-search")
	tracker.Track("gemini-2.5-flash", 10, 5, 15, "/api/developer/api-key/test")

	report := tracker.Report()

	assert.Equal(t, 3, report.Summary.TotalRequests)
	assert.Equal(t, 310, report.Summary.TotalPromptTokens)
	assert.Equal(t, 135, report.Summary.TotalCompletionTokens)
	assert.Equal(t, 445, report.Summary.TotalTokensUsed)
	require.NotNil(t, report.Summary.TrackingSince)

	flash := report.ModelBreakdown["gemini-2.0-flash"]
	assert.Equal(t, 2, flash.Requests)
	assert.Equal(t, 430, flash.TotalTokens)

	// Recent requests come back newest first
	require.Len(t, report.RecentRequests, 3)
	assert.Equal(t, "gemini-2.5-flash", report.RecentRequests[0].Model)
}

func TestTokenUsageTrackerEvictsOldest(t *testing.T) {
	tracker := NewTokenUsageTracker()
	for i := 0; i < maxUsageRecords+25; i++ {
		tracker.Track("gemini-2.0-flash", 1, 1, 2, fmt.Sprintf("/call/%d", i))
	}

	report := tracker.Report()

	assert.Equal(t, maxUsageRecords, report.Summary.TotalRequests)
	assert.Equal(t, maxUsageRecords*2, report.Summary.TotalTokensUsed)
	assert.Len(t, report.RecentRequests, 20)
	assert.Equal(t, fmt.Sprintf("/call/%d", maxUsageRecords+24), report.RecentRequests[0].Endpoint)
}

func TestTokenUsageTrackerReset(t *testing.T) {
	tracker := NewTokenUsageTracker()
	tracker.Track("gemini-2.0-flash", 100, 50, 150, "/api/ai-search")

	tracker.Reset()
	report := tracker.Report()

	assert.Equal(t, 0, report.Summary.TotalRequests)
	assert.Nil(t, report.Summary.TrackingSince)
	assert.Empty(t, report.RecentRequests)
}
