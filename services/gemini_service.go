package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"healthsync/config"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Sentinel errors the AI search controller maps to distinct error codes
var (
	ErrAIKeyNotConfigured = errors.New("gemini API key is not configured")
	ErrAIParse            = errors.New("failed to parse AI response")
)

// AIInsuranceResult is a single recommendation from the AI collaborator
type AIInsuranceResult struct {
	CompanyName          string   `json:"company_name"`
	PolicyName           string   `json:"policy_name"`
	LogoURL              string   `json:"logo_url"`
	Explanation          string   `json:"explanation"`
	URL                  string   `json:"url"`
	CoverageHighlights   []string `json:"coverage_highlights"`
	EstimatedMonthlyCost string   `json:"estimated_monthly_cost"`
	Rating               float64  `json:"rating"`
	BestFor              string   `json:"best_for"`
}

// AISearchResponse is the sanitized payload returned to the client
type AISearchResponse struct {
	AnalysisSummary string              `json:"analysis_summary"`
	IdentifiedNeeds []string            `json:"identified_needs"`
	Results         []AIInsuranceResult `json:"results"`
}

type knownProvider struct {
	name string
	site string
	logo string
}

// knownProviders maps recognizable provider names to reliable enrollment
// pages and logo URLs, used in preference to whatever the model returns.
// Entries are checked in order, more specific names before their substrings,
// so lookups stay deterministic.
var knownProviders = []knownProvider{
	{"blue cross blue shield", "https://www.bcbs.com/find-a-plan", "https://logo.clearbit.com/bcbs.com"},
	{"medavie blue cross", "https://www.medavie.bluecross.ca/en/health-insurance", "https://logo.clearbit.com/medavie.bluecross.ca"},
	{"medavie", "https://www.medavie.bluecross.ca/en/health-insurance", "https://logo.clearbit.com/medavie.bluecross.ca"},
	{"blue cross", "https://www.bluecross.ca/en/health-insurance", "https://logo.clearbit.com/bluecross.ca"},
	{"sun life", "https://www.sunlife.ca/en/insurance/health-insurance/", "https://logo.clearbit.com/sunlife.ca"},
	{"manulife", "https://www.manulife.ca/personal/insurance/health-insurance.html", "https://logo.clearbit.com/manulife.ca"},
	{"canada life", "https://www.canadalife.com/insurance/health-and-dental-insurance.html", "https://logo.clearbit.com/canadalife.com"},
	{"desjardins", "https://www.desjardins.com/ca/personal/insurance/health-insurance/index.jsp", "https://logo.clearbit.com/desjardins.com"},
	{"green shield", "https://www.greenshield.ca/en-ca/individual-plans", "https://logo.clearbit.com/greenshield.ca"},
	{"greenshield", "https://www.greenshield.ca/en-ca/individual-plans", "https://logo.clearbit.com/greenshield.ca"},
	{"ia financial", "https://ia.ca/individuals/insurance/health-insurance", "https://logo.clearbit.com/ia.ca"},
	{"equitable life", "https://www.equitable.ca/en/individuals/health-and-dental", "https://logo.clearbit.com/equitable.ca"},
	{"ssq insurance", "https://ssq.ca/en/individuals/insurance/health-insurance", "https://logo.clearbit.com/ssq.ca"},
	{"ssq", "https://ssq.ca/en/individuals/insurance/health-insurance", "https://logo.clearbit.com/ssq.ca"},
	{"gms", "https://www.gms.ca/health-insurance", "https://logo.clearbit.com/gms.ca"},
	{"cigna", "https://www.cigna.com/individuals-families/shop-plans", "https://logo.clearbit.com/cigna.com"},
	{"aetna", "https://www.aetna.com/individuals-families/buy-health-insurance.html", "https://logo.clearbit.com/aetna.com"},
	{"humana", "https://www.humana.com/health-insurance", "https://logo.clearbit.com/humana.com"},
	{"united healthcare", "https://www.uhc.com/individual-and-family/shop-plans", "https://logo.clearbit.com/uhc.com"},
	{"unitedhealthcare", "https://www.uhc.com/individual-and-family/shop-plans", "https://logo.clearbit.com/uhc.com"},
	{"kaiser permanente", "https://healthy.kaiserpermanente.org/shop-plans", "https://logo.clearbit.com/kaiserpermanente.org"},
	{"anthem", "https://www.anthem.com/individual-and-family/health-insurance", "https://logo.clearbit.com/anthem.com"},
}

// matchKnownProvider returns the first table entry whose name appears in the
// company name, or nil
func matchKnownProvider(companyName string) *knownProvider {
	key := strings.ToLower(strings.TrimSpace(companyName))
	for i := range knownProviders {
		if strings.Contains(key, knownProviders[i].name) {
			return &knownProviders[i]
		}
	}
	return nil
}

const geminiSystemPrompt = `You are a health insurance comparison expert. Your job is to analyze a user's health situation described in plain English and recommend REAL insurance providers and policies that match their needs.

CRITICAL RULES:
1. You MUST ONLY recommend real, existing insurance companies and policies.
2. For URLs, use the company's MAIN health insurance page URL. Do NOT use deep links to specific plan pages as they often break.
3. NEVER invent or hallucinate URLs. If unsure, use the company's homepage URL.
4. Focus on major, well-known insurance providers (e.g., Blue Cross, Sun Life, Manulife, Canada Life, Desjardins, GreenShield, Cigna, Aetna, etc.)
5. Analyze the user's story to identify specific medical needs (oncology, dental, vision, chiropractic, mental health, prescription drugs, etc.)
6. Compare which plans are better for the user's specific situation and explain WHY.
7. Return between 4 and 8 insurance recommendations.

You MUST respond with ONLY a valid JSON object in this exact format (no markdown, no code blocks, no extra text):
{
  "analysis_summary": "A brief 2-3 sentence summary of the user's identified health needs.",
  "identified_needs": ["need1", "need2", "need3"],
  "results": [
    {
      "company_name": "...",
      "policy_name": "...",
      "logo_url": "https://logo.clearbit.com/[company-domain]",
      "explanation": "2-3 sentences on why this plan fits the described needs.",
      "url": "The company's MAIN health insurance shopping page URL.",
      "coverage_highlights": ["...", "...", "..."],
      "estimated_monthly_cost": "e.g. $150-$300/month",
      "rating": 5,
      "best_for": "e.g. Families with chronic conditions"
    }
  ]
}`

// geminiModels is the fallback chain tried in order on quota errors
var geminiModels = []string{"gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-2.5-flash"}

// GeminiService calls the Gemini API to find real insurance recommendations
// for a free-text health story. It is an opaque collaborator: nothing in the
// comparison engine depends on it.
type GeminiService struct {
	Keys  config.KeyProvider
	Usage *TokenUsageTracker
}

func NewGeminiService(keys config.KeyProvider, usage *TokenUsageTracker) *GeminiService {
	return &GeminiService{Keys: keys, Usage: usage}
}

// SearchInsurance analyzes a user's health story and returns sanitized AI
// recommendations, trying fallback models on quota errors
func (g *GeminiService) SearchInsurance(ctx context.Context, story string) (*AISearchResponse, error) {
	if g.Keys.Get() == "" {
		return nil, ErrAIKeyNotConfigured
	}

	var lastErr error
	for _, model := range geminiModels {
		resp, err := g.trySearch(ctx, model, story)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		logrus.WithFields(logrus.Fields{
			"model": model,
			"error": err.Error(),
		}).Warn("gemini model failed")

		if !isQuotaError(err) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}

	if lastErr == nil {
		lastErr = errors.New("all AI models failed")
	}
	return nil, lastErr
}

func (g *GeminiService) trySearch(ctx context.Context, modelName, story string) (*AISearchResponse, error) {
	key := g.Keys.Get()
	if key == "" {
		return nil, ErrAIKeyNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)

	prompt := geminiSystemPrompt + "\n\nUser's health insurance story:\n\n\"" + story + "\"\n\nReturn your response as a JSON object only."

	result, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}

	if result.UsageMetadata != nil && g.Usage != nil {
		g.Usage.Track(
			modelName,
			int(result.UsageMetadata.PromptTokenCount),
			int(result.UsageMetadata.CandidatesTokenCount),
			int(result.UsageMetadata.TotalTokenCount),
			"/api/ai-search",
		)
	}

	text := responseText(result)
	parsed, err := parseAIResponse(text)
	if err != nil {
		logrus.WithField("response_head", truncate(text, 500)).Error("unparseable gemini response")
		return nil, err
	}

	sanitizeAIResponse(parsed)
	return parsed, nil
}

// TestKey makes a minimal generation call to verify the configured key is
// live, returning the model's reply text and token usage
func (g *GeminiService) TestKey(ctx context.Context) (string, *TokenUsageRecord, error) {
	key := g.Keys.Get()
	if key == "" {
		return "", nil, ErrAIKeyNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(geminiModels[0])
	result, err := model.GenerateContent(ctx, genai.Text("Say 'API key is working' in exactly those words."))
	if err != nil {
		return "", nil, err
	}

	var usage *TokenUsageRecord
	if result.UsageMetadata != nil {
		usage = &TokenUsageRecord{
			Model:            geminiModels[0],
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
		if g.Usage != nil {
			g.Usage.Track(usage.Model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, "/api/developer/api-key/test")
		}
	}

	return truncate(responseText(result), 100), usage, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// parseAIResponse extracts the JSON object from the model output, which may
// arrive wrapped in markdown code fences or surrounded by prose
func parseAIResponse(text string) (*AISearchResponse, error) {
	jsonText := text
	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		jsonText = strings.TrimSpace(m[1])
	}

	start := strings.Index(jsonText, "{")
	end := strings.LastIndex(jsonText, "}")
	if start != -1 && end > start {
		jsonText = jsonText[start : end+1]
	}

	var parsed AISearchResponse
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIParse, err)
	}
	if parsed.Results == nil {
		return nil, fmt.Errorf("%w: missing results array", ErrAIParse)
	}
	return &parsed, nil
}

// sanitizeAIResponse fills defaults, replaces URLs and logos with known-good
// values, clamps ratings into [1,5], and sorts results best match first
func sanitizeAIResponse(resp *AISearchResponse) {
	for i := range resp.Results {
		r := &resp.Results[i]
		if r.CompanyName == "" {
			r.CompanyName = "Unknown Provider"
		}
		if r.PolicyName == "" {
			r.PolicyName = "Health Insurance Plan"
		}
		r.LogoURL = reliableLogoURL(r.CompanyName, r.LogoURL)
		r.URL = reliableURL(r.CompanyName, r.URL)
		if r.Explanation == "" {
			r.Explanation = "This plan may match your needs."
		}
		if r.CoverageHighlights == nil {
			r.CoverageHighlights = []string{}
		}
		if r.EstimatedMonthlyCost == "" {
			r.EstimatedMonthlyCost = "Contact for pricing"
		}
		if r.Rating < 1 {
			r.Rating = 1
		} else if r.Rating > 5 {
			r.Rating = 5
		}
		if r.BestFor == "" {
			r.BestFor = "General health coverage"
		}
	}

	sort.SliceStable(resp.Results, func(a, b int) bool {
		return resp.Results[a].Rating > resp.Results[b].Rating
	})

	if resp.AnalysisSummary == "" {
		resp.AnalysisSummary = "We analyzed your health needs and found matching insurance plans."
	}
	if resp.IdentifiedNeeds == nil {
		resp.IdentifiedNeeds = []string{}
	}
}

// reliableURL prefers a known provider page over the model-supplied URL,
// falling back to a web search link when neither is usable
func reliableURL(companyName, aiURL string) string {
	if p := matchKnownProvider(companyName); p != nil {
		return p.site
	}
	if strings.HasPrefix(aiURL, "http") && !strings.Contains(aiURL, "[object") && aiURL != "#" && !strings.Contains(aiURL, "undefined") {
		return aiURL
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(companyName+" health insurance plans")
}

var logoDomainStripRe = regexp.MustCompile(`(?i)insurance|health|care|group|inc|corp|ltd`)

func reliableLogoURL(companyName, aiLogoURL string) string {
	if p := matchKnownProvider(companyName); p != nil {
		return p.logo
	}
	if strings.HasPrefix(aiLogoURL, "http") && !strings.Contains(aiLogoURL, "[object") {
		return aiLogoURL
	}
	key := strings.ToLower(strings.TrimSpace(companyName))
	domain := logoDomainStripRe.ReplaceAllString(strings.ReplaceAll(key, " ", ""), "")
	if len(domain) > 2 {
		return "https://logo.clearbit.com/" + domain + ".com"
	}
	return "https://logo.clearbit.com/" + strings.ReplaceAll(key, " ", "") + ".com"
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "Too Many")
}

// truncate shortens s to at most n runes without splitting a multi-byte
// character
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
