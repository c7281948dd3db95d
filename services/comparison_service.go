package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"healthsync/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CompareRequest is the validated input for a plan comparison
type CompareRequest struct {
	Age           int      `json:"age"`
	Gender        string   `json:"gender,omitempty"`
	Province      string   `json:"province"`
	SmokingStatus string   `json:"smoking_status"` // smoker, non-smoker
	BudgetMin     *float64 `json:"budget_min,omitempty"`
	BudgetMax     *float64 `json:"budget_max,omitempty"`
	CoverageType  string   `json:"coverage_type,omitempty"`
	PlanType      string   `json:"plan_type,omitempty"`
	Addons        []string `json:"addons,omitempty"`
}

type DrugCoverage struct {
	Percentage int     `json:"percentage"`
	AnnualCap  float64 `json:"annual_cap"`
	Deductible float64 `json:"deductible"`
}

type DentalCoverage struct {
	BasicPercentage  int     `json:"basic_percentage"`
	MajorPercentage  int     `json:"major_percentage"`
	AnnualLimit      float64 `json:"annual_limit"`
	OrthodonticLimit float64 `json:"orthodontic_limit"`
}

type VisionCoverage struct {
	ExamAmount    float64 `json:"exam_amount"`
	EyewearAmount float64 `json:"eyewear_amount"`
	Frequency     string  `json:"frequency"`
}

type ParamedicalBenefit struct {
	PerVisit   float64 `json:"per_visit"`
	AnnualMax  float64 `json:"annual_max"`
	VisitLimit int     `json:"visit_limit"`
}

type Paramedical struct {
	Massage       ParamedicalBenefit `json:"massage"`
	Chiropractic  ParamedicalBenefit `json:"chiropractic"`
	Physiotherapy ParamedicalBenefit `json:"physiotherapy"`
}

type IncludedAddon struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CompareResult is a single priced plan returned from a comparison
type CompareResult struct {
	PlanID            uint            `json:"plan_id"`
	PlanName          string          `json:"plan_name"`
	Provider          string          `json:"provider"`
	ProviderLogoColor string          `json:"provider_logo_color"`
	ProviderLogoURL   string          `json:"provider_logo_url"`
	ProviderWebsite   string          `json:"provider_website"`
	EnrollmentURL     string          `json:"enrollment_url"`
	MonthlyPrice      float64         `json:"monthly_price"`
	AnnualPrice       float64         `json:"annual_price"`
	BasePrice         float64         `json:"base_price"`
	AgeModifier       float64         `json:"age_modifier"`
	SmokerModifier    float64         `json:"smoker_modifier"`
	AddonTotal        float64         `json:"addon_total"`
	CoverageType      string          `json:"coverage_type"`
	CoverageLimit     string          `json:"coverage_limit"`
	PlanType          string          `json:"plan_type"`
	Deductible        float64         `json:"deductible"`
	DrugCoverage      DrugCoverage    `json:"drug_coverage"`
	DentalCoverage    DentalCoverage  `json:"dental_coverage"`
	VisionCoverage    VisionCoverage  `json:"vision_coverage"`
	Paramedical       Paramedical     `json:"paramedical"`
	Highlights        []string        `json:"highlights"`
	IncludedAddons    []IncludedAddon `json:"included_addons"`
	Rating            float64         `json:"rating"`
}

type AvailableAddon struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// BrowsePlan is a catalog entry returned from GetAllPlans, without any
// requester-specific pricing
type BrowsePlan struct {
	ID                uint             `json:"id"`
	Provider          string           `json:"provider"`
	ProviderLogoColor string           `json:"provider_logo_color"`
	ProviderLogoURL   string           `json:"provider_logo_url"`
	ProviderWebsite   string           `json:"provider_website"`
	EnrollmentURL     string           `json:"enrollment_url"`
	PlanName          string           `json:"plan_name"`
	MonthlyPremium    float64          `json:"monthly_premium"`
	AnnualPremium     float64          `json:"annual_premium"`
	CoverageType      string           `json:"coverage_type"`
	PlanType          string           `json:"plan_type"`
	FamilyOption      bool             `json:"family_option"`
	Deductible        float64          `json:"deductible"`
	CoverageLimit     float64          `json:"coverage_limit"`
	DrugCoverage      DrugCoverage     `json:"drug_coverage"`
	DentalCoverage    DentalCoverage   `json:"dental_coverage"`
	VisionCoverage    VisionCoverage   `json:"vision_coverage"`
	Paramedical       Paramedical      `json:"paramedical"`
	Provinces         []string         `json:"provinces"`
	Highlights        []string         `json:"highlights"`
	AvailableAddons   []AvailableAddon `json:"available_addons"`
	Rating            float64          `json:"rating"`
}

// ComparisonService is the deterministic plan comparison engine. It is
// stateless; every call is an independent read-only pass over the catalog.
type ComparisonService struct {
	DB *gorm.DB
}

func NewComparisonService(db *gorm.DB) *ComparisonService {
	return &ComparisonService{DB: db}
}

// ComparePlans runs the full pipeline: eligibility filtering, per-plan price
// composition, budget filtering, and ascending price sort. An empty result
// list is a valid outcome, not an error.
func (s *ComparisonService) ComparePlans(req CompareRequest) ([]CompareResult, error) {
	province := strings.ToUpper(req.Province)

	// Plans available in the requested province
	var planIDs []uint
	if err := s.DB.Model(&models.PlanProvince{}).
		Where("province_code = ?", province).
		Pluck("plan_id", &planIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to query province availability: %w", err)
	}

	if len(planIDs) == 0 {
		logrus.WithFields(logrus.Fields{
			"province": province,
		}).Info("no plans available in requested province")
		return []CompareResult{}, nil
	}

	// Remaining eligibility filters run in one batched query
	query := s.DB.Model(&models.InsurancePlan{}).
		Where("id IN ?", planIDs).
		Where("min_age <= ? AND max_age >= ?", req.Age, req.Age)

	if req.SmokingStatus == "smoker" {
		query = query.Where("smoker_allowed = ?", true)
	}
	if req.CoverageType != "" {
		query = query.Where("coverage_type = ?", strings.ToLower(req.CoverageType))
	}
	if req.PlanType != "" {
		query = query.Where("plan_type = ?", strings.ToLower(req.PlanType))
	}

	var plans []models.InsurancePlan
	if err := query.
		Preload("Provider").
		Preload("Provinces").
		Preload("Addons").
		Preload("PricingModifiers").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to query eligible plans: %w", err)
	}

	results := evaluatePlans(plans, req)

	logrus.WithFields(logrus.Fields{
		"province": province,
		"age":      req.Age,
		"smoking":  req.SmokingStatus,
		"eligible": len(plans),
		"returned": len(results),
	}).Info("comparison completed")

	return results, nil
}

// GetAllPlans returns the full catalog ordered by rating descending, without
// eligibility or pricing personalization. Store errors are returned to the
// caller, which decides how to degrade.
func (s *ComparisonService) GetAllPlans() ([]BrowsePlan, error) {
	var plans []models.InsurancePlan
	if err := s.DB.
		Preload("Provider").
		Preload("Addons").
		Preload("Provinces").
		Order("rating DESC").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to query plan catalog: %w", err)
	}

	browse := make([]BrowsePlan, 0, len(plans))
	for i := range plans {
		browse = append(browse, buildBrowsePlan(&plans[i]))
	}
	return browse, nil
}

// evaluatePlans applies eligibility, prices each remaining plan, drops
// candidates outside the budget bounds, and sorts the remainder ascending by
// monthly price. The sort is stable so ties keep catalog order, which keeps
// results deterministic for a fixed catalog. The catalog query narrows the
// candidate set, but this function owns the eligibility decision.
func evaluatePlans(plans []models.InsurancePlan, req CompareRequest) []CompareResult {
	results := make([]CompareResult, 0, len(plans))

	for i := range plans {
		plan := &plans[i]
		if !eligible(plan, req) {
			continue
		}
		breakdown := composePrice(plan, req)

		// Budget bounds apply to the final monthly price, never the base
		// price: modifiers and addons can move a plan across a bound.
		if req.BudgetMax != nil && breakdown.MonthlyPrice > *req.BudgetMax {
			continue
		}
		if req.BudgetMin != nil && breakdown.MonthlyPrice < *req.BudgetMin {
			continue
		}

		results = append(results, buildCompareResult(plan, breakdown))
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].MonthlyPrice < results[b].MonthlyPrice
	})

	return results
}

// eligible reports whether the requester may purchase the plan at all,
// independent of price: province availability, inclusive age range, smoker
// compatibility, and the optional coverage/plan type filters. Non-smokers are
// never excluded on smoking grounds.
func eligible(plan *models.InsurancePlan, req CompareRequest) bool {
	if !availableIn(plan.Provinces, req.Province) {
		return false
	}
	if req.Age < plan.MinAge || req.Age > plan.MaxAge {
		return false
	}
	if req.SmokingStatus == "smoker" && !plan.SmokerAllowed {
		return false
	}
	if req.CoverageType != "" && !strings.EqualFold(plan.CoverageType, req.CoverageType) {
		return false
	}
	if req.PlanType != "" && !strings.EqualFold(plan.PlanType, req.PlanType) {
		return false
	}
	return true
}

// availableIn reports whether the plan's province rows include the requested
// province. A plan with zero rows is available nowhere.
func availableIn(rows []models.PlanProvince, province string) bool {
	for _, row := range rows {
		if strings.EqualFold(row.ProvinceCode, province) {
			return true
		}
	}
	return false
}

// priceBreakdown carries a plan's composed price. The reported modifier
// totals are rounded once at composition time; the monthly price is computed
// from the unrounded sums to avoid double-rounding drift.
type priceBreakdown struct {
	MonthlyPrice   float64
	AnnualPrice    float64
	BasePrice      float64
	AgeModifier    float64
	SmokerModifier float64
	AddonTotal     float64
	IncludedAddons []IncludedAddon
}

func composePrice(plan *models.InsurancePlan, req CompareRequest) priceBreakdown {
	ageModifier := ageModifierTotal(plan.PricingModifiers, plan.BasePrice, req.Age)

	var smokerModifier float64
	if req.SmokingStatus == "smoker" {
		smokerModifier = smokerModifierTotal(plan.PricingModifiers, plan.BasePrice)
	}

	addonTotal, includedAddons := matchAddons(plan.Addons, req.Addons)

	monthly := round2(plan.BasePrice + ageModifier + smokerModifier + addonTotal)

	return priceBreakdown{
		MonthlyPrice:   monthly,
		AnnualPrice:    round2(monthly * 12),
		BasePrice:      plan.BasePrice,
		AgeModifier:    round2(ageModifier),
		SmokerModifier: round2(smokerModifier),
		AddonTotal:     round2(addonTotal),
		IncludedAddons: includedAddons,
	}
}

// ageModifierTotal sums every age-bracket modifier matching the requester's
// age. Brackets are inclusive on both ends; overlapping brackets all
// accumulate, the engine does not pick a single best match.
func ageModifierTotal(modifiers []models.PricingModifier, basePrice float64, age int) float64 {
	var total float64
	for _, mod := range modifiers {
		if mod.ConditionKey != models.ConditionAge {
			continue
		}
		minAge := 0
		if mod.AgeMin != nil {
			minAge = *mod.AgeMin
		}
		maxAge := 999
		if mod.AgeMax != nil {
			maxAge = *mod.AgeMax
		}
		if age < minAge || age > maxAge {
			continue
		}
		total += modifierAmount(mod, basePrice)
	}
	return total
}

// smokerModifierTotal sums every smoker surcharge on the plan. Callers only
// invoke this for smokers; non-smokers contribute zero by construction.
func smokerModifierTotal(modifiers []models.PricingModifier, basePrice float64) float64 {
	var total float64
	for _, mod := range modifiers {
		if mod.ConditionKey != models.ConditionSmoker || mod.ConditionValue != "yes" {
			continue
		}
		total += modifierAmount(mod, basePrice)
	}
	return total
}

func modifierAmount(mod models.PricingModifier, basePrice float64) float64 {
	switch mod.ModifierType {
	case models.ModifierFlat:
		return mod.ModifierValue
	case models.ModifierPercentage:
		return basePrice * mod.ModifierValue / 100
	}
	return 0
}

// matchAddons matches requested addon names case-insensitively against the
// plan's addon catalog. Unmatched names are ignored, not an error.
func matchAddons(planAddons []models.PlanAddon, requested []string) (float64, []IncludedAddon) {
	var total float64
	included := []IncludedAddon{}

	for _, name := range requested {
		for _, addon := range planAddons {
			if strings.EqualFold(addon.AddonName, name) {
				total += addon.AddonPrice
				included = append(included, IncludedAddon{
					Name:  addon.AddonName,
					Price: addon.AddonPrice,
				})
				break
			}
		}
	}
	return total, included
}

func buildCompareResult(plan *models.InsurancePlan, breakdown priceBreakdown) CompareResult {
	highlights := plan.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	return CompareResult{
		PlanID:            plan.ID,
		PlanName:          plan.PlanName,
		Provider:          plan.Provider.Name,
		ProviderLogoColor: plan.Provider.LogoColor,
		ProviderLogoURL:   plan.Provider.LogoURL,
		ProviderWebsite:   plan.Provider.Website,
		EnrollmentURL:     plan.Provider.EnrollmentBaseURL,
		MonthlyPrice:      breakdown.MonthlyPrice,
		AnnualPrice:       breakdown.AnnualPrice,
		BasePrice:         breakdown.BasePrice,
		AgeModifier:       breakdown.AgeModifier,
		SmokerModifier:    breakdown.SmokerModifier,
		AddonTotal:        breakdown.AddonTotal,
		CoverageType:      plan.CoverageType,
		CoverageLimit:     formatCurrency(plan.CoverageLimit),
		PlanType:          plan.PlanType,
		Deductible:        plan.Deductible,
		DrugCoverage:      buildDrugCoverage(plan),
		DentalCoverage:    buildDentalCoverage(plan),
		VisionCoverage:    buildVisionCoverage(plan),
		Paramedical:       buildParamedical(plan),
		Highlights:        highlights,
		IncludedAddons:    breakdown.IncludedAddons,
		Rating:            plan.Rating,
	}
}

func buildBrowsePlan(plan *models.InsurancePlan) BrowsePlan {
	provinces := make([]string, 0, len(plan.Provinces))
	for _, p := range plan.Provinces {
		provinces = append(provinces, p.ProvinceCode)
	}

	addons := make([]AvailableAddon, 0, len(plan.Addons))
	for _, a := range plan.Addons {
		addons = append(addons, AvailableAddon{
			Name:        a.AddonName,
			Price:       a.AddonPrice,
			Description: a.Description,
		})
	}

	highlights := plan.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	return BrowsePlan{
		ID:                plan.ID,
		Provider:          plan.Provider.Name,
		ProviderLogoColor: plan.Provider.LogoColor,
		ProviderLogoURL:   plan.Provider.LogoURL,
		ProviderWebsite:   plan.Provider.Website,
		EnrollmentURL:     plan.Provider.EnrollmentBaseURL,
		PlanName:          plan.PlanName,
		MonthlyPremium:    plan.BasePrice,
		AnnualPremium:     round2(plan.BasePrice * 12),
		CoverageType:      plan.CoverageType,
		PlanType:          plan.PlanType,
		FamilyOption:      plan.FamilyOption,
		Deductible:        plan.Deductible,
		CoverageLimit:     plan.CoverageLimit,
		DrugCoverage:      buildDrugCoverage(plan),
		DentalCoverage:    buildDentalCoverage(plan),
		VisionCoverage:    buildVisionCoverage(plan),
		Paramedical:       buildParamedical(plan),
		Provinces:         provinces,
		Highlights:        highlights,
		AvailableAddons:   addons,
		Rating:            plan.Rating,
	}
}

func buildDrugCoverage(plan *models.InsurancePlan) DrugCoverage {
	return DrugCoverage{
		Percentage: plan.DrugCoveragePct,
		AnnualCap:  plan.DrugAnnualCap,
		Deductible: plan.DrugDeductible,
	}
}

func buildDentalCoverage(plan *models.InsurancePlan) DentalCoverage {
	return DentalCoverage{
		BasicPercentage:  plan.DentalBasicPct,
		MajorPercentage:  plan.DentalMajorPct,
		AnnualLimit:      plan.DentalAnnualLimit,
		OrthodonticLimit: plan.DentalOrthodonticLimit,
	}
}

func buildVisionCoverage(plan *models.InsurancePlan) VisionCoverage {
	return VisionCoverage{
		ExamAmount:    plan.VisionExamAmount,
		EyewearAmount: plan.VisionEyewearAmount,
		Frequency:     plan.VisionFrequency,
	}
}

func buildParamedical(plan *models.InsurancePlan) Paramedical {
	return Paramedical{
		Massage: ParamedicalBenefit{
			PerVisit:   plan.MassagePerVisit,
			AnnualMax:  plan.MassageAnnualMax,
			VisitLimit: plan.MassageVisitLimit,
		},
		Chiropractic: ParamedicalBenefit{
			PerVisit:   plan.ChiroPerVisit,
			AnnualMax:  plan.ChiroAnnualMax,
			VisitLimit: plan.ChiroVisitLimit,
		},
		Physiotherapy: ParamedicalBenefit{
			PerVisit:   plan.PhysioPerVisit,
			AnnualMax:  plan.PhysioAnnualMax,
			VisitLimit: plan.PhysioVisitLimit,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatCurrency renders a dollar amount with thousands separators, e.g.
// "$100,000"
func formatCurrency(v float64) string {
	whole := int64(math.Floor(v))
	s := fmt.Sprintf("%d", whole)

	var b strings.Builder
	b.WriteByte('$')
	n := len(s)
	for i, c := range s {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
