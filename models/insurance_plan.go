package models

import (
	"gorm.io/gorm"
)

// InsurancePlan represents a purchasable insurance product with a fixed
// benefit schedule and a base monthly price
type InsurancePlan struct {
	gorm.Model
	ProviderID uint `gorm:"not null;index" json:"provider_id"`

	// Product details
	PlanName     string  `gorm:"size:200;not null" json:"plan_name"`
	CoverageType string  `gorm:"size:50;not null;default:'health'" json:"coverage_type"` // health, dental, travel, life, disability, critical_illness
	PlanType     string  `gorm:"size:20;not null;default:'individual'" json:"plan_type"` // individual, couple, family
	Description  string  `json:"description"`
	BasePrice    float64 `gorm:"not null" json:"base_price"`
	FamilyOption bool    `gorm:"default:false" json:"family_option"`

	// Eligibility constraints
	MinAge        int  `gorm:"not null;default:18" json:"min_age"`
	MaxAge        int  `gorm:"not null;default:65" json:"max_age"`
	SmokerAllowed bool `gorm:"not null;default:true" json:"smoker_allowed"`

	// Financial terms
	Deductible    float64 `gorm:"not null;default:0" json:"deductible"`
	CoverageLimit float64 `gorm:"not null;default:100000" json:"coverage_limit"`

	// Drug coverage
	DrugCoveragePct int     `gorm:"not null;default:80" json:"drug_coverage_pct"`
	DrugAnnualCap   float64 `gorm:"not null;default:5000" json:"drug_annual_cap"`
	DrugDeductible  float64 `gorm:"not null;default:50" json:"drug_deductible"`

	// Dental coverage
	DentalBasicPct         int     `gorm:"not null;default:80" json:"dental_basic_pct"`
	DentalMajorPct         int     `gorm:"not null;default:50" json:"dental_major_pct"`
	DentalAnnualLimit      float64 `gorm:"not null;default:1500" json:"dental_annual_limit"`
	DentalOrthodonticLimit float64 `gorm:"not null;default:0" json:"dental_orthodontic_limit"`

	// Vision coverage
	VisionExamAmount    float64 `gorm:"not null;default:75" json:"vision_exam_amount"`
	VisionEyewearAmount float64 `gorm:"not null;default:200" json:"vision_eyewear_amount"`
	VisionFrequency     string  `gorm:"size:50;not null;default:'every 24 months'" json:"vision_frequency"`

	// Paramedical coverage
	MassagePerVisit   float64 `gorm:"not null;default:50" json:"massage_per_visit"`
	MassageAnnualMax  float64 `gorm:"not null;default:500" json:"massage_annual_max"`
	MassageVisitLimit int     `gorm:"not null;default:10" json:"massage_visit_limit"`
	ChiroPerVisit     float64 `gorm:"not null;default:40" json:"chiro_per_visit"`
	ChiroAnnualMax    float64 `gorm:"not null;default:400" json:"chiro_annual_max"`
	ChiroVisitLimit   int     `gorm:"not null;default:10" json:"chiro_visit_limit"`
	PhysioPerVisit    float64 `gorm:"not null;default:50" json:"physio_per_visit"`
	PhysioAnnualMax   float64 `gorm:"not null;default:500" json:"physio_annual_max"`
	PhysioVisitLimit  int     `gorm:"not null;default:10" json:"physio_visit_limit"`

	// Presentation
	Rating     float64  `gorm:"not null;default:3.0" json:"rating"` // 1.0 - 5.0
	Highlights []string `gorm:"type:jsonb;serializer:json" json:"highlights"`

	// Relations
	Provider         Provider          `json:"-"`
	Provinces        []PlanProvince    `gorm:"foreignKey:PlanID" json:"provinces,omitempty"`
	Addons           []PlanAddon       `gorm:"foreignKey:PlanID" json:"addons,omitempty"`
	PricingModifiers []PricingModifier `gorm:"foreignKey:PlanID" json:"pricing_modifiers,omitempty"`
}
