package seeder

import (
	"fmt"
	"log"

	"healthsync/models"

	"gorm.io/gorm"
)

type planSeed struct {
	provider      string
	planName      string
	basePrice     float64
	planType      string
	familyOption  bool
	deductible    float64
	coverageLimit float64
	smokerAllowed bool

	drugPct, dentalBasicPct, dentalMajorPct            int
	drugCap, drugDeductible                            float64
	dentalLimit, orthoLimit                            float64
	visionExam, visionEyewear                          float64
	visionFrequency                                    string
	massagePerVisit, massageMax                        float64
	massageVisits                                      int
	chiroPerVisit, chiroMax                            float64
	chiroVisits                                        int
	physioPerVisit, physioMax                          float64
	physioVisits                                       int
	rating                                             float64
	highlights                                         []string
	provinces                                          []string
}

var providerSeeds = []models.Provider{
	{Name: "Blue Cross", Website: "https://www.bluecross.ca", ContactEmail: "info@bluecross.ca", LogoColor: "#1E40AF", LogoURL: "https://logo.clearbit.com/bluecross.ca", EnrollmentBaseURL: "https://www.bluecross.ca/en/health-insurance"},
	{Name: "Manulife", Website: "https://www.manulife.ca", ContactEmail: "info@manulife.ca", LogoColor: "#047857", LogoURL: "https://logo.clearbit.com/manulife.ca", EnrollmentBaseURL: "https://www.manulife.ca/personal/insurance/health-insurance.html"},
	{Name: "Canada Life", Website: "https://www.canadalife.com", ContactEmail: "info@canadalife.com", LogoColor: "#7C3AED", LogoURL: "https://logo.clearbit.com/canadalife.com", EnrollmentBaseURL: "https://www.canadalife.com/insurance/health-and-dental-insurance.html"},
	{Name: "Sun Life", Website: "https://www.sunlife.ca", ContactEmail: "info@sunlife.ca", LogoColor: "#DC2626", LogoURL: "https://logo.clearbit.com/sunlife.ca", EnrollmentBaseURL: "https://www.sunlife.ca/en/insurance/health-insurance/"},
	{Name: "GMS", Website: "https://www.gms.ca", ContactEmail: "info@gms.ca", LogoColor: "#0891B2", LogoURL: "https://logo.clearbit.com/gms.ca", EnrollmentBaseURL: "https://www.gms.ca/health-insurance"},
	{Name: "Desjardins", Website: "https://www.desjardins.com", ContactEmail: "info@desjardins.com", LogoColor: "#059669", LogoURL: "https://logo.clearbit.com/desjardins.com", EnrollmentBaseURL: "https://www.desjardins.com/ca/personal/insurance/health-insurance/index.jsp"},
	{Name: "iA Financial", Website: "https://ia.ca", ContactEmail: "info@ia.ca", LogoColor: "#1D4ED8", LogoURL: "https://logo.clearbit.com/ia.ca", EnrollmentBaseURL: "https://ia.ca/individuals/insurance/health-insurance"},
	{Name: "GreenShield", Website: "https://www.greenshield.ca", ContactEmail: "info@greenshield.ca", LogoColor: "#16A34A", LogoURL: "https://logo.clearbit.com/greenshield.ca", EnrollmentBaseURL: "https://www.greenshield.ca/en-ca/individual-plans"},
	{Name: "Equitable Life", Website: "https://www.equitable.ca", ContactEmail: "info@equitable.ca", LogoColor: "#B45309", LogoURL: "https://logo.clearbit.com/equitable.ca", EnrollmentBaseURL: "https://www.equitable.ca/en/individuals/health-and-dental"},
	{Name: "SSQ Insurance", Website: "https://ssq.ca", ContactEmail: "info@ssq.ca", LogoColor: "#9333EA", LogoURL: "https://logo.clearbit.com/ssq.ca", EnrollmentBaseURL: "https://ssq.ca/en/individuals/insurance/health-insurance"},
}

var allProvinces = []string{"AB", "BC", "MB", "NB", "NL", "NS", "ON", "PE", "QC", "SK", "NT", "NU", "YT"}

var planSeeds = []planSeed{
	{provider: "Blue Cross", planName: "Essential Care", basePrice: 89, planType: "individual", familyOption: false, deductible: 100, coverageLimit: 100000, smokerAllowed: true,
		drugPct: 80, drugCap: 5000, drugDeductible: 50, dentalBasicPct: 80, dentalMajorPct: 50, dentalLimit: 1500, orthoLimit: 0,
		visionExam: 75, visionEyewear: 200, visionFrequency: "every 24 months",
		massagePerVisit: 50, massageMax: 500, massageVisits: 10, chiroPerVisit: 40, chiroMax: 400, chiroVisits: 10, physioPerVisit: 50, physioMax: 500, physioVisits: 10,
		rating: 3.5, highlights: []string{"No medical questionnaire", "Direct drug card"},
		provinces: []string{"AB", "BC", "MB", "NB", "NL", "NS", "ON", "PE", "QC", "SK"}},
	{provider: "Blue Cross", planName: "Enhanced Family Shield", basePrice: 245, planType: "family", familyOption: true, deductible: 0, coverageLimit: 250000, smokerAllowed: true,
		drugPct: 90, drugCap: 10000, drugDeductible: 25, dentalBasicPct: 90, dentalMajorPct: 70, dentalLimit: 3000, orthoLimit: 2000,
		visionExam: 100, visionEyewear: 400, visionFrequency: "every 24 months",
		massagePerVisit: 75, massageMax: 1000, massageVisits: 20, chiroPerVisit: 60, chiroMax: 800, chiroVisits: 15, physioPerVisit: 75, physioMax: 1000, physioVisits: 20,
		rating: 4.5, highlights: []string{"Zero deductible", "Orthodontic coverage", "Travel emergency"},
		provinces: []string{"AB", "BC", "MB", "NB", "NL", "NS", "ON", "PE", "QC", "SK"}},
	{provider: "Manulife", planName: "FlexCare Health", basePrice: 125, planType: "individual", familyOption: false, deductible: 50, coverageLimit: 150000, smokerAllowed: true,
		drugPct: 80, drugCap: 7500, drugDeductible: 25, dentalBasicPct: 80, dentalMajorPct: 50, dentalLimit: 2000, orthoLimit: 1000,
		visionExam: 100, visionEyewear: 300, visionFrequency: "every 24 months",
		massagePerVisit: 60, massageMax: 750, massageVisits: 15, chiroPerVisit: 50, chiroMax: 600, chiroVisits: 12, physioPerVisit: 60, physioMax: 750, physioVisits: 15,
		rating: 4.0, highlights: []string{"Nationwide coverage", "Online claims", "Mental health support"},
		provinces: allProvinces},
	{provider: "Manulife", planName: "Premium Family Plus", basePrice: 310, planType: "family", familyOption: true, deductible: 0, coverageLimit: 500000, smokerAllowed: true,
		drugPct: 100, drugCap: 15000, drugDeductible: 0, dentalBasicPct: 100, dentalMajorPct: 80, dentalLimit: 5000, orthoLimit: 3000,
		visionExam: 150, visionEyewear: 500, visionFrequency: "every 12 months",
		massagePerVisit: 100, massageMax: 1500, massageVisits: 25, chiroPerVisit: 80, chiroMax: 1200, chiroVisits: 20, physioPerVisit: 100, physioMax: 1500, physioVisits: 25,
		rating: 4.8, highlights: []string{"100% drug coverage", "Annual vision", "Premium paramedical"},
		provinces: allProvinces},
	{provider: "Canada Life", planName: "Core Health Plan", basePrice: 95, planType: "individual", familyOption: false, deductible: 150, coverageLimit: 75000, smokerAllowed: true,
		drugPct: 70, drugCap: 4000, drugDeductible: 75, dentalBasicPct: 70, dentalMajorPct: 50, dentalLimit: 1200, orthoLimit: 0,
		visionExam: 75, visionEyewear: 150, visionFrequency: "every 24 months",
		massagePerVisit: 40, massageMax: 400, massageVisits: 10, chiroPerVisit: 35, chiroMax: 350, chiroVisits: 10, physioPerVisit: 45, physioMax: 450, physioVisits: 10,
		rating: 3.2, highlights: []string{"Budget-friendly", "Quick approval"},
		provinces: []string{"AB", "BC", "ON", "QC", "MB", "SK"}},
	{provider: "Canada Life", planName: "Complete Coverage", basePrice: 198, planType: "couple", familyOption: true, deductible: 50, coverageLimit: 200000, smokerAllowed: true,
		drugPct: 85, drugCap: 8000, drugDeductible: 25, dentalBasicPct: 85, dentalMajorPct: 60, dentalLimit: 2500, orthoLimit: 1500,
		visionExam: 100, visionEyewear: 350, visionFrequency: "every 24 months",
		massagePerVisit: 65, massageMax: 800, massageVisits: 15, chiroPerVisit: 55, chiroMax: 700, chiroVisits: 12, physioPerVisit: 65, physioMax: 800, physioVisits: 15,
		rating: 4.1, highlights: []string{"Couples plan", "Dental orthodontics", "Travel coverage"},
		provinces: []string{"AB", "BC", "ON", "QC", "MB", "SK", "NB", "NS"}},
	{provider: "Sun Life", planName: "My Health Starter", basePrice: 78, planType: "individual", familyOption: false, deductible: 200, coverageLimit: 50000, smokerAllowed: true,
		drugPct: 70, drugCap: 3000, drugDeductible: 100, dentalBasicPct: 70, dentalMajorPct: 0, dentalLimit: 1000, orthoLimit: 0,
		visionExam: 50, visionEyewear: 150, visionFrequency: "every 24 months",
		massagePerVisit: 40, massageMax: 300, massageVisits: 8, chiroPerVisit: 35, chiroMax: 300, chiroVisits: 8, physioPerVisit: 40, physioMax: 300, physioVisits: 8,
		rating: 3.0, highlights: []string{"Lowest premium", "Easy enrollment"},
		provinces: []string{"AB", "BC", "MB", "NB", "NL", "NS", "ON", "PE", "QC", "SK"}},
	{provider: "Sun Life", planName: "Health Advantage Plus", basePrice: 175, planType: "family", familyOption: true, deductible: 50, coverageLimit: 200000, smokerAllowed: true,
		drugPct: 85, drugCap: 8000, drugDeductible: 25, dentalBasicPct: 85, dentalMajorPct: 60, dentalLimit: 2500, orthoLimit: 1500,
		visionExam: 100, visionEyewear: 350, visionFrequency: "every 24 months",
		massagePerVisit: 70, massageMax: 900, massageVisits: 15, chiroPerVisit: 55, chiroMax: 700, chiroVisits: 12, physioPerVisit: 70, physioMax: 900, physioVisits: 15,
		rating: 4.2, highlights: []string{"Family dental", "High drug cap", "Wellness rewards"},
		provinces: []string{"AB", "BC", "MB", "NB", "NL", "NS", "ON", "PE", "QC", "SK"}},
	{provider: "Sun Life", planName: "Elite Comprehensive", basePrice: 340, planType: "family", familyOption: true, deductible: 0, coverageLimit: 750000, smokerAllowed: false,
		drugPct: 100, drugCap: 20000, drugDeductible: 0, dentalBasicPct: 100, dentalMajorPct: 80, dentalLimit: 5000, orthoLimit: 3500,
		visionExam: 150, visionEyewear: 500, visionFrequency: "every 12 months",
		massagePerVisit: 100, massageMax: 2000, massageVisits: 30, chiroPerVisit: 80, chiroMax: 1500, chiroVisits: 25, physioPerVisit: 100, physioMax: 2000, physioVisits: 30,
		rating: 4.9, highlights: []string{"Top-tier coverage", "No limits on drugs", "Concierge support"},
		provinces: []string{"AB", "BC", "MB", "NB", "NL", "NS", "ON", "PE", "QC", "SK"}},
	{provider: "GMS", planName: "ExtendaPlan Basic", basePrice: 72, planType: "individual", familyOption: false, deductible: 200, coverageLimit: 50000, smokerAllowed: true,
		drugPct: 70, drugCap: 3000, drugDeductible: 100, dentalBasicPct: 60, dentalMajorPct: 0, dentalLimit: 750, orthoLimit: 0,
		visionExam: 50, visionEyewear: 100, visionFrequency: "every 24 months",
		massagePerVisit: 35, massageMax: 250, massageVisits: 8, chiroPerVisit: 30, chiroMax: 250, chiroVisits: 8, physioPerVisit: 35, physioMax: 250, physioVisits: 8,
		rating: 2.8, highlights: []string{"No waiting period", "Simple claims"},
		provinces: []string{"AB", "SK", "MB", "ON"}},
	{provider: "GMS", planName: "ExtendaPlan Enhanced", basePrice: 145, planType: "family", familyOption: true, deductible: 75, coverageLimit: 150000, smokerAllowed: true,
		drugPct: 80, drugCap: 6000, drugDeductible: 50, dentalBasicPct: 80, dentalMajorPct: 50, dentalLimit: 1750, orthoLimit: 1000,
		visionExam: 75, visionEyewear: 250, visionFrequency: "every 24 months",
		massagePerVisit: 55, massageMax: 600, massageVisits: 12, chiroPerVisit: 45, chiroMax: 500, chiroVisits: 12, physioPerVisit: 55, physioMax: 600, physioVisits: 12,
		rating: 3.6, highlights: []string{"Family coverage", "Dental included", "Travel emergency"},
		provinces: []string{"AB", "SK", "MB", "ON", "BC"}},
	{provider: "Desjardins", planName: "Assurance Essentielle", basePrice: 105, planType: "individual", familyOption: false, deductible: 75, coverageLimit: 100000, smokerAllowed: true,
		drugPct: 80, drugCap: 5000, drugDeductible: 50, dentalBasicPct: 80, dentalMajorPct: 50, dentalLimit: 1500, orthoLimit: 0,
		visionExam: 75, visionEyewear: 200, visionFrequency: "every 24 months",
		massagePerVisit: 50, massageMax: 500, massageVisits: 10, chiroPerVisit: 45, chiroMax: 450, chiroVisits: 10, physioPerVisit: 50, physioMax: 500, physioVisits: 10,
		rating: 3.7, highlights: []string{"Bilingual service", "Quick claims", "Quebec specialist"},
		provinces: []string{"QC", "ON", "NB"}},
	{provider: "Desjardins", planName: "Protection Complète", basePrice: 265, planType: "family", familyOption: true, deductible: 0, coverageLimit: 300000, smokerAllowed: true,
		drugPct: 90, drugCap: 12000, drugDeductible: 0, dentalBasicPct: 90, dentalMajorPct: 70, dentalLimit: 3500, orthoLimit: 2500,
		visionExam: 125, visionEyewear: 400, visionFrequency: "every 24 months",
		massagePerVisit: 80, massageMax: 1200, massageVisits: 20, chiroPerVisit: 65, chiroMax: 1000, chiroVisits: 18, physioPerVisit: 80, physioMax: 1200, physioVisits: 20,
		rating: 4.4, highlights: []string{"Zero deductible", "High orthodontic", "Bilingual app"},
		provinces: []string{"QC", "ON", "NB", "NS"}},
	{provider: "iA Financial", planName: "Value Health", basePrice: 82, planType: "individual", familyOption: false, deductible: 150, coverageLimit: 75000, smokerAllowed: true,
		drugPct: 70, drugCap: 3500, drugDeductible: 75, dentalBasicPct: 70, dentalMajorPct: 0, dentalLimit: 1000, orthoLimit: 0,
		visionExam: 50, visionEyewear: 150, visionFrequency: "every 24 months",
		massagePerVisit: 40, massageMax: 350, massageVisits: 8, chiroPerVisit: 35, chiroMax: 300, chiroVisits: 8, physioPerVisit: 40, physioMax: 350, physioVisits: 8,
		rating: 3.1, highlights: []string{"Affordable", "Online portal", "Fast approval"},
		provinces: []string{"QC", "ON", "AB", "BC"}},
	{provider: "iA Financial", planName: "Complete Health Plus", basePrice: 215, planType: "family", familyOption: true, deductible: 25, coverageLimit: 250000, smokerAllowed: true,
		drugPct: 85, drugCap: 9000, drugDeductible: 25, dentalBasicPct: 85, dentalMajorPct: 65, dentalLimit: 2750, orthoLimit: 2000,
		visionExam: 100, visionEyewear: 350, visionFrequency: "every 24 months",
		massagePerVisit: 70, massageMax: 900, massageVisits: 15, chiroPerVisit: 55, chiroMax: 700, chiroVisits: 12, physioPerVisit: 70, physioMax: 900, physioVisits: 15,
		rating: 4.0, highlights: []string{"Family dental", "Low deductible", "Mental health"},
		provinces: []string{"QC", "ON", "AB", "BC", "MB", "SK"}},
	{provider: "GreenShield", planName: "GSC Starter", basePrice: 85, planType: "individual", familyOption: false, deductible: 100, coverageLimit: 100000, smokerAllowed: true,
		drugPct: 75, drugCap: 4000, drugDeductible: 50, dentalBasicPct: 75, dentalMajorPct: 40, dentalLimit: 1250, orthoLimit: 0,
		visionExam: 75, visionEyewear: 200, visionFrequency: "every 24 months",
		massagePerVisit: 45, massageMax: 450, massageVisits: 10, chiroPerVisit: 40, chiroMax: 400, chiroVisits: 10, physioPerVisit: 50, physioMax: 500, physioVisits: 10,
		rating: 3.4, highlights: []string{"Digital-first", "Fast claims", "Wellness app"},
		provinces: []string{"ON", "BC", "AB", "QC", "MB", "SK", "NS", "NB"}},
	{provider: "GreenShield", planName: "GSC Health Plus", basePrice: 195, planType: "couple", familyOption: true, deductible: 50, coverageLimit: 200000, smokerAllowed: true,
		drugPct: 85, drugCap: 8500, drugDeductible: 25, dentalBasicPct: 85, dentalMajorPct: 60, dentalLimit: 2500, orthoLimit: 1500,
		visionExam: 100, visionEyewear: 350, visionFrequency: "every 24 months",
		massagePerVisit: 65, massageMax: 850, massageVisits: 15, chiroPerVisit: 55, chiroMax: 700, chiroVisits: 12, physioPerVisit: 65, physioMax: 850, physioVisits: 15,
		rating: 4.0, highlights: []string{"Couples plan", "Virtual care", "Pharmacy network"},
		provinces: []string{"ON", "BC", "AB", "QC", "MB", "SK", "NS", "NB"}},
	{provider: "Equitable Life", planName: "HealthConnex Basic", basePrice: 92, planType: "individual", familyOption: false, deductible: 100, coverageLimit: 100000, smokerAllowed: true,
		drugPct: 75, drugCap: 4500, drugDeductible: 50, dentalBasicPct: 75, dentalMajorPct: 50, dentalLimit: 1500, orthoLimit: 0,
		visionExam: 75, visionEyewear: 200, visionFrequency: "every 24 months",
		massagePerVisit: 50, massageMax: 500, massageVisits: 10, chiroPerVisit: 40, chiroMax: 400, chiroVisits: 10, physioPerVisit: 50, physioMax: 500, physioVisits: 10,
		rating: 3.3, highlights: []string{"Guaranteed acceptance", "Stable premiums"},
		provinces: []string{"ON", "AB", "BC", "QC"}},
	{provider: "Equitable Life", planName: "HealthConnex Comprehensive", basePrice: 225, planType: "family", familyOption: true, deductible: 0, coverageLimit: 300000, smokerAllowed: true,
		drugPct: 90, drugCap: 10000, drugDeductible: 0, dentalBasicPct: 90, dentalMajorPct: 70, dentalLimit: 3000, orthoLimit: 2000,
		visionExam: 100, visionEyewear: 400, visionFrequency: "every 24 months",
		massagePerVisit: 75, massageMax: 1000, massageVisits: 18, chiroPerVisit: 60, chiroMax: 800, chiroVisits: 15, physioPerVisit: 75, physioMax: 1000, physioVisits: 18,
		rating: 4.3, highlights: []string{"Zero deductible", "High dental", "Family friendly"},
		provinces: []string{"ON", "AB", "BC", "QC", "MB", "SK"}},
	{provider: "SSQ Insurance", planName: "SSQ Individuel Santé", basePrice: 110, planType: "individual", familyOption: false, deductible: 75, coverageLimit: 100000, smokerAllowed: true,
		drugPct: 80, drugCap: 5500, drugDeductible: 50, dentalBasicPct: 80, dentalMajorPct: 50, dentalLimit: 1750, orthoLimit: 500,
		visionExam: 75, visionEyewear: 250, visionFrequency: "every 24 months",
		massagePerVisit: 55, massageMax: 550, massageVisits: 10, chiroPerVisit: 45, chiroMax: 450, chiroVisits: 10, physioPerVisit: 55, physioMax: 550, physioVisits: 10,
		rating: 3.6, highlights: []string{"Quebec focused", "Bilingual", "Competitive rates"},
		provinces: []string{"QC", "ON"}},
}

type addonSeed struct {
	name        string
	price       float64
	description string
}

var addonSeeds = []addonSeed{
	{name: "vision", price: 15, description: "Enhanced vision coverage with annual eye exams and premium eyewear allowance"},
	{name: "prescription", price: 20, description: "Extended prescription drug coverage with higher annual caps"},
	{name: "dental_plus", price: 25, description: "Enhanced dental coverage including cosmetic procedures"},
	{name: "travel", price: 18, description: "International travel medical emergency coverage"},
	{name: "mental_health", price: 22, description: "Expanded mental health and counselling coverage"},
	{name: "wellness", price: 12, description: "Wellness spending account for gym, fitness, and nutrition"},
}

// Run wipes and recreates the catalog in a single transaction. The seed is
// fully deterministic: same providers, plans, addons, and modifiers on every
// run.
func Run(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.PricingModifier{}, &models.PlanAddon{}, &models.PlanProvince{},
			&models.InsurancePlan{}, &models.Provider{},
		} {
			if err := tx.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear existing catalog: %w", err)
			}
		}

		providerIDs := make(map[string]uint)
		for _, seed := range providerSeeds {
			provider := seed
			if err := tx.Create(&provider).Error; err != nil {
				return fmt.Errorf("failed to create provider %s: %w", provider.Name, err)
			}
			providerIDs[provider.Name] = provider.ID
		}

		for _, seed := range planSeeds {
			plan := models.InsurancePlan{
				ProviderID:             providerIDs[seed.provider],
				PlanName:               seed.planName,
				CoverageType:           "health",
				PlanType:               seed.planType,
				Description:            fmt.Sprintf("%s by %s — comprehensive health and dental insurance for Canadians.", seed.planName, seed.provider),
				BasePrice:              seed.basePrice,
				FamilyOption:           seed.familyOption,
				MinAge:                 18,
				MaxAge:                 65,
				SmokerAllowed:          seed.smokerAllowed,
				Deductible:             seed.deductible,
				CoverageLimit:          seed.coverageLimit,
				DrugCoveragePct:        seed.drugPct,
				DrugAnnualCap:          seed.drugCap,
				DrugDeductible:         seed.drugDeductible,
				DentalBasicPct:         seed.dentalBasicPct,
				DentalMajorPct:         seed.dentalMajorPct,
				DentalAnnualLimit:      seed.dentalLimit,
				DentalOrthodonticLimit: seed.orthoLimit,
				VisionExamAmount:       seed.visionExam,
				VisionEyewearAmount:    seed.visionEyewear,
				VisionFrequency:        seed.visionFrequency,
				MassagePerVisit:        seed.massagePerVisit,
				MassageAnnualMax:       seed.massageMax,
				MassageVisitLimit:      seed.massageVisits,
				ChiroPerVisit:          seed.chiroPerVisit,
				ChiroAnnualMax:         seed.chiroMax,
				ChiroVisitLimit:        seed.chiroVisits,
				PhysioPerVisit:         seed.physioPerVisit,
				PhysioAnnualMax:        seed.physioMax,
				PhysioVisitLimit:       seed.physioVisits,
				Rating:                 seed.rating,
				Highlights:             seed.highlights,
			}
			if err := tx.Create(&plan).Error; err != nil {
				return fmt.Errorf("failed to create plan %s: %w", plan.PlanName, err)
			}

			for _, code := range seed.provinces {
				if err := tx.Create(&models.PlanProvince{PlanID: plan.ID, ProvinceCode: code}).Error; err != nil {
					return fmt.Errorf("failed to create province row for %s: %w", plan.PlanName, err)
				}
			}

			if err := createAddons(tx, plan.ID); err != nil {
				return err
			}
			if err := createModifiers(tx, plan.ID); err != nil {
				return err
			}
		}

		log.Printf("✅ Seeded %d providers and %d plans", len(providerSeeds), len(planSeeds))
		return nil
	})
}

// createAddons attaches 3-5 addons to a plan with a small id-derived price
// variation, matching the shipped catalog
func createAddons(tx *gorm.DB, planID uint) error {
	count := 3 + int(planID*7%3)
	variation := float64(planID%5) * 2

	for _, seed := range addonSeeds[:count] {
		addon := models.PlanAddon{
			PlanID:      planID,
			AddonName:   seed.name,
			AddonPrice:  seed.price + variation,
			Description: seed.description,
		}
		if err := tx.Create(&addon).Error; err != nil {
			return fmt.Errorf("failed to create addon %s: %w", seed.name, err)
		}
	}
	return nil
}

func createModifiers(tx *gorm.DB, planID uint) error {
	type bracket struct {
		name     string
		min, max int
		value    float64
	}
	brackets := []bracket{
		{name: "Young Adult (18-25)", min: 18, max: 25, value: 10},
		{name: "Adult (26-40)", min: 26, max: 40, value: 25},
		{name: "Middle Age (41-55)", min: 41, max: 55, value: 50},
		{name: "Senior (56-65)", min: 56, max: 65, value: 85},
	}

	for _, b := range brackets {
		b := b
		mod := models.PricingModifier{
			PlanID:         planID,
			ModifierName:   b.name,
			ConditionKey:   models.ConditionAge,
			ConditionValue: "range",
			AgeMin:         &b.min,
			AgeMax:         &b.max,
			ModifierType:   models.ModifierFlat,
			ModifierValue:  b.value,
		}
		if err := tx.Create(&mod).Error; err != nil {
			return fmt.Errorf("failed to create age modifier: %w", err)
		}
	}

	smoker := models.PricingModifier{
		PlanID:         planID,
		ModifierName:   "Smoker Surcharge",
		ConditionKey:   models.ConditionSmoker,
		ConditionValue: "yes",
		ModifierType:   models.ModifierPercentage,
		ModifierValue:  20,
	}
	if err := tx.Create(&smoker).Error; err != nil {
		return fmt.Errorf("failed to create smoker modifier: %w", err)
	}
	return nil
}
