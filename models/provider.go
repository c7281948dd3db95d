package models

import (
	"gorm.io/gorm"
)

// Provider represents an insurance company offering one or more plans
type Provider struct {
	gorm.Model

	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	Website      string `json:"website"`
	ContactEmail string `json:"contact_email"`

	// Branding used by the frontend plan cards
	LogoColor string `gorm:"default:'#1E40AF'" json:"logo_color"`
	LogoURL   string `json:"logo_url"`

	// Base URL users are sent to when they click "Enroll"
	EnrollmentBaseURL string `json:"enrollment_base_url"`

	// Relations
	Plans []InsurancePlan `gorm:"foreignKey:ProviderID" json:"plans,omitempty"`
}
