package models

import (
	"gorm.io/gorm"
)

// Modifier condition keys and types recognized by the pricing engine
const (
	ConditionAge    = "age"
	ConditionSmoker = "smoker"

	ModifierFlat       = "flat"
	ModifierPercentage = "percentage"
)

// PricingModifier is a rule that adjusts a plan's base price for a requester
// attribute. Age brackets are inclusive on both ends; multiple brackets may
// exist per plan and every matching bracket accumulates.
type PricingModifier struct {
	gorm.Model
	PlanID uint `gorm:"not null;index" json:"plan_id"`

	ModifierName   string  `gorm:"size:100;not null" json:"modifier_name"`
	ConditionKey   string  `gorm:"size:20;not null" json:"condition_key"`   // age, smoker
	ConditionValue string  `gorm:"size:50;not null" json:"condition_value"` // age range marker, or "yes"
	AgeMin         *int    `json:"age_min"`                                 // only meaningful when condition_key = age
	AgeMax         *int    `json:"age_max"`
	ModifierType   string  `gorm:"size:20;not null" json:"modifier_type"` // flat, percentage
	ModifierValue  float64 `gorm:"not null" json:"modifier_value"`
}
