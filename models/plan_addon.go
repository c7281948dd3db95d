package models

import (
	"gorm.io/gorm"
)

// PlanAddon is an optional named rider purchasable on a plan for a fixed
// incremental monthly price. Addon names are matched case-insensitively
// against requester-selected addon names.
type PlanAddon struct {
	gorm.Model
	PlanID      uint    `gorm:"not null;index" json:"plan_id"`
	AddonName   string  `gorm:"size:100;not null" json:"addon_name"`
	AddonPrice  float64 `gorm:"not null" json:"addon_price"`
	Description string  `json:"description"`
}
