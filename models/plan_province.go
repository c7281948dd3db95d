package models

import (
	"gorm.io/gorm"
)

// PlanProvince marks a plan as available in a Canadian province or territory.
// A plan with zero province rows is available nowhere.
type PlanProvince struct {
	gorm.Model
	PlanID       uint   `gorm:"not null;index;uniqueIndex:idx_plan_province" json:"plan_id"`
	ProvinceCode string `gorm:"size:2;not null;uniqueIndex:idx_plan_province" json:"province_code"`
}

// Province is a supported province/territory code with its display name
type Province struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Provinces is the static list of the 13 Canadian provinces and territories,
// ordered by code
var Provinces = []Province{
	{Code: "AB", Name: "Alberta"},
	{Code: "BC", Name: "British Columbia"},
	{Code: "MB", Name: "Manitoba"},
	{Code: "NB", Name: "New Brunswick"},
	{Code: "NL", Name: "Newfoundland and Labrador"},
	{Code: "NS", Name: "Nova Scotia"},
	{Code: "NT", Name: "Northwest Territories"},
	{Code: "NU", Name: "Nunavut"},
	{Code: "ON", Name: "Ontario"},
	{Code: "PE", Name: "Prince Edward Island"},
	{Code: "QC", Name: "Quebec"},
	{Code: "SK", Name: "Saskatchewan"},
	{Code: "YT", Name: "Yukon"},
}

// ValidProvince reports whether code is one of the 13 supported
// province/territory codes. Matching is case-insensitive at the boundary;
// callers pass the already-uppercased code.
func ValidProvince(code string) bool {
	for _, p := range Provinces {
		if p.Code == code {
			return true
		}
	}
	return false
}
