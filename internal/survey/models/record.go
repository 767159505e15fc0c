package models

import (
	"time"
)

// AnswerRecord is the accumulated survey state for one citizen, keyed by
// Reference.
//
// Invariants:
//   - Every answer field is optional; the zero value means unanswered
//   - Answering a question again overwrites the previous answer
//   - Fields belonging to branches the citizen did not take may stay unset
//     (or hold a stale answer from an earlier branch) and are never required
//   - UserRecommendations rows are appended, never removed
type AnswerRecord struct {
	Reference string `json:"reference"`

	OwnershipStatus  OwnershipStatus  `json:"ownership_status,omitempty"`
	Country          Country          `json:"country,omitempty"`
	PropertyType     PropertyType     `json:"property_type,omitempty"`
	HouseType        HouseType        `json:"house_type,omitempty"`
	BungalowType     BungalowType     `json:"bungalow_type,omitempty"`
	FlatType         FlatType         `json:"flat_type,omitempty"`
	ParkHomeType     ParkHomeType     `json:"park_home_type,omitempty"`
	HomeAge          *int             `json:"home_age,omitempty"`
	WallType         WallType         `json:"wall_type,omitempty"`
	RoofConstruction RoofConstruction `json:"roof_construction,omitempty"`
	RoofInsulated    RoofInsulated    `json:"roof_insulated,omitempty"`
	OutdoorSpace     OutdoorSpace     `json:"outdoor_space,omitempty"`
	GlazingType      GlazingType      `json:"glazing_type,omitempty"`
	HeatingType      HeatingType      `json:"heating_type,omitempty"`
	HotWaterCylinder HotWaterCylinder `json:"hot_water_cylinder,omitempty"`
	HeatingPattern   HeatingPattern   `json:"heating_pattern,omitempty"`
	Temperature      *float64         `json:"temperature,omitempty"`

	UserRecommendations []UserRecommendation `json:"user_recommendations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAnswerRecord creates an empty record for a freshly issued reference.
func NewAnswerRecord(reference string, now time.Time) *AnswerRecord {
	return &AnswerRecord{
		Reference: reference,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsFlat reports whether the home is (or may be) a flat. An unanswered
// property type does not rule a flat out.
func (a *AnswerRecord) IsFlat() bool {
	return a.PropertyType == "" || a.PropertyType == PropertyFlat
}

// FlatOnFloor reports whether the home is a flat on one of the given floors.
// A flat type left over from an abandoned flat branch is ignored once the
// property type says otherwise.
func (a *AnswerRecord) FlatOnFloor(floors ...FlatType) bool {
	if !a.IsFlat() || a.FlatType == "" {
		return false
	}
	return oneOf(a.FlatType, floors...)
}

// YearBuiltBetween reports whether the year built is known and within
// [from, to].
func (a *AnswerRecord) YearBuiltBetween(from, to int) bool {
	return a.HomeAge != nil && *a.HomeAge >= from && *a.HomeAge <= to
}

// Clone returns a deep copy so callers can mutate without aliasing a stored
// record.
func (a *AnswerRecord) Clone() *AnswerRecord {
	if a == nil {
		return nil
	}
	c := *a
	if a.HomeAge != nil {
		v := *a.HomeAge
		c.HomeAge = &v
	}
	if a.Temperature != nil {
		v := *a.Temperature
		c.Temperature = &v
	}
	if a.UserRecommendations != nil {
		c.UserRecommendations = append([]UserRecommendation(nil), a.UserRecommendations...)
	}
	return &c
}
