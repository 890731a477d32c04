package domain

import (
	"strings"
	"time"
)

// ClassOffering is a kind of class the studio runs, with per-package prices
type ClassOffering struct {
	ID          string
	Name        string
	Description *string
	MaxCapacity *int
	Active      bool
	// Prices by tier; tiers without a price are absent
	Prices    map[PackageTier]float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capacity max capacity or def when unset or zero
func (c *ClassOffering) Capacity(def int) int {
	if c.MaxCapacity == nil || *c.MaxCapacity <= 0 {
		return def
	}
	return *c.MaxCapacity
}

// ResolvePrice returns the price of tier for the offering.
// Unknown or unpriced tiers fall back to the single-class price, then to 0.
// Zero means the price is unknown and must be agreed manually.
func ResolvePrice(offering *ClassOffering, tier PackageTier) float64 {
	if offering == nil {
		return 0
	}
	if p, ok := offering.Prices[tier]; ok && p > 0 && tier.IsKnown() {
		return p
	}
	if p, ok := offering.Prices[TierSingle]; ok && p > 0 {
		return p
	}
	return 0
}

// MatchesCategory case-insensitive substring match against any category
func (c *ClassOffering) MatchesCategory(categories []string) bool {
	name := strings.ToLower(c.Name)
	if name == "" {
		return false
	}
	for _, category := range categories {
		if category != "" && strings.Contains(name, strings.ToLower(category)) {
			return true
		}
	}
	return false
}
