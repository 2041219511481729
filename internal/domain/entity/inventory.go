package entity

import "time"

// Item types for InventoryItem.
const (
	ItemTypeStock = "Stock"
	ItemTypeAsset = "Asset"
)

// Status values, meaningful for Asset items only.
const (
	StatusAvailable   = "Available"
	StatusAssigned    = "Assigned"
	StatusNeedsRepair = "Needs Repair"
	StatusDiscarded   = "Discarded"
)

// IsValidItemType reports whether s is Stock or Asset.
func IsValidItemType(s string) bool {
	return s == ItemTypeStock || s == ItemTypeAsset
}

// IsValidStatus reports whether s is an accepted asset status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusNeedsRepair, StatusDiscarded:
		return true
	}
	return false
}

// InventoryItem tracks stock or an asset at a centre.
//
// Quantity is mutated only through explicit actions (use, damage, repair,
// direct quantity update). OriginalQuantity is an optional baseline used for
// relative low-stock detection; nil means the baseline was never recorded.
type InventoryItem struct {
	ID               string
	ItemName         string
	Category         string
	Centre           string
	Quantity         int // non-negative
	OriginalQuantity *int
	Damaged          int // non-negative counter
	Repaired         int // non-negative counter
	ItemType         string // Stock | Asset
	Status           string // Asset only
	AssignedTo       string // Asset only, optional
	Attachments      []Attachment
	LastUpdated      time.Time
	LastUsed         time.Time
}
