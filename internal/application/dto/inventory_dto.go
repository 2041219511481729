package dto

import "time"

// CreateInventoryRequest input for adding an inventory item.
type CreateInventoryRequest struct {
	ItemName         string          `json:"item_name" validate:"required,min=1,max=200"`
	Category         string          `json:"category" validate:"required,min=1,max=100"`
	Centre           string          `json:"centre"` // ignored for staff; their token centre wins
	Quantity         int             `json:"quantity" validate:"min=0"`
	OriginalQuantity *int            `json:"original_quantity"`
	ItemType         string          `json:"item_type" validate:"required,oneof=Stock Asset"`
	Status           string          `json:"status"`
	AssignedTo       string          `json:"assigned_to"`
	Attachments      []AttachmentDTO `json:"attachments"`
}

// UpdateInventoryRequest partial update; nil fields are left untouched.
// Quantity changes go through the action endpoints, not here.
type UpdateInventoryRequest struct {
	ItemName         *string `json:"item_name"`
	Category         *string `json:"category"`
	OriginalQuantity *int    `json:"original_quantity"`
	ItemType         *string `json:"item_type"`
	Status           *string `json:"status"`
	AssignedTo       *string `json:"assigned_to"`
}

// InventoryActionRequest input for use/damage/repair/quantity actions.
type InventoryActionRequest struct {
	Count int `json:"count" validate:"min=0"`
}

// AssignRequest input for assigning an asset to a person.
type AssignRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required,min=1,max=200"`
}

// InventoryResponse inventory item output.
type InventoryResponse struct {
	ID               string          `json:"id"`
	ItemName         string          `json:"item_name"`
	Category         string          `json:"category"`
	Centre           string          `json:"centre"`
	Quantity         int             `json:"quantity"`
	OriginalQuantity *int            `json:"original_quantity,omitempty"`
	Damaged          int             `json:"damaged"`
	Repaired         int             `json:"repaired"`
	ItemType         string          `json:"item_type"`
	Status           string          `json:"status,omitempty"`
	AssignedTo       string          `json:"assigned_to,omitempty"`
	Attachments      []AttachmentDTO `json:"attachments,omitempty"`
	LastUpdated      time.Time       `json:"last_updated"`
	LastUsed         time.Time       `json:"last_used,omitempty"`
}

// InventoryListResponse paginated inventory list.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ListInventoryRequest query filters for inventory listings.
type ListInventoryRequest struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}
