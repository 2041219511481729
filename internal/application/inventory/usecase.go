package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thesarya/expense/internal/application/dto"
	"github.com/thesarya/expense/internal/domain"
	"github.com/thesarya/expense/internal/domain/entity"
	"github.com/thesarya/expense/internal/domain/repository"
)

// UseCase inventory CRUD plus the explicit quantity actions (use, damage,
// repair, assign, direct quantity update). Every quantity mutation runs in a
// transaction with the row locked, so two concurrent "use" calls cannot both
// drain the same stock.
type UseCase struct {
	items repository.InventoryRepository
	tx    TxRunner
	now   func() time.Time
}

// NewUseCase builds the inventory use case.
func NewUseCase(items repository.InventoryRepository, tx TxRunner) *UseCase {
	return &UseCase{items: items, tx: tx, now: time.Now}
}

// WithClock replaces the clock; tests use this for deterministic timestamps.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create adds an inventory item. Assets default to Available; Stock items
// carry no status.
func (uc *UseCase) Create(centre, role string, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if !entity.IsValidItemType(in.ItemType) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	targetCentre := centre
	if role == entity.RoleAdmin {
		if in.Centre == "" {
			return nil, domain.ErrInvalidInput
		}
		targetCentre = in.Centre
	}
	status := ""
	assignedTo := ""
	if in.ItemType == entity.ItemTypeAsset {
		status = in.Status
		if status == "" {
			status = entity.StatusAvailable
		}
		if !entity.IsValidStatus(status) {
			return nil, domain.ErrInvalidInput
		}
		assignedTo = in.AssignedTo
	}

	now := uc.now()
	item := &entity.InventoryItem{
		ID:               uuid.New().String(),
		ItemName:         in.ItemName,
		Category:         in.Category,
		Centre:           targetCentre,
		Quantity:         in.Quantity,
		OriginalQuantity: in.OriginalQuantity,
		ItemType:         in.ItemType,
		Status:           status,
		AssignedTo:       assignedTo,
		Attachments:      dto.ToAttachmentEntities(in.Attachments),
		LastUpdated:      now,
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	return toInventoryResponse(item), nil
}

// List returns inventory visible to the caller.
func (uc *UseCase) List(centre, role string, in dto.ListInventoryRequest) (*dto.InventoryListResponse, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.DefaultPage()

	f := repository.InventoryFilter{
		Category: in.Category,
		Search:   in.Search,
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if role != entity.RoleAdmin {
		f.Centre = centre
	}
	list, err := uc.items.List(f)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryListResponse{
		Items: make([]dto.InventoryResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, item := range list {
		out.Items = append(out.Items, *toInventoryResponse(item))
	}
	return out, nil
}

// Update applies a partial, non-quantity update. Quantity changes go through
// the action methods so they stay transactional.
func (uc *UseCase) Update(id, centre, role string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkCentre(item, centre, role); err != nil {
		return nil, err
	}
	if in.ItemName != nil {
		item.ItemName = *in.ItemName
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.OriginalQuantity != nil {
		item.OriginalQuantity = in.OriginalQuantity
	}
	if in.ItemType != nil {
		if !entity.IsValidItemType(*in.ItemType) {
			return nil, domain.ErrInvalidInput
		}
		item.ItemType = *in.ItemType
	}
	if in.Status != nil {
		if !entity.IsValidStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		item.Status = *in.Status
	}
	if in.AssignedTo != nil {
		item.AssignedTo = *in.AssignedTo
	}
	item.LastUpdated = uc.now()
	if err := uc.items.Update(item); err != nil {
		return nil, err
	}
	return toInventoryResponse(item), nil
}

// Delete removes an item outright.
func (uc *UseCase) Delete(id, centre, role string) error {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := checkCentre(item, centre, role); err != nil {
		return err
	}
	return uc.items.Delete(id)
}

// Use consumes count units and stamps LastUsed. Refuses to take the
// quantity below zero.
func (uc *UseCase) Use(ctx context.Context, id, centre, role string, count int) (*dto.InventoryResponse, error) {
	return uc.withLockedItem(ctx, id, centre, role, count, func(item *entity.InventoryItem) error {
		if item.Quantity < count {
			return domain.ErrInsufficientStock
		}
		item.Quantity -= count
		item.LastUsed = uc.now()
		return nil
	})
}

// Damage moves count units from usable stock to the damaged counter.
func (uc *UseCase) Damage(ctx context.Context, id, centre, role string, count int) (*dto.InventoryResponse, error) {
	return uc.withLockedItem(ctx, id, centre, role, count, func(item *entity.InventoryItem) error {
		if item.Quantity < count {
			return domain.ErrInsufficientStock
		}
		item.Quantity -= count
		item.Damaged += count
		return nil
	})
}

// Repair returns count units to usable stock. The damaged counter is
// decremented by the same amount, floored at zero.
func (uc *UseCase) Repair(ctx context.Context, id, centre, role string, count int) (*dto.InventoryResponse, error) {
	return uc.withLockedItem(ctx, id, centre, role, count, func(item *entity.InventoryItem) error {
		item.Damaged -= count
		if item.Damaged < 0 {
			item.Damaged = 0
		}
		item.Repaired += count
		item.Quantity += count
		return nil
	})
}

// SetQuantity overwrites the quantity directly (stock correction).
func (uc *UseCase) SetQuantity(ctx context.Context, id, centre, role string, quantity int) (*dto.InventoryResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.withLockedItem(ctx, id, centre, role, 1, func(item *entity.InventoryItem) error {
		item.Quantity = quantity
		return nil
	})
}

// Assign hands an asset to a person and marks it Assigned. Stock items
// cannot be assigned.
func (uc *UseCase) Assign(ctx context.Context, id, centre, role, assignedTo string) (*dto.InventoryResponse, error) {
	if assignedTo == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.withLockedItem(ctx, id, centre, role, 1, func(item *entity.InventoryItem) error {
		if item.ItemType != entity.ItemTypeAsset {
			return domain.ErrConflict
		}
		item.AssignedTo = assignedTo
		item.Status = entity.StatusAssigned
		return nil
	})
}

// withLockedItem runs mutate under a row lock and persists the result with a
// fresh LastUpdated stamp.
func (uc *UseCase) withLockedItem(
	ctx context.Context,
	id, centre, role string,
	count int,
	mutate func(item *entity.InventoryItem) error,
) (*dto.InventoryResponse, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.InventoryResponse
	err := uc.tx.Run(ctx, func(items repository.InventoryRepository) error {
		item, err := items.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := checkCentre(item, centre, role); err != nil {
			return err
		}
		if err := mutate(item); err != nil {
			return err
		}
		item.LastUpdated = uc.now()
		if err := items.Update(item); err != nil {
			return err
		}
		out = toInventoryResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func checkCentre(item *entity.InventoryItem, centre, role string) error {
	if role != entity.RoleAdmin && item.Centre != centre {
		return domain.ErrForbidden
	}
	return nil
}

func toInventoryResponse(item *entity.InventoryItem) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:               item.ID,
		ItemName:         item.ItemName,
		Category:         item.Category,
		Centre:           item.Centre,
		Quantity:         item.Quantity,
		OriginalQuantity: item.OriginalQuantity,
		Damaged:          item.Damaged,
		Repaired:         item.Repaired,
		ItemType:         item.ItemType,
		Status:           item.Status,
		AssignedTo:       item.AssignedTo,
		Attachments:      dto.ToAttachmentDTOs(item.Attachments),
		LastUpdated:      item.LastUpdated,
		LastUsed:         item.LastUsed,
	}
}
