// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order row carries the header; items, status history, and user links live
// in child tables keyed by the order ID. The tracking code carries a unique
// index so no two orders can ever share one.
type OrderDTO struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TrackingCode string             `gorm:"type:varchar(32);uniqueIndex;not null"`
	StoreID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	CardID       *uuid.UUID         `gorm:"type:uuid"`
	Status       string             `gorm:"type:varchar(16);not null;index"`
	Resolved     bool               `gorm:"not null"`
	Total        decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Address      string             `gorm:"type:varchar(512);not null"`
	Notes        string             `gorm:"type:text"`
	CreatedAt    time.Time          `gorm:"not null"`
	Items        []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History      []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Links        []UserOrderLinkDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line item. Position preserves the
// order lines were submitted in; item IDs are random and carry no ordering.
// UnitPrice is the price snapshot taken at order creation; it never follows
// later catalog changes.
type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"type:int;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO represents one persisted entry of an order's status trail.
type StatusHistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(16);not null"`
	Comment    string    `gorm:"type:varchar(512)"`
	OccurredAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for status history entities.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// UserOrderLinkDTO represents one persisted user-order relationship.
// The owner link records who placed the order; the courier link records who
// delivers it.
type UserOrderLinkDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IsOwner   bool      `gorm:"not null"`
	IsCourier bool      `gorm:"not null"`
}

// TableName specifies the database table name for user order link entities.
func (UserOrderLinkDTO) TableName() string {
	return "user_order_links"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps the header plus every item, history entry, and user link.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var cardID *uuid.UUID
	if id := aggregate.CardID(); id != nil {
		raw := id.Bytes()
		cardID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   orderID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	history := make([]StatusHistoryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, StatusHistoryDTO{
			ID:         entry.ID().Bytes(),
			OrderID:    orderID,
			Status:     entry.Status().String(),
			Comment:    entry.Comment(),
			OccurredAt: entry.OccurredAt(),
		})
	}

	links := make([]UserOrderLinkDTO, 0, len(aggregate.Links()))
	for _, link := range aggregate.Links() {
		links = append(links, UserOrderLinkDTO{
			ID:        link.ID().Bytes(),
			OrderID:   orderID,
			UserID:    link.UserID().Bytes(),
			IsOwner:   link.IsOwner(),
			IsCourier: link.IsCourier(),
		})
	}

	return OrderDTO{
		ID:           orderID,
		TrackingCode: aggregate.TrackingCode().String(),
		StoreID:      aggregate.StoreID().Bytes(),
		CardID:       cardID,
		Status:       aggregate.Status().String(),
		Resolved:     aggregate.Resolved(),
		Total:        aggregate.Total().Decimal(),
		Address:      aggregate.Address(),
		Notes:        aggregate.Notes(),
		CreatedAt:    aggregate.CreatedAt(),
		Items:        items,
		History:      history,
		Links:        links,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate via RestoreOrder, which recomputes the
// total from the restored items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingCode, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var cardID *kernel.UUID
	if dto.CardID != nil {
		cID, cardErr := kernel.UUIDFromBytes((*dto.CardID)[:])
		if cardErr != nil {
			return nil, cardErr
		}
		cardID = &cID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	links, err := linksToDomain(dto.Links)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, trackingCode, storeID, cardID, status, dto.Resolved,
		dto.Address, dto.Notes, dto.CreatedAt, items, history, links,
	)
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.Item, error) {
	// Preload returns child rows in no particular order.
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Position < dtos[j].Position })

	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.RestoreItem(id, productID, dto.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func historyToDomain(dtos []StatusHistoryDTO) ([]order.HistoryEntry, error) {
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].OccurredAt.Before(dtos[j].OccurredAt) })

	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		status, err := order.ParseStatus(dto.Status)
		if err != nil {
			return nil, err
		}

		entry, err := order.RestoreHistoryEntry(id, status, dto.Comment, dto.OccurredAt)
		if err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, nil
}

func linksToDomain(dtos []UserOrderLinkDTO) ([]order.UserLink, error) {
	links := make([]order.UserLink, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		userID, err := kernel.UUIDFromBytes(dto.UserID[:])
		if err != nil {
			return nil, err
		}

		link, err := order.RestoreUserLink(id, userID, dto.IsOwner, dto.IsCourier)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}
