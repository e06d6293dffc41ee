package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
	"foodcourt/internal/pkg/errs"
)

// GetOrderQueryHandler assembles the read model of a single order straight
// from SQL. The order's user links are loaded first and checked against the
// access policy before any detail rows are read.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID, actor)
//
//	resp, err := handler.Handle(ctx, query)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order
//	case errors.Is(err, errs.ErrForbidden):
//	    // actor has no link to this order
//	}
type GetOrderQueryHandler struct {
	db     *gorm.DB
	access services.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for single-order projections.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		db:     db,
		access: services.NewAccessPolicy(),
	}
}

// Handle executes the query and returns the full order projection.
// Returns an ObjectNotFoundError when the order does not exist and a
// ForbiddenError when the actor may not view it. History entries are
// returned oldest first.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.fetchHeader(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	links, err := h.fetchLinks(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	actor := query.Actor()
	if !h.access.CanView(actor, links) {
		return GetOrderQueryResponse{}, errs.NewForbiddenError(
			actor.ID.String(), query.OrderID().String(),
		)
	}

	for _, link := range links {
		if link.IsCourier() {
			courierID := link.UserID()
			resp.CourierID = &courierID
			break
		}
	}

	if resp.Items, err = h.fetchItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.History, err = h.fetchHistory(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) fetchHeader(
	ctx context.Context, orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.tracking_code,
			s.id,
			s.name,
			s.logo,
			o.status,
			o.resolved,
			o.total,
			o.address,
			o.notes,
			o.created_at
		FROM orders o
		JOIN stores s ON s.id = o.store_id
		WHERE o.id = ?
	`, orderID.Bytes()).Row()

	var (
		id        uuid.UUID
		tracking  string
		storeID   uuid.UUID
		status    string
		total     decimal.Decimal
		resp      GetOrderQueryResponse
		createdAt time.Time
	)

	err := row.Scan(
		&id, &tracking, &storeID, &resp.Store.Name, &resp.Store.Logo,
		&status, &resp.Resolved, &total, &resp.Address, &resp.Notes, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("orderId", orderID, err)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.TrackingCode, err = kernel.TrackingCodeFromString(tracking); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Store.ID, err = kernel.UUIDFromBytes(storeID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Status, err = order.ParseStatus(status); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Total, err = kernel.NewMoney(total); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.CreatedAt = createdAt

	return resp, nil
}

func (h GetOrderQueryHandler) fetchLinks(
	ctx context.Context, orderID kernel.UUID,
) ([]order.UserLink, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id, is_owner, is_courier
		FROM user_order_links
		WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]order.UserLink, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			userID    uuid.UUID
			isOwner   bool
			isCourier bool
		)
		if err = rows.Scan(&id, &userID, &isOwner, &isCourier); err != nil {
			return nil, err
		}

		linkID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		linkUserID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}

		link, linkErr := order.RestoreUserLink(linkID, linkUserID, isOwner, isCourier)
		if linkErr != nil {
			return nil, linkErr
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

func (h GetOrderQueryHandler) fetchItems(
	ctx context.Context, orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT i.product_id, p.name, p.description, p.image, i.quantity, i.unit_price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ?
		ORDER BY i.position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			productID uuid.UUID
			item      OrderItemResponse
			unitPrice decimal.Decimal
		)
		err = rows.Scan(
			&productID, &item.ProductName, &item.ProductDescription,
			&item.ProductImage, &item.Quantity, &unitPrice,
		)
		if err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		item.Subtotal = item.UnitPrice.MulQuantity(item.Quantity)

		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) fetchHistory(
	ctx context.Context, orderID kernel.UUID,
) ([]HistoryEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, comment, occurred_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryEntryResponse, 0)
	for rows.Next() {
		var (
			status string
			entry  HistoryEntryResponse
		)
		if err = rows.Scan(&status, &entry.Comment, &entry.OccurredAt); err != nil {
			return nil, err
		}

		if entry.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}
