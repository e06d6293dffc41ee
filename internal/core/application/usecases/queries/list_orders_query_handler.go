package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foodcourt/internal/core/domain/model/kernel"
	"foodcourt/internal/core/domain/model/order"
	"foodcourt/internal/core/domain/services"
)

// ListOrdersQueryHandler retrieves role-scoped order summaries from the
// database, newest first. An actor with nothing to see gets an empty list,
// not an error.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery(actor)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing scoped to the actor's role. Admins get every
// order; customers get orders they own; couriers get orders they deliver
// plus orders they own, matching the single-order visibility rule.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.scopedRows(ctx, query.Actor())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			tracking  string
			status    string
			total     decimal.Decimal
			resp      ListOrdersQueryResponse
			createdAt time.Time
		)

		err = rows.Scan(&id, &tracking, &resp.StoreName, &status, &total, &createdAt)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.TrackingCode, err = kernel.TrackingCodeFromString(tracking); err != nil {
			return nil, err
		}
		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if resp.Total, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		resp.CreatedAt = createdAt

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h ListOrdersQueryHandler) scopedRows(ctx context.Context, actor services.Actor) (*sql.Rows, error) {
	const summary = `
		SELECT
			o.id,
			o.tracking_code,
			s.name,
			o.status,
			o.total,
			o.created_at
		FROM orders o
		JOIN stores s ON s.id = o.store_id
	`

	db := h.db.WithContext(ctx)

	if actor.Role == services.RoleAdmin {
		return db.Raw(summary + ` ORDER BY o.created_at DESC, o.id`).Rows()
	}

	// Couriers see orders they deliver and orders they placed themselves,
	// the same rule the access policy applies on single-order reads.
	linkFilter := "l.is_owner"
	if actor.Role == services.RoleCourier {
		linkFilter = "(l.is_courier OR l.is_owner)"
	}

	return db.Raw(summary+`
		JOIN user_order_links l ON l.order_id = o.id
		WHERE l.user_id = ? AND `+linkFilter+`
		ORDER BY o.created_at DESC, o.id
	`, actor.ID.Bytes()).Rows()
}
