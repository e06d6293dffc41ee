package http

import (
	"time"

	"foodcourt/internal/core/application/usecases/queries"
)

// CreateOrderRequest is the JSON body of POST /api/v1/orders.
type CreateOrderRequest struct {
	StoreID string                   `json:"storeId" validate:"required,uuid"`
	CardID  *string                  `json:"cardId,omitempty" validate:"omitempty,uuid"`
	Address string                   `json:"address" validate:"required,max=512"`
	Notes   string                   `json:"notes,omitempty" validate:"max=2000"`
	Items   []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest is one requested line of a new order.
type CreateOrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateOrderStatusRequest is the JSON body of PATCH /api/v1/orders/:orderId/status.
type UpdateOrderStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment,omitempty" validate:"max=512"`
}

// StoreSummary is the embedded store view inside an order response.
type StoreSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// OrderItem is one projected order line in a response.
type OrderItem struct {
	ProductID          string `json:"productId"`
	ProductName        string `json:"productName"`
	ProductDescription string `json:"productDescription,omitempty"`
	ProductImage       string `json:"productImage,omitempty"`
	Quantity           int    `json:"quantity"`
	UnitPrice          string `json:"unitPrice"`
	Subtotal           string `json:"subtotal"`
}

// HistoryEntry is one projected status change in a response, oldest first.
type HistoryEntry struct {
	Status     string    `json:"status"`
	Comment    string    `json:"comment,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderResponse is the full order view returned by create, get, and update.
type OrderResponse struct {
	ID           string         `json:"id"`
	TrackingCode string         `json:"trackingCode"`
	Store        StoreSummary   `json:"store"`
	Status       string         `json:"status"`
	Resolved     bool           `json:"resolved"`
	Total        string         `json:"total"`
	Address      string         `json:"address"`
	Notes        string         `json:"notes,omitempty"`
	CourierID    *string        `json:"courierId,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	Items        []OrderItem    `json:"items"`
	History      []HistoryEntry `json:"history"`
}

// OrderSummary is one order in a listing response.
type OrderSummary struct {
	ID           string    `json:"id"`
	TrackingCode string    `json:"trackingCode"`
	StoreName    string    `json:"storeName"`
	Status       string    `json:"status"`
	Total        string    `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ErrorResponse is the JSON error body returned by every handler.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func orderResponseFromProjection(p queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, OrderItem{
			ProductID:          item.ProductID.String(),
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			ProductImage:       item.ProductImage,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice.String(),
			Subtotal:           item.Subtotal.String(),
		})
	}

	history := make([]HistoryEntry, 0, len(p.History))
	for _, entry := range p.History {
		history = append(history, HistoryEntry{
			Status:     entry.Status.String(),
			Comment:    entry.Comment,
			OccurredAt: entry.OccurredAt,
		})
	}

	var courierID *string
	if p.CourierID != nil {
		s := p.CourierID.String()
		courierID = &s
	}

	return OrderResponse{
		ID:           p.ID.String(),
		TrackingCode: p.TrackingCode.String(),
		Store: StoreSummary{
			ID:   p.Store.ID.String(),
			Name: p.Store.Name,
			Logo: p.Store.Logo,
		},
		Status:    p.Status.String(),
		Resolved:  p.Resolved,
		Total:     p.Total.String(),
		Address:   p.Address,
		Notes:     p.Notes,
		CourierID: courierID,
		CreatedAt: p.CreatedAt,
		Items:     items,
		History:   history,
	}
}

func orderSummaryFromProjection(p queries.ListOrdersQueryResponse) OrderSummary {
	return OrderSummary{
		ID:           p.ID.String(),
		TrackingCode: p.TrackingCode.String(),
		StoreName:    p.StoreName,
		Status:       p.Status.String(),
		Total:        p.Total.String(),
		CreatedAt:    p.CreatedAt,
	}
}
