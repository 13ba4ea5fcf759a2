package orders

import (
	"github.com/google/uuid"
)

type OrderItemPayload struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
	Notes    string    `json:"notes,omitempty"`
}

type OrderCreateRequest struct {
	CustomerID  uuid.UUID          `json:"customer_id"`
	TableNumber string             `json:"table_number,omitempty"`
	Items       []OrderItemPayload `json:"items"`
	Priority    int                `json:"priority,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

type OrderUpdateRequest struct {
	Priority *int               `json:"priority,omitempty"`
	Items    []OrderItemPayload `json:"items,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderAssignRequest struct {
	StationID *uuid.UUID `json:"station_id"`
}
