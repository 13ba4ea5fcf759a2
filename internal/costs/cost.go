package costs

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/costcategory"
	"github.com/brigadeclub/brigade/pkg/money"
)

type CostID = uuid.UUID
type CostCenterID = uuid.UUID

// Cost is a single recorded expense attributed to a cost center.
type Cost struct {
	ID           CostID      `json:"id" bson:"_id"`
	CostCenterID *uuid.UUID  `json:"cost_center_id,omitempty" bson:"cost_center_id,omitempty"`
	Category     string      `json:"category" bson:"category"`
	Description  string      `json:"description" bson:"description"`
	Amount       money.Money `json:"amount" bson:"amount"`
	IncurredAt   time.Time   `json:"incurred_at" bson:"incurred_at"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

func NewCost() *Cost {
	return &Cost{
		ID:       uuid.New(),
		Category: costcategory.Categories.Other.Code(),
	}
}

func (c *Cost) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}

func (c *Cost) GetID() uuid.UUID {
	return c.ID
}

func (c *Cost) SetID(id uuid.UUID) {
	c.ID = id
}

func (c *Cost) ResourceType() string {
	return "cost"
}

func (c *Cost) BeforeCreate() {
	c.EnsureID()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.IncurredAt.IsZero() {
		c.IncurredAt = now
	}
	if c.Category == "" {
		c.Category = costcategory.Categories.Other.Code()
	}
}

func (c *Cost) BeforeUpdate() {
	c.UpdatedAt = time.Now()
}

// CostCenter groups costs under a budget for a period.
type CostCenter struct {
	ID          CostCenterID `json:"id" bson:"_id"`
	Name        string       `json:"name" bson:"name"`
	Period      string       `json:"period" bson:"period"`
	Budget      money.Money  `json:"budget" bson:"budget"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Active      bool         `json:"active" bson:"active"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

func NewCostCenter() *CostCenter {
	return &CostCenter{
		ID:     uuid.New(),
		Active: true,
	}
}

func (c *CostCenter) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}

func (c *CostCenter) GetID() uuid.UUID {
	return c.ID
}

func (c *CostCenter) SetID(id uuid.UUID) {
	c.ID = id
}

func (c *CostCenter) ResourceType() string {
	return "costcenter"
}

func (c *CostCenter) BeforeCreate() {
	c.EnsureID()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *CostCenter) BeforeUpdate() {
	c.UpdatedAt = time.Now()
}
