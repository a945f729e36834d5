package dto

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutProduct pairs a catalog product id with the requested quantity.
type CheckoutProduct struct {
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
}

type CreateCheckoutSessionRequest struct {
	Products []CheckoutProduct `json:"products"`
	SellerID uuid.UUID         `json:"userSellerId"`
}

type CreateSaleRequest struct {
	Products []CheckoutProduct `json:"products"`
	SellerID uuid.UUID         `json:"userSellerId"`
}

type UserSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CheckoutLineItem is the human-formatted copy of a gateway line item
// returned to the client ("R$ 10,00" style unit amounts).
type CheckoutLineItem struct {
	Name       string `json:"name"`
	UnitAmount string `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

type CheckoutSessionResponse struct {
	SessionID string             `json:"sessionId"`
	LineItems []CheckoutLineItem `json:"lineItems"`
	Seller    UserSummary        `json:"seller"`
	Buyer     UserSummary        `json:"buyer"`
}

type SaleLineItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

type SaleResponse struct {
	ID         uuid.UUID      `json:"id"`
	TotalValue float64        `json:"total_value"`
	Seller     UserSummary    `json:"seller"`
	Buyer      UserSummary    `json:"buyer"`
	Products   []SaleLineItem `json:"products"`
	CreatedAt  time.Time      `json:"created_at"`
}
