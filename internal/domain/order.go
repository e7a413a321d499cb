package domain

import (
	"context"
	"time"
)

type OrderFilter struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// Customer is the contact block captured at checkout. Orders may be
// placed anonymously, so this is stored on the order itself rather
// than joined from a user row.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

type Order struct {
	ID            string      `json:"id"`
	UserID        *string     `json:"userId"` // nil for guest checkout
	Customer      Customer    `json:"customer"`
	Status        string      `json:"status"`
	Subtotal      float64     `json:"subtotal"`
	ShippingFee   float64     `json:"shippingFee"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// OrderItem snapshots the product at purchase time. Price is the unit
// price the customer saw in the cart; later catalog changes do not
// affect placed orders.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"orderId"`
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	NameAr      string  `json:"nameAr"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Image       string  `json:"image"`
	CapacityBTU int     `json:"capacityBtu"`
	UnitType    string  `json:"unitType"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type OrderHistory struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	PreviousStatus *string   `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Reason         *string   `json:"reason"`
	CreatedBy      *string   `json:"createdBy"` // admin UserID
	CreatedAt      time.Time `json:"createdAt"`
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByUserID(ctx context.Context, userID string) ([]Order, error)
	GetAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error

	CreateOrderHistory(ctx context.Context, history *OrderHistory) error
	GetOrderHistory(ctx context.Context, orderID string) ([]OrderHistory, error)
}
