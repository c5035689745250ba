package domain

import "time"

// OrderItem is a single cart line. Image is the product image key in the
// image bucket and may be empty.
type OrderItem struct {
	Title string  `json:"title" dynamodbav:"title"`
	Qty   int     `json:"qty" dynamodbav:"qty"`
	Price float64 `json:"price" dynamodbav:"price"`
	Image string  `json:"image,omitempty" dynamodbav:"image,omitempty"`
}

// Order is a placed order. UserID is empty for guest checkouts; such orders
// never appear in a per-user listing.
type Order struct {
	OrderID   string      `json:"id" dynamodbav:"order_id"`
	UserID    string      `json:"-" dynamodbav:"user_id,omitempty"`
	Items     []OrderItem `json:"items" dynamodbav:"items"`
	Total     float64     `json:"total" dynamodbav:"total"`
	Status    string      `json:"status" dynamodbav:"status"`
	CreatedAt time.Time   `json:"createdAt" dynamodbav:"created_at"`
}

// OrderStatusPaid is the only status the service assigns: payment is
// simulated, so every stored order is immediately "paid".
const OrderStatusPaid = "paid"
