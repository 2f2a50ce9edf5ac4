package kafka

import "time"

// OrderCompletedEvent represents a finished sale
type OrderCompletedEvent struct {
	EventID       string               `json:"event_id"`
	EventType     string               `json:"event_type"`
	OrderID       uint                 `json:"order_id"`
	OrderNumber   string               `json:"order_number"`
	UserID        uint                 `json:"user_id"`
	Subtotal      float64              `json:"subtotal"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentMethod string               `json:"payment_method"`
	Items         []OrderCompletedItem `json:"items"`
	Timestamp     time.Time            `json:"timestamp"`
}

// OrderCompletedItem is one sold line within the event payload
type OrderCompletedItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

// Event types
const (
	EventTypeOrderCompleted = "order.completed"
)

// Kafka topics
const (
	TopicOrderCompleted = "order-completed"
)
