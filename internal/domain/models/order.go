package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses are defined by the storefront; the admin console only moves
// orders between them.
const (
	OrderStatusNew     = "New"
	OrderStatusPending = "Pending"
	OrderStatusShipped = "Shipped"
)

// OrderStatuses lists the statuses an admin may assign.
var OrderStatuses = []string{OrderStatusNew, OrderStatusPending, OrderStatusShipped}

// ValidOrderStatus reports whether status is one of the known order states.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem is one line of an online order.
type OrderItem struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
	Size  string  `bson:"size" json:"size"`
}

// OrderUserInfo identifies the customer who placed an order.
type OrderUserInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// OrderShippingInfo is the delivery destination of an order.
type OrderShippingInfo struct {
	Address     string `bson:"address,omitempty" json:"address,omitempty"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	Governorate string `bson:"governorate,omitempty" json:"governorate,omitempty"`
	ZipCode     string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
}

// Order is an online store order. The console mutates it only through
// status transitions.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status        string             `bson:"status" json:"status"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	UserInfo      OrderUserInfo      `bson:"userInfo" json:"userInfo"`
	ShippingInfo  OrderShippingInfo  `bson:"shippingInfo" json:"shippingInfo"`
	Items         []OrderItem        `bson:"items" json:"items"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
