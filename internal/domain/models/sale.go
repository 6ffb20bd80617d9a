package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerInfo is the optional walk-in customer contact attached to a sale.
type CustomerInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// OfflineSale records a sale made outside the web store. Product name and
// unit price are denormalized at creation time; the document is immutable
// once written.
type OfflineSale struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID     primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName   string             `bson:"productName" json:"productName"`
	ColorName     string             `bson:"colorName" json:"colorName"`
	Sizes         map[string]int     `bson:"sizes" json:"sizes"`
	TotalQuantity int                `bson:"totalQuantity" json:"totalQuantity"`
	UnitPrice     float64            `bson:"unitPrice" json:"unitPrice"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	CustomerInfo  *CustomerInfo      `bson:"customerInfo,omitempty" json:"customerInfo,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	SaleDate      time.Time          `bson:"saleDate" json:"saleDate"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// SaleFilter narrows offline sale listings. Zero values mean "no constraint".
type SaleFilter struct {
	Start     time.Time
	End       time.Time
	ProductID string
}
