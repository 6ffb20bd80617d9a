package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpendingCategories is the fixed label set accepted for spendings.
var SpendingCategories = []string{
	"general",
	"inventory",
	"marketing",
	"shipping",
	"packaging",
	"salaries",
	"rent",
	"utilities",
}

// DefaultSpendingCategory is applied when a spending arrives without one.
const DefaultSpendingCategory = "general"

// ValidSpendingCategory reports whether category belongs to the fixed set.
func ValidSpendingCategory(category string) bool {
	for _, c := range SpendingCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Spending is a recorded business expense.
type Spending struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Description string             `bson:"description" json:"description"`
	Amount      float64            `bson:"amount" json:"amount"`
	Category    string             `bson:"category" json:"category"`
	Date        time.Time          `bson:"date" json:"date"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SpendingFilter narrows spending listings. Zero values mean "no constraint".
type SpendingFilter struct {
	Start    time.Time
	End      time.Time
	Category string
}
