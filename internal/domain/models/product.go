package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductColor is one color variant of a product with its gallery and
// per-size stock counters. Size keys are product-specific strings, not a
// fixed enum.
type ProductColor struct {
	Name   string         `bson:"name" json:"name"`
	Code   string         `bson:"code" json:"code"`
	Images []string       `bson:"images" json:"images"`
	Stock  map[string]int `bson:"stock" json:"stock"`
}

// Product is a catalog entry. Stock values never go negative; the inventory
// ledger enforces this inside its transaction.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Category  string             `bson:"category" json:"category"`
	Colors    []ProductColor     `bson:"colors" json:"colors"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ColorByName returns the color variant matching name exactly, or nil.
func (p *Product) ColorByName(name string) *ProductColor {
	for i := range p.Colors {
		if p.Colors[i].Name == name {
			return &p.Colors[i]
		}
	}
	return nil
}

// TotalStock sums the stock counters across all colors and sizes.
func (p *Product) TotalStock() int {
	total := 0
	for _, color := range p.Colors {
		for _, qty := range color.Stock {
			total += qty
		}
	}
	return total
}
