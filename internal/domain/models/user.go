package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a storefront account, read here only for counting and growth.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Governorate string             `bson:"governorate,omitempty" json:"governorate,omitempty"`
	City        string             `bson:"city,omitempty" json:"city,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Location resolves the reporting location of a user, preferring the
// governorate over the city.
func (u *User) Location() string {
	if u.Governorate != "" {
		return u.Governorate
	}
	if u.City != "" {
		return u.City
	}
	return "Unknown"
}

// Subscriber is a newsletter signup, read-only for this service.
type Subscriber struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	SubscribedAt time.Time          `bson:"subscribedAt" json:"subscribedAt"`
}
