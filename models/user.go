package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID        string             `bson:"userid" json:"userid"`
	Username      string             `bson:"username" json:"username"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password      string             `bson:"password" json:"-"`
	Role          string             `bson:"role" json:"role"` // customer, vendor, admin
	RefreshToken  string             `bson:"refresh_token,omitempty" json:"-"`
	RefreshExpiry time.Time          `bson:"refresh_expiry,omitempty" json:"-"`
	LastLogin     time.Time          `bson:"last_login,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
