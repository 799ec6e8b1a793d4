// internal/domain/models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin represents a program administrator / mentor account.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BusinessID   string             `bson:"id" json:"id"`
	FullName     string             `bson:"fullname" json:"fullname"`
	Domain       string             `bson:"domain,omitempty" json:"domain,omitempty"`
	PasswordHash string             `bson:"password" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
