// internal/domain/models/completedtask.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompletedTask is a journal entry an admin records when a task is closed
// out, independent of the live Task document (which may later be rewritten
// by curriculum advancement or have its submission pruned).
type CompletedTask struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TaskRef string             `bson:"id" json:"id"`           // task business reference
	UserID  string             `bson:"user_id" json:"user_id"` // mentee business id
	Details string             `bson:"details,omitempty" json:"details,omitempty"`
	Source  string             `bson:"source,omitempty" json:"source,omitempty"` // URL with supporting detail

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
