// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a mentee in the mentorship program.
//
// BusinessID ("id" in the wire format) is the externally assigned mentee
// identifier used by the front end and by mentor references; it is distinct
// from the storage-assigned ObjectID and never changes after signup.
//
// TaskAssign and TaskDone hold task references in insertion order:
// assignment order for TaskAssign, completion order for TaskDone. A task
// reference should live in at most one of the two arrays at a time; the
// lifecycle service moves references between them.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BusinessID   string             `bson:"id" json:"id"`
	FullName     string             `bson:"fullname" json:"fullname"`
	FullNameCI   string             `bson:"fullname_ci" json:"-"` // lowercase, diacritics-stripped
	Domain       string             `bson:"domain" json:"domain"`
	Mentor       string             `bson:"mentor,omitempty" json:"mentor,omitempty"`
	PasswordHash string             `bson:"password" json:"-"`

	TaskAssign []primitive.ObjectID `bson:"task_assign" json:"taskAssign"`
	TaskDone   []primitive.ObjectID `bson:"task_done" json:"taskDone"`

	// Attendance counts keyed by day ("2006-01-02").
	Attendance map[string]int `bson:"attendance,omitempty" json:"attendance,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
