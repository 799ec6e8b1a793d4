// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a unit of work assigned to one mentee.
//
// Tasks come from two sources: explicit assignment by an admin/mentor, and
// the daily curriculum backfill. Curriculum tasks carry the catalog problem
// id in DSAProblemID (> 0) and are rewritten in place as the mentee
// advances through the catalog; DSAProblemID == 0 means an ordinary task.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OwnerID     string             `bson:"user_id" json:"user_id"` // mentee business id
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Resources   map[string]string  `bson:"resources,omitempty" json:"resources,omitempty"`
	IsGlobal    bool               `bson:"is_global" json:"isGlobal"`

	DSAProblemID int `bson:"dsa_problem_id,omitempty" json:"dsa_problem_id,omitempty"`

	Status     TaskStatus  `bson:"status" json:"status"`
	Submission *Submission `bson:"submission,omitempty" json:"submission,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Submission is the record a mentee attaches to a task. Present only after
// a submit; cleared on reject and by the retention sweep.
type Submission struct {
	FileID      string    `bson:"file_id" json:"fileId"` // blob store object key
	FileName    string    `bson:"file_name" json:"fileName"`
	FileType    string    `bson:"file_type,omitempty" json:"fileType,omitempty"`
	SubmittedBy string    `bson:"submitted_by" json:"submittedBy"` // mentee business id
	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
	Link        string    `bson:"link,omitempty" json:"link,omitempty"`
	Remarks     string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// IsCurriculum reports whether the task tracks a catalog problem.
func (t *Task) IsCurriculum() bool {
	return t.DSAProblemID > 0
}

// HasSubmission reports whether a submission with a stored file is present.
func (t *Task) HasSubmission() bool {
	return t.Submission != nil && t.Submission.FileID != ""
}
