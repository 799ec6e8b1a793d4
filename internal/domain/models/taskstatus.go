// internal/domain/models/taskstatus.go
package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TaskStatus is the task lifecycle state.
//
// New documents are always written with one of the three string values.
// Old documents, written by earlier iterations of the system, encode status
// as a BSON boolean (true = completed, false = not started), a BSON null
// (not started), or the strings "true"/"false". UnmarshalBSONValue accepts
// all of those so legacy data keeps decoding without a migration; which of
// the legacy encodings was authoritative was never resolved upstream, so
// decoding is permissive and writing is strict.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusPending    TaskStatus = "pending"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the three canonical values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// MarshalBSONValue writes the canonical string encoding. The zero value is
// written as not_started so half-initialized structs stay decodable.
func (s TaskStatus) MarshalBSONValue() (bsontype.Type, []byte, error) {
	v := s
	if v == "" {
		v = StatusNotStarted
	}
	if !v.Valid() {
		return 0, nil, fmt.Errorf("invalid task status %q", string(s))
	}
	return bson.MarshalValue(string(v))
}

// UnmarshalBSONValue decodes both the canonical string form and the legacy
// boolean/null encodings.
func (s *TaskStatus) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*s = StatusNotStarted
		return nil

	case bson.TypeBoolean:
		if raw.Boolean() {
			*s = StatusCompleted
		} else {
			*s = StatusNotStarted
		}
		return nil

	case bson.TypeString:
		switch v := raw.StringValue(); v {
		case string(StatusNotStarted), "":
			*s = StatusNotStarted
		case string(StatusPending):
			*s = StatusPending
		case string(StatusCompleted):
			*s = StatusCompleted
		case "true": // legacy string boolean
			*s = StatusCompleted
		case "false", "null":
			*s = StatusNotStarted
		default:
			return fmt.Errorf("unknown task status %q", v)
		}
		return nil
	}

	return fmt.Errorf("cannot decode %v into TaskStatus", t)
}
