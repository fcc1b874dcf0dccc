package entity

import (
	"github.com/parameter1/omeda-go/pkg/schema"
)

var behaviorSchema = mustSchema("behavior")

// Behavior is a brand behavior definition from the behavior lookup.
type Behavior struct {
	schema.Entity
}

// NewBehavior normalizes a raw behavior record.
func NewBehavior(raw schema.Record) (*Behavior, error) {
	return newEntity(behaviorSchema, nil, raw, func(e schema.Entity) *Behavior {
		return &Behavior{Entity: e}
	})
}

// ID returns the behavior id.
func (b *Behavior) ID() int64 { return intField(b.Entity, "Id") }

// Description returns the behavior description.
func (b *Behavior) Description() string { return stringField(b.Entity, "Description") }
