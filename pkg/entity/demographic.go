package entity

import (
	"github.com/parameter1/omeda-go/pkg/schema"
)

var (
	demographicSchema      = mustSchema("demographic")
	demographicValueSchema = mustSchema("demographic-value")
)

// DemographicType is the Omeda demographic type code.
type DemographicType int

// Demographic types that carry value ids.
const (
	DemographicSingleChoice   DemographicType = 1
	DemographicMultipleChoice DemographicType = 2
	DemographicBoolean        DemographicType = 5
)

// HasValues reports whether demographics of this type carry real value
// records. For every other type Omeda returns a single placeholder value
// with Id 0.
func (t DemographicType) HasValues() bool {
	switch t {
	case DemographicSingleChoice, DemographicMultipleChoice, DemographicBoolean:
		return true
	}
	return false
}

// Demographic is a brand demographic from the comprehensive lookup.
type Demographic struct {
	schema.Entity
}

var demographicBuilders = schema.Builders{
	"DemographicValues": func(f schema.Field) (any, error) {
		if !demographicTypeOf(f.Parent).HasValues() {
			return []any{}, nil
		}
		return buildList(f.Value, NewDemographicValue)
	},
}

// demographicTypeOf reads the raw discriminator. Only a JSON number
// matches; a quoted "1" does not.
func demographicTypeOf(parent schema.Record) DemographicType {
	f, ok := parent["DemographicType"].(float64)
	if !ok || f != float64(int(f)) {
		return 0
	}
	return DemographicType(f)
}

// NewDemographic normalizes a raw demographic record.
func NewDemographic(raw schema.Record) (*Demographic, error) {
	return newEntity(demographicSchema, demographicBuilders, raw, func(e schema.Entity) *Demographic {
		return &Demographic{Entity: e}
	})
}

// ID returns the demographic id.
func (d *Demographic) ID() int64 { return intField(d.Entity, "Id") }

// Description returns the demographic description.
func (d *Demographic) Description() string { return stringField(d.Entity, "Description") }

// Type returns the demographic type code.
func (d *Demographic) Type() DemographicType {
	return DemographicType(intField(d.Entity, "DemographicType"))
}

// Values returns the demographic's values. It is empty for types that do
// not carry value ids.
func (d *Demographic) Values() []*DemographicValue {
	return listOf[*DemographicValue](d.Entity, "DemographicValues")
}

// DemographicValue is one selectable value of a choice demographic.
type DemographicValue struct {
	schema.Entity
}

// NewDemographicValue normalizes a raw demographic value record.
func NewDemographicValue(raw schema.Record) (*DemographicValue, error) {
	return newEntity(demographicValueSchema, nil, raw, func(e schema.Entity) *DemographicValue {
		return &DemographicValue{Entity: e}
	})
}

// ID returns the value id.
func (v *DemographicValue) ID() int64 { return intField(v.Entity, "Id") }

// Description returns the value description.
func (v *DemographicValue) Description() string { return stringField(v.Entity, "Description") }
