package entity

import (
	"time"

	"github.com/parameter1/omeda-go/pkg/schema"
)

var (
	linkClickSchema         = mustSchema("link-click")
	clickSchema             = mustSchema("click")
	unrealClickSchema       = mustSchema("unreal-click")
	unrealClickReasonSchema = mustSchema("unreal-click-reason")
)

// LinkClick summarizes the clicks on one link of an email deployment.
//
// The wire record uses lower-case "clicks" and "unrealClicks" keys, unlike
// the rest of the API.
type LinkClick struct {
	schema.Entity
}

var linkClickBuilders = schema.Builders{
	"clicks": func(f schema.Field) (any, error) {
		return buildList(f.Value, NewClick)
	},
	"unrealClicks": func(f schema.Field) (any, error) {
		return buildList(f.Value, NewUnrealClick)
	},
}

// NewLinkClick normalizes a raw link click record.
func NewLinkClick(raw schema.Record) (*LinkClick, error) {
	return newEntity(linkClickSchema, linkClickBuilders, raw, func(e schema.Entity) *LinkClick {
		return &LinkClick{Entity: e}
	})
}

// URL returns the clicked link.
func (l *LinkClick) URL() string { return stringField(l.Entity, "LinkURL") }

// TotalClicks returns the sum of human clicks.
func (l *LinkClick) TotalClicks() int64 { return intField(l.Entity, "TotalClicks") }

// TotalUnrealClicks returns the sum of bot clicks.
func (l *LinkClick) TotalUnrealClicks() int64 { return intField(l.Entity, "TotalUnrealClicks") }

// Clicks returns the human clicks.
func (l *LinkClick) Clicks() []*Click { return listOf[*Click](l.Entity, "clicks") }

// UnrealClicks returns the clicks attributed to bots.
func (l *LinkClick) UnrealClicks() []*UnrealClick {
	return listOf[*UnrealClick](l.Entity, "unrealClicks")
}

// Click is one customer's clicks on a link.
type Click struct {
	schema.Entity
}

// NewClick normalizes a raw click record.
func NewClick(raw schema.Record) (*Click, error) {
	return newEntity(clickSchema, nil, raw, func(e schema.Entity) *Click {
		return &Click{Entity: e}
	})
}

// CustomerID returns the clicking customer's id.
func (c *Click) CustomerID() int64 { return intField(c.Entity, "CustomerId") }

// Date returns when the click happened.
func (c *Click) Date() time.Time {
	t, _ := c.Time("ClickDate")
	return t
}

// UnrealClick is one customer's bot clicks on a link, broken down by
// reason.
type UnrealClick struct {
	schema.Entity
}

var unrealClickBuilders = schema.Builders{
	"UnrealClicks": func(f schema.Field) (any, error) {
		return buildList(f.Value, NewUnrealClickReason)
	},
}

// NewUnrealClick normalizes a raw unreal click record.
func NewUnrealClick(raw schema.Record) (*UnrealClick, error) {
	return newEntity(unrealClickSchema, unrealClickBuilders, raw, func(e schema.Entity) *UnrealClick {
		return &UnrealClick{Entity: e}
	})
}

// CustomerID returns the customer the bot clicks were recorded against.
func (u *UnrealClick) CustomerID() int64 { return intField(u.Entity, "CustomerId") }

// Reasons returns the per-reason breakdown.
func (u *UnrealClick) Reasons() []*UnrealClickReason {
	return listOf[*UnrealClickReason](u.Entity, "UnrealClicks")
}

// UnrealClickReason is the number of bot clicks recorded for one reason
// code.
type UnrealClickReason struct {
	schema.Entity
}

// NewUnrealClickReason normalizes a raw unreal click reason record.
func NewUnrealClickReason(raw schema.Record) (*UnrealClickReason, error) {
	return newEntity(unrealClickReasonSchema, nil, raw, func(e schema.Entity) *UnrealClickReason {
		return &UnrealClickReason{Entity: e}
	})
}

// Reason returns the reason code.
func (r *UnrealClickReason) Reason() int64 { return intField(r.Entity, "Reason") }

// Count returns the number of bot clicks for the reason.
func (r *UnrealClickReason) Count() int64 { return intField(r.Entity, "NumberOfUnrealClicks") }
