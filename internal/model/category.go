package model

import (
	"strings"
	"time"
)

type Category struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Archived    bool      `json:"archived"`
	ChildCount  int       `json:"childCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCategory builds an unpersisted category. The ID stays empty until the
// repository assigns one on insert.
func NewCategory(ownerID, name, description string) *Category {
	now := time.Now()
	return &Category{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NameKey is the business key a category is identified by: owner plus
// case-folded name. Uniqueness and logical equality are defined over this
// key, never over the surrogate id, which does not exist before persistence.
func (c *Category) NameKey() string {
	return c.OwnerID + "/" + strings.ToLower(c.Name)
}

// SameAs reports whether two representations denote the same logical category.
func (c *Category) SameAs(other *Category) bool {
	if other == nil {
		return false
	}
	return c.NameKey() == other.NameKey()
}

// CategoryPatch carries a partial update. A nil field means "leave
// unchanged"; a pointer to the zero value is an explicit assignment, so
// clearing the description is distinguishable from not touching it.
type CategoryPatch struct {
	Name        *string
	Description *string
	Archived    *bool
}

// IsZero reports whether the patch requests no changes at all.
func (p CategoryPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Archived == nil
}

// Apply copies the set fields onto the category and bumps UpdatedAt.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Archived != nil {
		c.Archived = *p.Archived
	}
	c.UpdatedAt = time.Now()
}
