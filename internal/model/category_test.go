package model_test

import (
	"testing"

	"catalog-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNameKeyFoldsCase(t *testing.T) {
	a := model.NewCategory("owner-1", "Electronics", "")
	b := model.NewCategory("owner-1", "ELECTRONICS", "")
	c := model.NewCategory("owner-2", "Electronics", "")

	assert.Equal(t, a.NameKey(), b.NameKey())
	assert.NotEqual(t, a.NameKey(), c.NameKey())
}

func TestSameAsIgnoresSurrogateID(t *testing.T) {
	a := model.NewCategory("owner-1", "Books", "")
	b := model.NewCategory("owner-1", "books", "different description")
	b.ID = "persisted-id"

	// Equality is defined by the business key; one side being unpersisted
	// does not matter.
	assert.True(t, a.SameAs(b))
	assert.True(t, b.SameAs(a))
	assert.False(t, a.SameAs(nil))
}

func TestPatchApply(t *testing.T) {
	category := model.NewCategory("owner-1", "Books", "fiction")
	before := category.UpdatedAt

	name := "Novels"
	model.CategoryPatch{Name: &name}.Apply(category)
	assert.Equal(t, "Novels", category.Name)
	assert.Equal(t, "fiction", category.Description)
	assert.False(t, category.Archived)
	assert.False(t, category.UpdatedAt.Before(before))

	clear := ""
	model.CategoryPatch{Description: &clear}.Apply(category)
	assert.Equal(t, "", category.Description)
	assert.Equal(t, "Novels", category.Name)
}

func TestPatchIsZero(t *testing.T) {
	assert.True(t, model.CategoryPatch{}.IsZero())

	flag := false
	assert.False(t, model.CategoryPatch{Archived: &flag}.IsZero())
}
