package memory_test

import (
	"context"
	"testing"

	"catalog-service/internal/model"
	"catalog-service/internal/repository"
	"catalog-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos() (*memory.InMemoryCategoryRepository, *memory.InMemoryItemRepository) {
	items := memory.NewInMemoryItemRepository()
	return memory.NewInMemoryCategoryRepository(items), items
}

func TestCreateAssignsID(t *testing.T) {
	categories, _ := newRepos()
	ctx := context.Background()

	category := model.NewCategory("owner-1", "Books", "")
	require.Empty(t, category.ID)
	require.NoError(t, categories.Create(ctx, category))
	assert.NotEmpty(t, category.ID)
}

func TestUniqueConstraintIsAuthoritative(t *testing.T) {
	categories, _ := newRepos()
	ctx := context.Background()

	require.NoError(t, categories.Create(ctx, model.NewCategory("owner-1", "Books", "")))

	// Same owner, different casing: the constraint decides, regardless of any
	// advisory pre-check above this layer.
	err := categories.Create(ctx, model.NewCategory("owner-1", "BOOKS", ""))
	assert.ErrorIs(t, err, repository.ErrConflict)

	// Different owner is fine.
	assert.NoError(t, categories.Create(ctx, model.NewCategory("owner-2", "Books", "")))
}

func TestUpdateConstraintExcludesSelf(t *testing.T) {
	categories, _ := newRepos()
	ctx := context.Background()

	books := model.NewCategory("owner-1", "Books", "")
	games := model.NewCategory("owner-1", "Games", "")
	require.NoError(t, categories.Create(ctx, books))
	require.NoError(t, categories.Create(ctx, games))

	// Re-casing its own name is allowed.
	books.Name = "BOOKS"
	assert.NoError(t, categories.Update(ctx, books))

	// Taking another category's name is not.
	games.Name = "books"
	assert.ErrorIs(t, categories.Update(ctx, games), repository.ErrConflict)
}

func TestFindOwnedHidesForeignRows(t *testing.T) {
	categories, _ := newRepos()
	ctx := context.Background()

	category := model.NewCategory("owner-1", "Books", "")
	require.NoError(t, categories.Create(ctx, category))

	_, err := categories.FindOwned(ctx, category.ID, "owner-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = categories.FindOwned(ctx, "missing", "owner-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExistsByName(t *testing.T) {
	categories, _ := newRepos()
	ctx := context.Background()

	category := model.NewCategory("owner-1", "Books", "")
	require.NoError(t, categories.Create(ctx, category))

	exists, err := categories.ExistsByName(ctx, "owner-1", "bOoKs")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = categories.ExistsByName(ctx, "owner-2", "Books")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = categories.ExistsByNameExcluding(ctx, "owner-1", "Books", category.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListOwnedOrderingAndFilter(t *testing.T) {
	categories, _ := newRepos()
	ctx := context.Background()

	archived := model.NewCategory("owner-1", "Archive", "")
	archived.Archived = true
	require.NoError(t, categories.Create(ctx, model.NewCategory("owner-1", "zebra", "")))
	require.NoError(t, categories.Create(ctx, archived))
	require.NoError(t, categories.Create(ctx, model.NewCategory("owner-1", "Apple", "")))
	require.NoError(t, categories.Create(ctx, model.NewCategory("owner-2", "Apple", "")))

	active, err := categories.ListOwned(ctx, "owner-1", false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Apple", active[0].Name)
	assert.Equal(t, "zebra", active[1].Name)

	all, err := categories.ListOwned(ctx, "owner-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestChildCountTracksActiveItems(t *testing.T) {
	categories, items := newRepos()
	ctx := context.Background()

	category := model.NewCategory("owner-1", "Books", "")
	require.NoError(t, categories.Create(ctx, category))

	first := model.NewItem("owner-1", category.ID, "Dune", "")
	second := model.NewItem("owner-1", category.ID, "Hyperion", "")
	require.NoError(t, items.Create(ctx, first))
	require.NoError(t, items.Create(ctx, second))

	got, err := categories.FindOwned(ctx, category.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ChildCount)

	second.Archived = true
	require.NoError(t, items.Update(ctx, second))

	got, err = categories.FindOwned(ctx, category.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ChildCount)
}

func TestDeleteFreesName(t *testing.T) {
	categories, _ := newRepos()
	ctx := context.Background()

	category := model.NewCategory("owner-1", "Books", "")
	require.NoError(t, categories.Create(ctx, category))
	require.NoError(t, categories.Delete(ctx, category))

	assert.NoError(t, categories.Create(ctx, model.NewCategory("owner-1", "Books", "")))
}
