package service

import (
	"context"
	"testing"

	apperrors "github.com/stackos/catalog-backend/internal/errors"

	"github.com/stackos/catalog-backend/internal/app/repository"
	"github.com/stackos/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryService(t *testing.T) CategoryService {
	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })
	return NewCategoryService(database, repository.NewCategoryRepository(database))
}

func TestCategoryServiceCreateSlugDefaultsFromName(t *testing.T) {
	svc := setupCategoryService(t)

	category, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Summer Wear"})
	require.NoError(t, err)
	assert.Equal(t, "summer-wear", category.Slug)
}

func TestCategoryServiceCreateDuplicateSlugRejected(t *testing.T) {
	svc := setupCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Shirts", Slug: "shirts"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCategoryInput{Name: "More Shirts", Slug: "shirts"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestCategoryServiceCreateWithParent(t *testing.T) {
	svc := setupCategoryService(t)
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateCategoryInput{Name: "Clothing"})
	require.NoError(t, err)

	child, err := svc.Create(ctx, CreateCategoryInput{Name: "Shirts", ParentID: &parent.ID})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
}

func TestCategoryServiceCreateUnknownParentRejected(t *testing.T) {
	svc := setupCategoryService(t)

	missing := uint(9999)
	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Shirts", ParentID: &missing})
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.CodeOf(err))
}

func TestCategoryServiceUpdateOwnParentRejected(t *testing.T) {
	svc := setupCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, CreateCategoryInput{Name: "Shirts"})
	require.NoError(t, err)

	err = svc.Update(ctx, category.ID, UpdateCategoryInput{ParentID: &category.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestCategoryServiceUpdateAndDelete(t *testing.T) {
	svc := setupCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, CreateCategoryInput{Name: "Shirts"})
	require.NoError(t, err)

	newName := "Tops"
	require.NoError(t, svc.Update(ctx, category.ID, UpdateCategoryInput{Name: &newName}))

	updated, err := svc.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tops", updated.Name)
	// The slug is untouched unless changed explicitly.
	assert.Equal(t, "shirts", updated.Slug)

	require.NoError(t, svc.Delete(ctx, category.ID))

	_, err = svc.GetByID(ctx, category.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
