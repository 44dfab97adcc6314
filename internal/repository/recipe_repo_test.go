package repository

import (
	"context"
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Ingredient{},
		&domain.Tag{},
		&domain.Recipe{},
		&domain.IngredientRecipe{},
		&domain.TagRecipe{},
		&domain.Favorite{},
		&domain.ShoppingCart{},
		&domain.Subscription{},
	))
	return db
}

func seedRecipeRefs(t *testing.T, db *gorm.DB) (domain.User, domain.Ingredient, domain.Tag) {
	t.Helper()

	user := domain.User{Email: "cook@example.com", Username: "cook", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	ing := domain.Ingredient{Name: "salt", MeasurementUnit: "g"}
	require.NoError(t, db.Create(&ing).Error)
	tag := domain.Tag{Name: "soup", Slug: "soup"}
	require.NoError(t, db.Create(&tag).Error)
	return user, ing, tag
}

func TestRecipeRepository_Create_KeepsAssociationsAcrossRetry(t *testing.T) {
	db := newTestDB(t)
	user, ing, tag := seedRecipeRefs(t, db)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	first := &domain.Recipe{
		AuthorID:    user.ID,
		Name:        "Borscht",
		Text:        "Simmer for ninety minutes.",
		Image:       "recipes/images/a.png",
		CookingTime: 90,
		ShortLink:   "deadbeef",
		Ingredients: []domain.IngredientRecipe{{IngredientID: ing.ID, Amount: 5}},
		Tags:        []domain.TagRecipe{{TagID: tag.ID}},
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.Recipe{
		AuthorID:    user.ID,
		Name:        "Solyanka",
		Text:        "Simmer for an hour.",
		Image:       "recipes/images/b.png",
		CookingTime: 60,
		ShortLink:   "deadbeef",
		Ingredients: []domain.IngredientRecipe{{IngredientID: ing.ID, Amount: 3}},
		Tags:        []domain.TagRecipe{{TagID: tag.ID}},
	}

	err := repo.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.Len(t, second.Ingredients, 1)
	assert.Len(t, second.Tags, 1)

	// Same value retried with a fresh token, as the service does.
	second.ShortLink = "cafebabe"
	require.NoError(t, repo.Create(ctx, second))

	stored, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, stored.Ingredients, 1)
	require.Len(t, stored.Tags, 1)
	assert.Equal(t, 3, stored.Ingredients[0].Amount)
	assert.Equal(t, tag.ID, stored.Tags[0].TagID)
}

func TestRecipeRepository_Update_ReplacesAssociations(t *testing.T) {
	db := newTestDB(t)
	user, ing, tag := seedRecipeRefs(t, db)
	pepper := domain.Ingredient{Name: "pepper", MeasurementUnit: "g"}
	require.NoError(t, db.Create(&pepper).Error)

	repo := NewRecipeRepository(db)
	ctx := context.Background()

	recipe := &domain.Recipe{
		AuthorID:    user.ID,
		Name:        "Borscht",
		Text:        "Simmer for ninety minutes.",
		Image:       "recipes/images/a.png",
		CookingTime: 90,
		ShortLink:   "deadbeef",
		Ingredients: []domain.IngredientRecipe{{IngredientID: ing.ID, Amount: 5}},
		Tags:        []domain.TagRecipe{{TagID: tag.ID}},
	}
	require.NoError(t, repo.Create(ctx, recipe))

	recipe.Name = "Borscht v2"
	recipe.Ingredients = []domain.IngredientRecipe{{IngredientID: pepper.ID, Amount: 2}}
	require.NoError(t, repo.Update(ctx, recipe))

	stored, err := repo.GetByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Borscht v2", stored.Name)
	require.Len(t, stored.Ingredients, 1)
	assert.Equal(t, pepper.ID, stored.Ingredients[0].IngredientID)
	require.Len(t, stored.Tags, 1)
}
