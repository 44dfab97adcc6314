package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

// FavoriteRepository and ShoppingCartRepository manage the (user, recipe)
// presence records. Add relies on the unique index: a concurrent
// duplicate insert loses with a unique violation, never a second row.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
}

type ShoppingCartRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	// Lines returns every ingredient line of every recipe in the user's
	// cart, in cart insertion order then line order.
	Lines(ctx context.Context, userID int64) ([]CartLine, error)
}

// CartLine is one ingredient line pulled out of a cart recipe.
type CartLine struct {
	Name            string `gorm:"column:name"`
	MeasurementUnit string `gorm:"column:measurement_unit"`
	Amount          int    `gorm:"column:amount"`
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID int64) error {
	return r.db.WithContext(ctx).Create(&domain.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return presentRecipeIDs(ctx, r.db, &domain.Favorite{}, userID, recipeIDs)
}

type shoppingCartRepository struct {
	db *gorm.DB
}

func NewShoppingCartRepository(db *gorm.DB) ShoppingCartRepository {
	return &shoppingCartRepository{db: db}
}

func (r *shoppingCartRepository) Add(ctx context.Context, userID, recipeID int64) error {
	return r.db.WithContext(ctx).Create(&domain.ShoppingCart{
		UserID:   userID,
		RecipeID: recipeID,
	}).Error
}

func (r *shoppingCartRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.ShoppingCart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shoppingCartRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *shoppingCartRepository) RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return presentRecipeIDs(ctx, r.db, &domain.ShoppingCart{}, userID, recipeIDs)
}

func (r *shoppingCartRepository) Lines(ctx context.Context, userID int64) ([]CartLine, error) {
	var lines []CartLine
	err := r.db.WithContext(ctx).
		Table("shopping_carts").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, ingredient_recipes.amount AS amount").
		Joins("JOIN ingredient_recipes ON ingredient_recipes.recipe_id = shopping_carts.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("shopping_carts.id, ingredient_recipes.id").
		Scan(&lines).Error
	return lines, err
}

func presentRecipeIDs(ctx context.Context, db *gorm.DB, model any, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	present := make(map[int64]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return present, nil
	}

	var ids []int64
	err := db.WithContext(ctx).Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		present[id] = true
	}
	return present, nil
}
