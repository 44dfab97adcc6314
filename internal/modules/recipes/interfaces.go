package recipes

import (
	"context"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type RecipeRepositoryInterface interface {
	Create(ctx context.Context, recipe *domain.Recipe) error
	Update(ctx context.Context, recipe *domain.Recipe) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	GetByShortLink(ctx context.Context, token string) (*domain.Recipe, error)
	List(ctx context.Context, filter repository.RecipeFilter, limit, offset int) ([]domain.Recipe, int64, error)
}

type IngredientRepositoryInterface interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error)
}

type TagRepositoryInterface interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
}

type RelationRepositoryInterface interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
	RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
}

type CartRepositoryInterface interface {
	RelationRepositoryInterface
	Lines(ctx context.Context, userID int64) ([]repository.CartLine, error)
}

type SubscriptionRepositoryInterface interface {
	Exists(ctx context.Context, userID, subscribedToID int64) (bool, error)
	SubscribedToIDs(ctx context.Context, userID int64, subscribedToIDs []int64) (map[int64]bool, error)
}

type ImageStore interface {
	Save(dataURL, subdir string) (string, error)
	Remove(relPath string) error
}
