package users

import (
	"context"

	"foodgram/internal/domain"
)

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
}

type SubscriptionRepositoryInterface interface {
	Add(ctx context.Context, userID, subscribedToID int64) error
	Remove(ctx context.Context, userID, subscribedToID int64) error
	Exists(ctx context.Context, userID, subscribedToID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Subscription, int64, error)
}

type RecipeRepositoryInterface interface {
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type ImageStore interface {
	Save(dataURL, subdir string) (string, error)
	Remove(relPath string) error
}
