package users

import (
	"context"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/images"
	"foodgram/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	users         UserRepositoryInterface
	subscriptions SubscriptionRepositoryInterface
	recipes       RecipeRepositoryInterface
	store         ImageStore
	baseURL       string
}

func NewService(
	users UserRepositoryInterface,
	subscriptions SubscriptionRepositoryInterface,
	recipes RecipeRepositoryInterface,
	store ImageStore,
	baseURL string,
) *Service {
	return &Service{
		users:         users,
		subscriptions: subscriptions,
		recipes:       recipes,
		store:         store,
		baseURL:       baseURL,
	}
}

// GetUser returns the profile as seen by viewerID (0 = anonymous).
func (s *Service) GetUser(ctx context.Context, id, viewerID int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapUserErr(err)
	}

	subscribed := false
	if viewerID != 0 {
		subscribed, err = s.subscriptions.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
	}

	resp := toUserResponse(user, subscribed, s.baseURL)
	return &resp, nil
}

func (s *Service) ListUsers(ctx context.Context, viewerID int64, limit, offset int) ([]UserResponse, int64, error) {
	list, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserResponse, 0, len(list))
	for i := range list {
		subscribed := false
		if viewerID != 0 {
			subscribed, err = s.subscriptions.Exists(ctx, viewerID, list[i].ID)
			if err != nil {
				return nil, 0, err
			}
		}
		out = append(out, toUserResponse(&list[i], subscribed, s.baseURL))
	}
	return out, total, nil
}

func (s *Service) SetAvatar(ctx context.Context, userID int64, dataURL string) (string, error) {
	if strings.TrimSpace(dataURL) == "" {
		return "", ErrEmptyAvatar
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", s.mapUserErr(err)
	}

	path, err := s.store.Save(dataURL, "users/avatars")
	if err != nil {
		return "", err
	}

	old := user.Avatar
	user.Avatar = path
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	if old != "" {
		_ = s.store.Remove(old)
	}

	return images.URL(s.baseURL, path), nil
}

func (s *Service) DeleteAvatar(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return s.mapUserErr(err)
	}

	if user.Avatar == "" {
		return nil
	}

	old := user.Avatar
	user.Avatar = ""
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	_ = s.store.Remove(old)
	return nil
}

// Subscribe adds the presence record and returns the author payload.
// recipesLimit > 0 caps the embedded recipe list.
func (s *Service) Subscribe(ctx context.Context, userID, targetID int64, recipesLimit int) (*SubscriptionResponse, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, s.mapUserErr(err)
	}

	if err := s.subscriptions.Add(ctx, userID, targetID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	return s.subscriptionResponse(ctx, target, recipesLimit)
}

func (s *Service) Unsubscribe(ctx context.Context, userID, targetID int64) error {
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return s.mapUserErr(err)
	}

	if err := s.subscriptions.Remove(ctx, userID, targetID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotSubscribed
		}
		return err
	}
	return nil
}

func (s *Service) Subscriptions(ctx context.Context, userID int64, limit, offset, recipesLimit int) ([]SubscriptionResponse, int64, error) {
	subs, total, err := s.subscriptions.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	out := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		author := sub.SubscribedTo
		if author == nil {
			author = &domain.User{ID: sub.SubscribedToID}
		}
		resp, err := s.subscriptionResponse(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *resp)
	}
	return out, total, nil
}

func (s *Service) subscriptionResponse(ctx context.Context, author *domain.User, recipesLimit int) (*SubscriptionResponse, error) {
	recipes, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	return &SubscriptionResponse{
		UserResponse: toUserResponse(author, true, s.baseURL),
		Recipes:      toRecipeShorts(recipes, s.baseURL),
		RecipesCount: count,
	}, nil
}

func (s *Service) mapUserErr(err error) error {
	if err == gorm.ErrRecordNotFound || repository.IsNotFound(err) {
		return ErrUserNotFound
	}
	return err
}
