package users

import (
	"foodgram/internal/domain"
	"foodgram/internal/pkg/images"
)

type UserResponse struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
	Avatar       string `json:"avatar"`
}

// RecipeShort is the compact recipe form embedded in subscription
// payloads.
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionResponse is the subscribed-to author plus a slice of
// their recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar"`
}

type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

func toUserResponse(u *domain.User, isSubscribed bool, baseURL string) UserResponse {
	return UserResponse{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       images.URL(baseURL, u.Avatar),
	}
}

func toRecipeShorts(recipes []domain.Recipe, baseURL string) []RecipeShort {
	out := make([]RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, RecipeShort{
			ID:          r.ID,
			Name:        r.Name,
			Image:       images.URL(baseURL, r.Image),
			CookingTime: r.CookingTime,
		})
	}
	return out
}
