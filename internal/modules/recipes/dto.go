package recipes

import (
	"foodgram/internal/domain"
	"foodgram/internal/pkg/images"
)

// IngredientLineRequest references a catalog ingredient by id. Amount
// is a pointer so "missing" and "zero" validate differently.
type IngredientLineRequest struct {
	ID     int64 `json:"id"`
	Amount *int  `json:"amount"`
}

// WriteRequest is the recipe write shape, used for both create and
// update. All fields are required as a unit; see Validate.
type WriteRequest struct {
	Ingredients []IngredientLineRequest `json:"ingredients"`
	Tags        []int64                 `json:"tags"`
	Image       string                  `json:"image"`
	Name        string                  `json:"name"`
	Text        string                  `json:"text"`
	CookingTime *int                    `json:"cooking_time"`
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type AuthorResponse struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
	Avatar       string `json:"avatar"`
}

type IngredientLineResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Response is the full read shape returned for any recipe read, and
// echoed back from writes.
type Response struct {
	ID                int64                    `json:"id"`
	Tags              []TagResponse            `json:"tags"`
	Author            AuthorResponse           `json:"author"`
	Ingredients       []IngredientLineResponse `json:"ingredients"`
	IsFavorited       bool                     `json:"is_favorited"`
	IsInShoppingCart  bool                     `json:"is_in_shopping_cart"`
	Name              string                   `json:"name"`
	Image             string                   `json:"image"`
	Text              string                   `json:"text"`
	CookingTime       int                      `json:"cooking_time"`
}

// ShortResponse is the compact form used by favorite/cart replies.
type ShortResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}

func toResponse(r *domain.Recipe, isFavorited, inCart, authorSubscribed bool, baseURL string) Response {
	resp := Response{
		ID:               r.ID,
		Tags:             make([]TagResponse, 0, len(r.Tags)),
		Ingredients:      make([]IngredientLineResponse, 0, len(r.Ingredients)),
		IsFavorited:      isFavorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            images.URL(baseURL, r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}

	if r.Author != nil {
		resp.Author = AuthorResponse{
			Email:        r.Author.Email,
			ID:           r.Author.ID,
			Username:     r.Author.Username,
			FirstName:    r.Author.FirstName,
			LastName:     r.Author.LastName,
			IsSubscribed: authorSubscribed,
			Avatar:       images.URL(baseURL, r.Author.Avatar),
		}
	}

	for _, tr := range r.Tags {
		if tr.Tag == nil {
			continue
		}
		resp.Tags = append(resp.Tags, TagResponse{ID: tr.Tag.ID, Name: tr.Tag.Name, Slug: tr.Tag.Slug})
	}

	for _, line := range r.Ingredients {
		if line.Ingredient == nil {
			continue
		}
		resp.Ingredients = append(resp.Ingredients, IngredientLineResponse{
			ID:              line.Ingredient.ID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	return resp
}

func toShortResponse(r *domain.Recipe, baseURL string) ShortResponse {
	return ShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       images.URL(baseURL, r.Image),
		CookingTime: r.CookingTime,
	}
}
