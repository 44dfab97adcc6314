package catalog

import (
	"context"

	"foodgram/internal/repository"
)

// Service serves the read-only ingredient and tag reference data.
type Service struct {
	ingredients repository.IngredientRepository
	tags        repository.TagRepository
}

func NewService(ingredients repository.IngredientRepository, tags repository.TagRepository) *Service {
	return &Service{ingredients: ingredients, tags: tags}
}

func (s *Service) ListTags(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResponse(&tags[i]))
	}
	return out, nil
}

func (s *Service) GetTag(ctx context.Context, id int64) (*TagResponse, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTagResponse(tag)
	return &resp, nil
}

func (s *Service) ListIngredients(ctx context.Context, name string) ([]IngredientResponse, error) {
	ingredients, err := s.ingredients.List(ctx, name)
	if err != nil {
		return nil, err
	}

	out := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, toIngredientResponse(&ingredients[i]))
	}
	return out, nil
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*IngredientResponse, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toIngredientResponse(ing)
	return &resp, nil
}
