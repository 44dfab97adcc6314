package recipes

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/repository"

	"github.com/google/uuid"
)

// shortLinkAttempts bounds the regeneration loop when a generated token
// collides with an existing one.
const shortLinkAttempts = 5

// ListFilter is the query-level recipe filter. IsFavorited/IsInCart are
// ignored for anonymous callers.
type ListFilter struct {
	AuthorID    int64
	TagSlugs    []string
	IsFavorited bool
	IsInCart    bool
}

type Service struct {
	recipes       RecipeRepositoryInterface
	ingredients   IngredientRepositoryInterface
	tags          TagRepositoryInterface
	favorites     RelationRepositoryInterface
	cart          CartRepositoryInterface
	subscriptions SubscriptionRepositoryInterface
	store         ImageStore
	baseURL       string
}

func NewService(
	recipes RecipeRepositoryInterface,
	ingredients IngredientRepositoryInterface,
	tags TagRepositoryInterface,
	favorites RelationRepositoryInterface,
	cart CartRepositoryInterface,
	subscriptions SubscriptionRepositoryInterface,
	store ImageStore,
	baseURL string,
) *Service {
	return &Service{
		recipes:       recipes,
		ingredients:   ingredients,
		tags:          tags,
		favorites:     favorites,
		cart:          cart,
		subscriptions: subscriptions,
		store:         store,
		baseURL:       baseURL,
	}
}

func (s *Service) Create(ctx context.Context, authorID int64, req WriteRequest) (*Response, error) {
	if ve := validateWrite(req); ve != nil {
		return nil, ve
	}

	lines, tagLinks, err := s.resolveAssociations(ctx, req)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.store.Save(req.Image, "recipes/images")
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"image": "could not decode image"}}
	}

	recipe := &domain.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imagePath,
		CookingTime: *req.CookingTime,
		Ingredients: lines,
		Tags:        tagLinks,
	}

	// A truncated UUID can collide; regenerate until the unique index
	// accepts it.
	var createErr error
	for attempt := 0; attempt < shortLinkAttempts; attempt++ {
		recipe.ShortLink = newShortLink()
		createErr = s.recipes.Create(ctx, recipe)
		if createErr == nil {
			break
		}
		if !repository.IsUniqueViolation(createErr) {
			_ = s.store.Remove(imagePath)
			return nil, createErr
		}
	}
	if createErr != nil {
		_ = s.store.Remove(imagePath)
		return nil, ErrShortLinkExhausted
	}

	return s.Get(ctx, recipe.ID, authorID)
}

func (s *Service) Update(ctx context.Context, viewerID int64, admin bool, id int64, req WriteRequest) (*Response, error) {
	existing, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRecipeErr(err)
	}
	if existing.AuthorID != viewerID && !admin {
		return nil, ErrForbidden
	}

	if ve := validateWrite(req); ve != nil {
		return nil, ve
	}

	lines, tagLinks, err := s.resolveAssociations(ctx, req)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.store.Save(req.Image, "recipes/images")
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"image": "could not decode image"}}
	}

	recipe := &domain.Recipe{
		ID:          id,
		AuthorID:    existing.AuthorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imagePath,
		CookingTime: *req.CookingTime,
		ShortLink:   existing.ShortLink,
		Ingredients: lines,
		Tags:        tagLinks,
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		_ = s.store.Remove(imagePath)
		return nil, err
	}
	if existing.Image != "" && existing.Image != imagePath {
		_ = s.store.Remove(existing.Image)
	}

	return s.Get(ctx, id, viewerID)
}

func (s *Service) Delete(ctx context.Context, viewerID int64, admin bool, id int64) error {
	existing, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return s.mapRecipeErr(err)
	}
	if existing.AuthorID != viewerID && !admin {
		return ErrForbidden
	}

	if err := s.recipes.Delete(ctx, id); err != nil {
		return s.mapRecipeErr(err)
	}
	_ = s.store.Remove(existing.Image)
	return nil
}

func (s *Service) Get(ctx context.Context, id, viewerID int64) (*Response, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRecipeErr(err)
	}

	favorited := false
	inCart := false
	subscribed := false
	if viewerID != 0 {
		if favorited, err = s.favorites.Exists(ctx, viewerID, id); err != nil {
			return nil, err
		}
		if inCart, err = s.cart.Exists(ctx, viewerID, id); err != nil {
			return nil, err
		}
		if subscribed, err = s.subscriptions.Exists(ctx, viewerID, recipe.AuthorID); err != nil {
			return nil, err
		}
	}

	resp := toResponse(recipe, favorited, inCart, subscribed, s.baseURL)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, viewerID int64, f ListFilter, limit, offset int) ([]Response, int64, error) {
	filter := repository.RecipeFilter{
		AuthorID: f.AuthorID,
		TagSlugs: f.TagSlugs,
	}
	if viewerID != 0 {
		if f.IsFavorited {
			filter.FavoritedBy = viewerID
		}
		if f.IsInCart {
			filter.InCartOf = viewerID
		}
	}

	list, total, err := s.recipes.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(list))
	authorIDs := make([]int64, 0, len(list))
	for i := range list {
		ids = append(ids, list[i].ID)
		authorIDs = append(authorIDs, list[i].AuthorID)
	}

	favorited, err := s.favorites.RecipeIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}
	inCart, err := s.cart.RecipeIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}
	subscribed, err := s.subscriptions.SubscribedToIDs(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	out := make([]Response, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i],
			favorited[list[i].ID], inCart[list[i].ID], subscribed[list[i].AuthorID], s.baseURL))
	}
	return out, total, nil
}

// GetLink returns the absolute short URL for a recipe.
func (s *Service) GetLink(ctx context.Context, id int64) (*ShortLinkResponse, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRecipeErr(err)
	}
	return &ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%s", strings.TrimRight(s.baseURL, "/"), recipe.ShortLink),
	}, nil
}

// Resolve maps a short-link token back to the recipe id.
func (s *Service) Resolve(ctx context.Context, token string) (int64, error) {
	recipe, err := s.recipes.GetByShortLink(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return 0, ErrShortLinkNotFound
		}
		return 0, err
	}
	return recipe.ID, nil
}

func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) (*ShortResponse, error) {
	return s.addRelation(ctx, s.favorites, userID, recipeID, ErrAlreadyFavorited)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.removeRelation(ctx, s.favorites, userID, recipeID, ErrNotFavorited)
}

func (s *Service) AddToCart(ctx context.Context, userID, recipeID int64) (*ShortResponse, error) {
	return s.addRelation(ctx, s.cart, userID, recipeID, ErrAlreadyInCart)
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	return s.removeRelation(ctx, s.cart, userID, recipeID, ErrNotInCart)
}

// DownloadShoppingCart aggregates ingredient amounts across every cart
// recipe, keyed by (name, unit), in first-encounter order. An empty
// cart yields an empty report.
func (s *Service) DownloadShoppingCart(ctx context.Context, userID int64) (string, error) {
	lines, err := s.cart.Lines(ctx, userID)
	if err != nil {
		return "", err
	}

	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int, len(lines))
	order := make([]key, 0, len(lines))
	for _, line := range lines {
		k := key{name: line.Name, unit: line.MeasurementUnit}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += line.Amount
	}

	report := make([]string, 0, len(order))
	for _, k := range order {
		report = append(report, fmt.Sprintf("%s - %d(%s)", k.name, totals[k], k.unit))
	}
	return strings.Join(report, "\n"), nil
}

func (s *Service) addRelation(ctx context.Context, rel RelationRepositoryInterface, userID, recipeID int64, conflict error) (*ShortResponse, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, s.mapRecipeErr(err)
	}

	if err := rel.Add(ctx, userID, recipeID); err != nil {
		// The unique index decides races between concurrent adds: the
		// loser lands here.
		if repository.IsUniqueViolation(err) {
			return nil, conflict
		}
		return nil, err
	}

	resp := toShortResponse(recipe, s.baseURL)
	return &resp, nil
}

func (s *Service) removeRelation(ctx context.Context, rel RelationRepositoryInterface, userID, recipeID int64, absent error) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return s.mapRecipeErr(err)
	}

	if err := rel.Remove(ctx, userID, recipeID); err != nil {
		if repository.IsNotFound(err) {
			return absent
		}
		return err
	}
	return nil
}

// resolveAssociations turns payload ids into join rows, rejecting
// references to catalog entries that do not exist.
func (s *Service) resolveAssociations(ctx context.Context, req WriteRequest) ([]domain.IngredientRecipe, []domain.TagRecipe, error) {
	ingredientIDs := make([]int64, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		ingredientIDs = append(ingredientIDs, line.ID)
	}

	found, err := s.ingredients.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ingredientIDs) {
		return nil, nil, &ValidationError{Fields: map[string]string{"ingredients": "unknown ingredient id"}}
	}

	foundTags, err := s.tags.GetByIDs(ctx, req.Tags)
	if err != nil {
		return nil, nil, err
	}
	if len(foundTags) != len(req.Tags) {
		return nil, nil, &ValidationError{Fields: map[string]string{"tags": "unknown tag id"}}
	}

	lines := make([]domain.IngredientRecipe, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		lines = append(lines, domain.IngredientRecipe{
			IngredientID: line.ID,
			Amount:       *line.Amount,
		})
	}

	tagLinks := make([]domain.TagRecipe, 0, len(req.Tags))
	for _, id := range req.Tags {
		tagLinks = append(tagLinks, domain.TagRecipe{TagID: id})
	}

	return lines, tagLinks, nil
}

func (s *Service) mapRecipeErr(err error) error {
	if repository.IsNotFound(err) {
		return ErrRecipeNotFound
	}
	return err
}

// newShortLink takes the leading characters of a fresh UUID.
func newShortLink() string {
	return uuid.New().String()[:domain.ShortLinkLength]
}
