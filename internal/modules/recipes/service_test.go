package recipes

import (
	"context"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockRecipeRepo struct {
	mock.Mock
}

func (m *mockRecipeRepo) Create(ctx context.Context, recipe *domain.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *mockRecipeRepo) Update(ctx context.Context, recipe *domain.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRecipeRepo) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) GetByShortLink(ctx context.Context, token string) (*domain.Recipe, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) List(ctx context.Context, filter repository.RecipeFilter, limit, offset int) ([]domain.Recipe, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Recipe), args.Get(1).(int64), args.Error(2)
}

type mockIngredientRepo struct {
	mock.Mock
}

func (m *mockIngredientRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

type mockRelationRepo struct {
	mock.Mock
}

func (m *mockRelationRepo) Add(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *mockRelationRepo) Remove(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *mockRelationRepo) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRelationRepo) RecipeIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type mockCartRepo struct {
	mockRelationRepo
}

func (m *mockCartRepo) Lines(ctx context.Context, userID int64) ([]repository.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CartLine), args.Error(1)
}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Exists(ctx context.Context, userID, subscribedToID int64) (bool, error) {
	args := m.Called(ctx, userID, subscribedToID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepo) SubscribedToIDs(ctx context.Context, userID int64, subscribedToIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, subscribedToIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(dataURL, subdir string) (string, error) {
	args := m.Called(dataURL, subdir)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Remove(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}

const baseURL = "http://localhost:8080"

type testEnv struct {
	recipes     *mockRecipeRepo
	ingredients *mockIngredientRepo
	tags        *mockTagRepo
	favorites   *mockRelationRepo
	cart        *mockCartRepo
	subs        *mockSubscriptionRepo
	store       *mockImageStore
	svc         *Service
}

func newEnv() *testEnv {
	env := &testEnv{
		recipes:     new(mockRecipeRepo),
		ingredients: new(mockIngredientRepo),
		tags:        new(mockTagRepo),
		favorites:   new(mockRelationRepo),
		cart:        new(mockCartRepo),
		subs:        new(mockSubscriptionRepo),
		store:       new(mockImageStore),
	}
	env.svc = NewService(env.recipes, env.ingredients, env.tags, env.favorites, env.cart, env.subs, env.store, baseURL)
	return env
}

func intPtr(n int) *int { return &n }

func validRequest() WriteRequest {
	return WriteRequest{
		Ingredients: []IngredientLineRequest{
			{ID: 1, Amount: intPtr(2)},
			{ID: 2, Amount: intPtr(3)},
		},
		Tags:        []int64{1, 2},
		Image:       "data:image/png;base64,aGVsbG8=",
		Name:        "Borscht",
		Text:        "Simmer for ninety minutes.",
		CookingTime: intPtr(90),
	}
}

// --- validation ---

func TestValidateWrite_ZeroCookingTimeRejected(t *testing.T) {
	req := validRequest()
	req.CookingTime = intPtr(0)

	ve := validateWrite(req)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields, "cooking_time")
}

func TestValidateWrite_CookingTimeOneAccepted(t *testing.T) {
	req := validRequest()
	req.CookingTime = intPtr(1)

	assert.Nil(t, validateWrite(req))
}

func TestValidateWrite_DuplicateIngredientRejected(t *testing.T) {
	req := validRequest()
	req.Ingredients = []IngredientLineRequest{
		{ID: 1, Amount: intPtr(2)},
		{ID: 1, Amount: intPtr(5)},
	}

	ve := validateWrite(req)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields, "ingredients")
}

func TestValidateWrite_DuplicateTagRejected(t *testing.T) {
	req := validRequest()
	req.Tags = []int64{1, 1}

	ve := validateWrite(req)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields, "tags")
}

func TestValidateWrite_ZeroAmountRejected(t *testing.T) {
	req := validRequest()
	req.Ingredients = []IngredientLineRequest{{ID: 1, Amount: intPtr(0)}}

	ve := validateWrite(req)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields, "ingredients")
}

func TestValidateWrite_EnumeratesEveryMissingField(t *testing.T) {
	ve := validateWrite(WriteRequest{})
	require.NotNil(t, ve)

	for _, field := range []string{"ingredients", "tags", "image", "name", "text", "cooking_time"} {
		assert.Contains(t, ve.Fields, field)
	}
}

// --- create / short link ---

func storedRecipe(id int64) *domain.Recipe {
	return &domain.Recipe{
		ID:          id,
		AuthorID:    1,
		Name:        "Borscht",
		Text:        "Simmer for ninety minutes.",
		Image:       "recipes/images/b.png",
		CookingTime: 90,
		ShortLink:   "deadbeef",
		Author:      &domain.User{ID: 1, Username: "cook"},
		Ingredients: []domain.IngredientRecipe{
			{IngredientID: 1, Amount: 2, Ingredient: &domain.Ingredient{ID: 1, Name: "salt", MeasurementUnit: "g"}},
			{IngredientID: 2, Amount: 3, Ingredient: &domain.Ingredient{ID: 2, Name: "pepper", MeasurementUnit: "g"}},
		},
		Tags: []domain.TagRecipe{
			{TagID: 1, Tag: &domain.Tag{ID: 1, Name: "soup", Slug: "soup"}},
			{TagID: 2, Tag: &domain.Tag{ID: 2, Name: "dinner", Slug: "dinner"}},
		},
	}
}

func TestService_Create_RoundTrip(t *testing.T) {
	env := newEnv()

	env.ingredients.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]domain.Ingredient{
		{ID: 1, Name: "salt", MeasurementUnit: "g"},
		{ID: 2, Name: "pepper", MeasurementUnit: "g"},
	}, nil)
	env.tags.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]domain.Tag{
		{ID: 1, Name: "soup", Slug: "soup"},
		{ID: 2, Name: "dinner", Slug: "dinner"},
	}, nil)
	env.store.On("Save", mock.Anything, "recipes/images").Return("recipes/images/b.png", nil)

	env.recipes.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recipe := args.Get(1).(*domain.Recipe)
		recipe.ID = 10
		assert.Len(t, recipe.ShortLink, domain.ShortLinkLength)
	}).Return(nil)

	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)
	env.favorites.On("Exists", mock.Anything, int64(1), int64(10)).Return(false, nil)
	env.cart.On("Exists", mock.Anything, int64(1), int64(10)).Return(false, nil)
	env.subs.On("Exists", mock.Anything, int64(1), int64(1)).Return(false, nil)

	resp, err := env.svc.Create(context.Background(), 1, validRequest())
	require.NoError(t, err)

	assert.EqualValues(t, 10, resp.ID)
	assert.Len(t, resp.Ingredients, 2)
	amounts := map[int64]int{}
	for _, line := range resp.Ingredients {
		amounts[line.ID] = line.Amount
	}
	assert.Equal(t, map[int64]int{1: 2, 2: 3}, amounts)

	tagIDs := map[int64]bool{}
	for _, tag := range resp.Tags {
		tagIDs[tag.ID] = true
	}
	assert.Equal(t, map[int64]bool{1: true, 2: true}, tagIDs)
	assert.Equal(t, baseURL+"/media/recipes/images/b.png", resp.Image)
}

func TestService_Create_RetriesShortLinkOnCollision(t *testing.T) {
	env := newEnv()

	env.ingredients.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Ingredient{
		{ID: 1}, {ID: 2},
	}, nil)
	env.tags.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Tag{{ID: 1}, {ID: 2}}, nil)
	env.store.On("Save", mock.Anything, mock.Anything).Return("recipes/images/b.png", nil)

	var tokens []string
	env.recipes.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		tokens = append(tokens, args.Get(1).(*domain.Recipe).ShortLink)
	}).Return(gorm.ErrDuplicatedKey).Once()
	env.recipes.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recipe := args.Get(1).(*domain.Recipe)
		tokens = append(tokens, recipe.ShortLink)
		recipe.ID = 11
	}).Return(nil).Once()

	env.recipes.On("GetByID", mock.Anything, int64(11)).Return(storedRecipe(11), nil)
	env.favorites.On("Exists", mock.Anything, int64(1), int64(11)).Return(false, nil)
	env.cart.On("Exists", mock.Anything, int64(1), int64(11)).Return(false, nil)
	env.subs.On("Exists", mock.Anything, int64(1), int64(1)).Return(false, nil)

	_, err := env.svc.Create(context.Background(), 1, validRequest())
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.NotEqual(t, tokens[0], tokens[1])
}

func TestService_Create_GivesUpAfterRepeatedCollisions(t *testing.T) {
	env := newEnv()

	env.ingredients.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Ingredient{{ID: 1}, {ID: 2}}, nil)
	env.tags.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Tag{{ID: 1}, {ID: 2}}, nil)
	env.store.On("Save", mock.Anything, mock.Anything).Return("recipes/images/b.png", nil)
	env.store.On("Remove", "recipes/images/b.png").Return(nil)
	env.recipes.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := env.svc.Create(context.Background(), 1, validRequest())
	assert.ErrorIs(t, err, ErrShortLinkExhausted)
	env.recipes.AssertNumberOfCalls(t, "Create", shortLinkAttempts)
}

func TestService_Create_UnknownIngredientRejected(t *testing.T) {
	env := newEnv()

	env.ingredients.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]domain.Ingredient{{ID: 1}}, nil)

	_, err := env.svc.Create(context.Background(), 1, validRequest())
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "ingredients")
}

func TestService_Get_ReportsAuthorSubscription(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)
	env.favorites.On("Exists", mock.Anything, int64(2), int64(10)).Return(false, nil)
	env.cart.On("Exists", mock.Anything, int64(2), int64(10)).Return(false, nil)
	env.subs.On("Exists", mock.Anything, int64(2), int64(1)).Return(true, nil)

	resp, err := env.svc.Get(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.True(t, resp.Author.IsSubscribed)
}

func TestService_Get_AnonymousViewerSkipsFlags(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)

	resp, err := env.svc.Get(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.False(t, resp.Author.IsSubscribed)
}

// --- permissions ---

func TestService_Delete_NonAuthorForbidden(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)

	err := env.svc.Delete(context.Background(), 99, false, 10)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Delete_AdminAllowed(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)
	env.recipes.On("Delete", mock.Anything, int64(10)).Return(nil)
	env.store.On("Remove", "recipes/images/b.png").Return(nil)

	err := env.svc.Delete(context.Background(), 99, true, 10)
	assert.NoError(t, err)
}

// --- short link resolution ---

func TestService_Resolve_KnownToken(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByShortLink", mock.Anything, "deadbeef").Return(storedRecipe(10), nil)

	id, err := env.svc.Resolve(context.Background(), "deadbeef")
	assert.NoError(t, err)
	assert.EqualValues(t, 10, id)
}

func TestService_Resolve_UnknownToken(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByShortLink", mock.Anything, "nope1234").Return(nil, gorm.ErrRecordNotFound)

	_, err := env.svc.Resolve(context.Background(), "nope1234")
	assert.ErrorIs(t, err, ErrShortLinkNotFound)
}

func TestService_GetLink(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)

	link, err := env.svc.GetLink(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, baseURL+"/s/deadbeef", link.ShortLink)
}

// --- favorite / cart toggles ---

func TestService_AddFavorite_FirstSucceedsSecondConflicts(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)
	env.favorites.On("Add", mock.Anything, int64(1), int64(10)).Return(nil).Once()
	env.favorites.On("Add", mock.Anything, int64(1), int64(10)).Return(gorm.ErrDuplicatedKey).Once()

	short, err := env.svc.AddFavorite(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, short.ID)

	_, err = env.svc.AddFavorite(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)
}

func TestService_RemoveFavorite_AbsentIsNotFound(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(10)).Return(storedRecipe(10), nil)
	env.favorites.On("Remove", mock.Anything, int64(1), int64(10)).Return(gorm.ErrRecordNotFound)

	err := env.svc.RemoveFavorite(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrNotFavorited)
}

func TestService_AddToCart_UnknownRecipe(t *testing.T) {
	env := newEnv()
	env.recipes.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := env.svc.AddToCart(context.Background(), 1, 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

// --- shopping cart aggregation ---

func TestService_DownloadShoppingCart_SumsPerNameAndUnit(t *testing.T) {
	env := newEnv()
	env.cart.On("Lines", mock.Anything, int64(1)).Return([]repository.CartLine{
		{Name: "salt", MeasurementUnit: "g", Amount: 5},
		{Name: "salt", MeasurementUnit: "g", Amount: 3},
		{Name: "pepper", MeasurementUnit: "g", Amount: 1},
	}, nil)

	report, err := env.svc.DownloadShoppingCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "salt - 8(g)\npepper - 1(g)", report)
}

func TestService_DownloadShoppingCart_SameNameDifferentUnitKeptApart(t *testing.T) {
	env := newEnv()
	env.cart.On("Lines", mock.Anything, int64(1)).Return([]repository.CartLine{
		{Name: "milk", MeasurementUnit: "ml", Amount: 200},
		{Name: "milk", MeasurementUnit: "g", Amount: 50},
	}, nil)

	report, err := env.svc.DownloadShoppingCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "milk - 200(ml)\nmilk - 50(g)", report)
}

func TestService_DownloadShoppingCart_EmptyCart(t *testing.T) {
	env := newEnv()
	env.cart.On("Lines", mock.Anything, int64(1)).Return([]repository.CartLine{}, nil)

	report, err := env.svc.DownloadShoppingCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "", report)
}
