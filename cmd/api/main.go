package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/auth"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/recipes"
	"foodgram/internal/modules/users"
	"foodgram/internal/pkg/images"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "foodgram.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	baseURL := strings.TrimRight(getenv("BASE_URL", "http://localhost:8080"), "/")
	mediaRoot := getenv("MEDIA_ROOT", "media")
	port := getenv("PORT", "8080")

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Ingredient{},
		&domain.Tag{},
		&domain.Recipe{},
		&domain.IngredientRecipe{},
		&domain.TagRecipe{},
		&domain.Favorite{},
		&domain.ShoppingCart{},
		&domain.Subscription{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	store := images.NewStore(mediaRoot)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	usersService := users.NewService(userRepo, subscriptionRepo, recipeRepo, store, baseURL)
	usersHandler := users.NewHandler(usersService, baseURL)

	catalogService := catalog.NewService(ingredientRepo, tagRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	recipesService := recipes.NewService(
		recipeRepo,
		ingredientRepo,
		tagRepo,
		favoriteRepo,
		cartRepo,
		subscriptionRepo,
		store,
		baseURL,
	)
	recipesHandler := recipes.NewHandler(recipesService, baseURL)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())
	r.Static("/media", mediaRoot)

	api := r.Group("/api")
	{
		// public reads still see the viewer when a token is present
		public := api.Group("/")
		public.Use(middleware.OptionalJWTAuth(j))

		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))

		authHandler.RegisterRoutes(api, protected)
		catalogHandler.RegisterRoutes(public)
		usersHandler.RegisterRoutes(public, protected)
		recipesHandler.RegisterRoutes(public, protected)
	}

	recipesHandler.RegisterShortLinkRoutes(r)

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
