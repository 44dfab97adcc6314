package main

import (
	"fmt"
	"log"

	"foodgram/internal/database"
	"foodgram/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("foodgram.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
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

	// Cleanup old data (join rows first, then owners)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM shopping_carts")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM tag_recipes")
	db.Exec("DELETE FROM ingredient_recipes")
	db.Exec("DELETE FROM recipes")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM ingredients")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@foodgram.local",
		Username:     "admin",
		FirstName:    "Site",
		LastName:     "Admin",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@foodgram.local / admin123")

	cooks := []domain.User{}
	names := [][2]string{{"Anna", "Smith"}, {"Boris", "Ivanov"}, {"Clara", "Lee"}}
	for i, n := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("cook1234"), bcrypt.DefaultCost)
		cook := domain.User{
			Email:        fmt.Sprintf("cook%d@foodgram.local", i+1),
			Username:     fmt.Sprintf("cook%d", i+1),
			FirstName:    n[0],
			LastName:     n[1],
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
		}
		db.Create(&cook)
		cooks = append(cooks, cook)
	}

	// ================== CATALOG ==================
	log.Println("Creating tags...")
	tagFixtures := [][2]string{
		{"Breakfast", "breakfast"},
		{"Lunch", "lunch"},
		{"Dinner", "dinner"},
		{"Dessert", "dessert"},
	}
	tags := make([]domain.Tag, 0, len(tagFixtures))
	for _, f := range tagFixtures {
		tag := domain.Tag{Name: f[0], Slug: f[1]}
		db.Create(&tag)
		tags = append(tags, tag)
	}

	log.Println("Creating ingredients...")
	ingredientFixtures := [][2]string{
		{"salt", "g"},
		{"pepper", "g"},
		{"sugar", "g"},
		{"milk", "ml"},
		{"flour", "g"},
		{"egg", "pc"},
		{"butter", "g"},
		{"potato", "g"},
		{"onion", "pc"},
		{"beef", "g"},
	}
	ingredients := make([]domain.Ingredient, 0, len(ingredientFixtures))
	for _, f := range ingredientFixtures {
		ing := domain.Ingredient{Name: f[0], MeasurementUnit: f[1]}
		db.Create(&ing)
		ingredients = append(ingredients, ing)
	}

	// ================== RECIPES ==================
	log.Println("Creating recipes...")
	recipeFixtures := []struct {
		name        string
		text        string
		cookingTime int
		tagIdx      int
		lines       []struct {
			ingIdx int
			amount int
		}
	}{
		{
			name: "Pancakes", text: "Mix flour, milk and eggs, fry on both sides.",
			cookingTime: 20, tagIdx: 0,
			lines: []struct {
				ingIdx int
				amount int
			}{{4, 200}, {3, 300}, {5, 2}, {2, 30}},
		},
		{
			name: "Beef stew", text: "Brown the beef, add onion and potato, simmer.",
			cookingTime: 90, tagIdx: 2,
			lines: []struct {
				ingIdx int
				amount int
			}{{9, 500}, {7, 400}, {8, 2}, {0, 5}},
		},
		{
			name: "Mashed potato", text: "Boil potato, mash with butter and milk.",
			cookingTime: 30, tagIdx: 1,
			lines: []struct {
				ingIdx int
				amount int
			}{{7, 600}, {6, 50}, {3, 100}, {0, 3}},
		},
	}

	for i, f := range recipeFixtures {
		author := cooks[i%len(cooks)]
		recipe := domain.Recipe{
			AuthorID:    author.ID,
			Name:        f.name,
			Text:        f.text,
			Image:       fmt.Sprintf("recipes/images/seed%d.png", i+1),
			CookingTime: f.cookingTime,
			ShortLink:   uuid.New().String()[:domain.ShortLinkLength],
		}
		db.Create(&recipe)

		for _, line := range f.lines {
			db.Create(&domain.IngredientRecipe{
				RecipeID:     recipe.ID,
				IngredientID: ingredients[line.ingIdx].ID,
				Amount:       line.amount,
			})
		}
		db.Create(&domain.TagRecipe{RecipeID: recipe.ID, TagID: tags[f.tagIdx].ID})
	}

	// ================== RELATIONS ==================
	log.Println("Creating favorites, carts and subscriptions...")
	db.Create(&domain.Favorite{UserID: cooks[0].ID, RecipeID: 2})
	db.Create(&domain.ShoppingCart{UserID: cooks[0].ID, RecipeID: 2})
	db.Create(&domain.ShoppingCart{UserID: cooks[0].ID, RecipeID: 3})
	db.Create(&domain.Subscription{UserID: cooks[0].ID, SubscribedToID: cooks[1].ID})
	db.Create(&domain.Subscription{UserID: cooks[1].ID, SubscribedToID: cooks[0].ID})

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin: admin@foodgram.local / admin123")
	log.Println("Cooks: cook1@foodgram.local ... cook3@foodgram.local / cook1234")
}
