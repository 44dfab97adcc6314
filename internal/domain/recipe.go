package domain

import "time"

// ShortLinkLength is how many characters of a UUID make up a recipe's
// share token. Collisions are possible at this width; the recipes
// service regenerates on a duplicate-key error.
const ShortLinkLength = 8

type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:256;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	Image       string    `json:"image" gorm:"size:512;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null"`
	ShortLink   string    `json:"-" gorm:"size:8;not null;uniqueIndex"`
	PubDate     time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Ingredients []IngredientRecipe `json:"ingredients,omitempty" gorm:"foreignKey:RecipeID"`
	Tags        []TagRecipe        `json:"tags,omitempty" gorm:"foreignKey:RecipeID"`
}

func (Recipe) TableName() string { return "recipes" }

// IngredientRecipe is one ingredient line of a recipe. A recipe may
// reference an ingredient at most once.
type IngredientRecipe struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null"`

	Recipe     *Recipe     `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (IngredientRecipe) TableName() string { return "ingredient_recipes" }

type TagRecipe struct {
	ID       int64 `json:"id" gorm:"primaryKey"`
	RecipeID int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_tag"`
	TagID    int64 `json:"tag_id" gorm:"not null;uniqueIndex:idx_recipe_tag"`

	Recipe *Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tag    *Tag    `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (TagRecipe) TableName() string { return "tag_recipes" }
