package domain

import "time"

// Favorite marks a recipe as favorited by a user. Existence of the row
// is the whole state; the pair is unique.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_fav_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_user_fav_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User   *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Favorite) TableName() string { return "favorites" }

type ShoppingCart struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_cart_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_user_cart_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User   *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (ShoppingCart) TableName() string { return "shopping_carts" }

// Subscription: UserID follows SubscribedToID's recipe feed.
type Subscription struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	UserID         int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_subscribed_to"`
	SubscribedToID int64     `json:"subscribed_to_id" gorm:"not null;index;uniqueIndex:idx_user_subscribed_to"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	User         *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SubscribedTo *User `json:"subscribed_to,omitempty" gorm:"foreignKey:SubscribedToID;constraint:OnDelete:CASCADE"`
}

func (Subscription) TableName() string { return "subscriptions" }
