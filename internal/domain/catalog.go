package domain

// Ingredient is catalog data: name plus its measurement unit.
// Immutable from the API, loaded by cmd/seed.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:128;not null;index"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:64;not null"`
}

func (Ingredient) TableName() string { return "ingredients" }

type Tag struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:32;not null"`
	Slug string `json:"slug" gorm:"size:32;not null;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }
