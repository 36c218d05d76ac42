package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category  string    `gorm:"size:50;not null;default:'other'" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PantryItem is the HAS edge between a user and an ingredient.
type PantryItem struct {
	UserID       uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"-"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"-"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	CreatedAt    time.Time  `json:"added_at"`
}

// All lists every model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&DietaryPreference{},
		&Allergen{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeLike{},
		&PantryItem{},
	}
}
