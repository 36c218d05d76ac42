package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is stored as a JSON array (jsonb on postgres, text on sqlite).
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported StringArray source %T", value)
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID          uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Name        string             `gorm:"size:255;not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	PrepTime    int                `gorm:"not null;default:0" json:"prep_time"`
	CookTime    int                `gorm:"not null;default:0" json:"cook_time"`
	Servings    int                `gorm:"not null;default:1" json:"servings"`
	Difficulty  string             `gorm:"size:20;not null;default:'medium'" json:"difficulty"`
	DietaryTags StringArray        `gorm:"type:text;not null;default:'[]'" json:"dietary_tags"`
	SourceURL   string             `gorm:"size:512" json:"source_url,omitempty"`
	ImageURL    string             `gorm:"size:512" json:"image_url,omitempty"`
	ExternalID  *string            `gorm:"size:64;uniqueIndex" json:"external_id,omitempty"`
	CreatedByID *uuid.UUID         `gorm:"type:varchar(36);index" json:"created_by,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientNames returns the ingredient names in recipe order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		names[i] = ri.Ingredient.Name
	}
	return names
}

// RecipeIngredient is the USES edge between a recipe and an ingredient.
type RecipeIngredient struct {
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"-"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);primaryKey;index" json:"-"`
	Position     int        `gorm:"not null" json:"position"`
	Measure      string     `gorm:"size:100" json:"measure,omitempty"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
}

// RecipeLike is the LIKES edge. The composite key makes likes idempotent.
type RecipeLike struct {
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);primaryKey;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}
