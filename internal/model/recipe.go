package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Difficulty levels accepted for a recipe.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is one of the accepted difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// StringArray stores an ordered list of strings in a JSON column. Order is
// preserved end to end: it is the display order of the ingredients.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
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
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the single persisted entity of the catalog. Deletes are hard
// deletes, so there is no soft-delete column.
type Recipe struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Description  string      `gorm:"type:text;not null" json:"description"`
	Ingredients  StringArray `gorm:"type:json;not null;default:'[]'" json:"ingredients"`
	Instructions string      `gorm:"type:text" json:"instructions"`
	PrepTime     int         `gorm:"not null;default:0" json:"prep_time"`
	CookTime     int         `gorm:"not null;default:0" json:"cook_time"`
	Servings     int         `gorm:"not null;default:1" json:"servings"`
	Difficulty   string      `gorm:"size:20;not null;default:'medium'" json:"difficulty"`
	Category     *string     `gorm:"size:255" json:"category"`
	ImageURL     *string     `gorm:"size:255" json:"image_url"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TotalTime is the derived prep_time + cook_time sum. It is never persisted;
// list filtering and sorting compute the same sum at the SQL level.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// MarshalJSON includes the derived total_time alongside the stored fields.
func (r Recipe) MarshalJSON() ([]byte, error) {
	type alias Recipe
	return json.Marshal(struct {
		alias
		TotalTime int `json:"total_time"`
	}{alias(r), r.TotalTime()})
}
