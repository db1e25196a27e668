package types

import (
	"net/url"

	"github.com/plateful/recipebook/internal/model"
)

// CreateRecipeRequest is the payload for POST /recipes. The required set is
// enforced by the binding tags; the numeric fields are pointers so a literal
// zero survives the required check.
type CreateRecipeRequest struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Description  string   `json:"description" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions string   `json:"instructions" binding:"required"`
	PrepTime     *int     `json:"prep_time" binding:"required,min=0"`
	CookTime     *int     `json:"cook_time" binding:"required,min=0"`
	Servings     *int     `json:"servings" binding:"required,min=1"`
	Difficulty   string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Category     *string  `json:"category" binding:"omitempty,max=255"`
	ImageURL     *string  `json:"image_url" binding:"omitempty,url"`
}

// UpdateRecipeRequest is the payload for PUT /recipes/:id. Every field is
// independently optional; a present field is validated with the same rule as
// on create and applied on its own. The conditional rules live in Validate
// rather than in binding tags because "absent" and "present but empty" must
// be told apart.
type UpdateRecipeRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions *string  `json:"instructions"`
	PrepTime     *int     `json:"prep_time"`
	CookTime     *int     `json:"cook_time"`
	Servings     *int     `json:"servings"`
	Difficulty   *string  `json:"difficulty"`
	Category     *string  `json:"category"`
	ImageURL     *string  `json:"image_url"`
}

// FieldErrors maps a field name to the list of rule violations on it.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Validate checks only the fields that were supplied.
func (r UpdateRecipeRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Title != nil {
		if *r.Title == "" {
			errs.add("title", "title must not be empty")
		} else if len(*r.Title) > 255 {
			errs.add("title", "title must not exceed 255 characters")
		}
	}
	if r.Description != nil && *r.Description == "" {
		errs.add("description", "description must not be empty")
	}
	if r.Ingredients != nil && len(r.Ingredients) == 0 {
		errs.add("ingredients", "at least one ingredient is required")
	}
	if r.Instructions != nil && *r.Instructions == "" {
		errs.add("instructions", "instructions must not be empty")
	}
	if r.PrepTime != nil && *r.PrepTime < 0 {
		errs.add("prep_time", "prep_time must be at least 0")
	}
	if r.CookTime != nil && *r.CookTime < 0 {
		errs.add("cook_time", "cook_time must be at least 0")
	}
	if r.Servings != nil && *r.Servings < 1 {
		errs.add("servings", "servings must be at least 1")
	}
	if r.Difficulty != nil && !model.ValidDifficulty(*r.Difficulty) {
		errs.add("difficulty", "difficulty must be one of easy, medium, hard")
	}
	if r.Category != nil && len(*r.Category) > 255 {
		errs.add("category", "category must not exceed 255 characters")
	}
	if r.ImageURL != nil && *r.ImageURL != "" && !ValidURL(*r.ImageURL) {
		errs.add("image_url", "image_url must be a valid URL")
	}

	return errs
}

// Recipe materializes a bound-and-validated create payload.
func (r CreateRecipeRequest) Recipe() model.Recipe {
	return model.Recipe{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  model.StringArray(r.Ingredients),
		Instructions: r.Instructions,
		PrepTime:     *r.PrepTime,
		CookTime:     *r.CookTime,
		Servings:     *r.Servings,
		Difficulty:   r.Difficulty,
		Category:     r.Category,
		ImageURL:     r.ImageURL,
	}
}

// Changes returns the column set a validated update payload touches, in the
// form gorm's Updates expects. An empty map means nothing to do.
func (r UpdateRecipeRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Ingredients != nil {
		changes["ingredients"] = model.StringArray(r.Ingredients)
	}
	if r.Instructions != nil {
		changes["instructions"] = *r.Instructions
	}
	if r.PrepTime != nil {
		changes["prep_time"] = *r.PrepTime
	}
	if r.CookTime != nil {
		changes["cook_time"] = *r.CookTime
	}
	if r.Servings != nil {
		changes["servings"] = *r.Servings
	}
	if r.Difficulty != nil {
		changes["difficulty"] = *r.Difficulty
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.ImageURL != nil {
		changes["image_url"] = *r.ImageURL
	}
	return changes
}

// ValidURL reports whether raw parses as an absolute URL with a host.
func ValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
