package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/plateful/recipebook/internal/model"
	"github.com/plateful/recipebook/internal/types"
)

// ErrNotFound is returned by single-record lookups for a nonexistent id.
var ErrNotFound = errors.New("recipe not found")

// totalTimeExpr is the derived total-time column. The sum is not persisted,
// so filtering and ordering on it must happen at the expression level inside
// the same query as every other predicate; recomputing it in a second pass
// would break pagination counts.
const totalTimeExpr = "(prep_time + cook_time)"

// RecipeService owns every recipe operation against the store.
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, logger: logger}
}

// List executes one retrieval plan for the normalized query: filter
// predicate, sort key and page window. Total is counted with the same
// predicate before the window is applied, so a page past the end comes back
// empty with Total intact.
func (s *RecipeService) List(ctx context.Context, q types.ListQuery) (types.Page, error) {
	tx := s.applyFilters(s.db.WithContext(ctx).Model(&model.Recipe{}), q)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return types.Page{}, fmt.Errorf("counting recipes: %w", err)
	}

	var recipes []model.Recipe
	err := tx.Order(orderClause(q)).
		Limit(q.PerPage).
		Offset(q.Offset()).
		Find(&recipes).Error
	if err != nil {
		return types.Page{}, fmt.Errorf("listing recipes: %w", err)
	}

	return types.NewPage(recipes, q, total), nil
}

// applyFilters ANDs every present predicate onto tx. The search predicate is
// the single OR: case-insensitive substring on title or description.
func (s *RecipeService) applyFilters(tx *gorm.DB, q types.ListQuery) *gorm.DB {
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Difficulty != "" {
		tx = tx.Where("difficulty = ?", q.Difficulty)
	}
	if q.MinPrepTime != nil {
		tx = tx.Where("prep_time >= ?", *q.MinPrepTime)
	}
	if q.MaxPrepTime != nil {
		tx = tx.Where("prep_time <= ?", *q.MaxPrepTime)
	}
	if q.MinTotalTime != nil {
		tx = tx.Where(totalTimeExpr+" >= ?", *q.MinTotalTime)
	}
	if q.MaxTotalTime != nil {
		tx = tx.Where(totalTimeExpr+" <= ?", *q.MaxTotalTime)
	}
	if q.MinServings != nil {
		tx = tx.Where("servings >= ?", *q.MinServings)
	}
	if q.MaxServings != nil {
		tx = tx.Where("servings <= ?", *q.MaxServings)
	}
	return tx
}

// orderClause renders the sort key. ListQuery is normalized, so SortBy is
// already limited to the allow-list and SortOrder to asc/desc; the values can
// be interpolated safely. Ties always break by ascending id so pagination
// stays deterministic.
func orderClause(q types.ListQuery) string {
	column := q.SortBy
	if column == "total_time" {
		column = totalTimeExpr
	}
	return fmt.Sprintf("%s %s, id ASC", column, strings.ToUpper(q.SortOrder))
}

// Get retrieves a recipe by ID.
func (s *RecipeService) Get(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// Create persists a new recipe and returns it with its assigned id.
func (s *RecipeService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}
	s.logger.Info("recipe created", zap.Uint("id", recipe.ID), zap.String("title", recipe.Title))
	return recipe, nil
}

// Update applies a partial change set and returns the merged record. Fields
// outside the change set are left untouched; there is no conflict detection,
// the last committed write wins.
func (s *RecipeService) Update(ctx context.Context, id uint, changes map[string]interface{}) (*model.Recipe, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("updating recipe %d: %w", id, err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a recipe permanently.
func (s *RecipeService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting recipe %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Info("recipe deleted", zap.Uint("id", id))
	return nil
}

// Categories returns the distinct non-empty category values, sorted. The set
// is derived from the recipes themselves; there is no category table.
func (s *RecipeService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Distinct("category").
		Where("category IS NOT NULL AND category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
