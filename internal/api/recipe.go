package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plateful/recipebook/internal/service"
	"github.com/plateful/recipebook/internal/types"
)

// RecipeHandler exposes the recipe resource over HTTP.
type RecipeHandler struct {
	recipes *service.RecipeService
	logger  *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes *service.RecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, logger: logger}
}

// RegisterRoutes mounts the recipe endpoints on the given group. The
// /categories route must precede /:id so gin does not shadow it.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/categories", h.ListCategories)
		recipes.GET("/:id", h.GetRecipe)

		writes := recipes.Group("", writeGuards...)
		writes.POST("", h.CreateRecipe)
		writes.PUT("/:id", h.UpdateRecipe)
		writes.DELETE("/:id", h.DeleteRecipe)
	}
}

// ListRecipes handles GET /recipes. Every query parameter is optional and
// malformed values are normalized rather than rejected: this endpoint cannot
// be made to fail through query-string manipulation.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	q := types.ParseListQuery(c.Request.URL.Query())

	page, err := h.recipes.List(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("list recipes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListCategories handles GET /recipes/categories.
func (h *RecipeHandler) ListCategories(c *gin.Context) {
	categories, err := h.recipes.Categories(c.Request.Context())
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetRecipe handles GET /recipes/:id.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe handles POST /recipes.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  fieldErrors(err, req),
		})
		return
	}

	recipe := req.Recipe()
	created, err := h.recipes.Create(c.Request.Context(), &recipe)
	if err != nil {
		h.logger.Error("create recipe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateRecipe handles PUT /recipes/:id. Only the supplied fields are
// validated and applied; everything else is left as stored.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  types.FieldErrors{"body": {"request body is not valid JSON for this resource"}},
		})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  errs,
		})
		return
	}

	updated, err := h.recipes.Update(c.Request.Context(), id, req.Changes())
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteRecipe handles DELETE /recipes/:id. Deletes are permanent.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// recipeID parses the :id path segment. A non-numeric id behaves like any
// other missing record.
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return 0, false
	}
	return uint(id), true
}

func (h *RecipeHandler) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	h.logger.Error("recipe store error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
