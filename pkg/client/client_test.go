package client

import (
	"context"
	"fmt"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/plateful/recipebook/internal/api"
	"github.com/plateful/recipebook/internal/model"
	"github.com/plateful/recipebook/internal/service"
	"github.com/plateful/recipebook/internal/types"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// newTestServer runs the real recipe API against an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Recipe{}))

	handler := api.NewRecipeHandler(service.NewRecipeService(db, zap.NewNop()), zap.NewNop())
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func createRequest(title, category string) types.CreateRecipeRequest {
	return types.CreateRecipeRequest{
		Title:        title,
		Description:  "Test dish",
		Ingredients:  []string{"thing one", "thing two"},
		Instructions: "1. Combine\n2. Cook",
		PrepTime:     intPtr(10),
		CookTime:     intPtr(20),
		Servings:     intPtr(2),
		Difficulty:   "easy",
		Category:     strPtr(category),
	}
}

func TestClientCRUDRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL + "/api/v1")
	ctx := context.Background()

	created, err := c.Create(ctx, createRequest("Pho", "Soup"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Pho", created.Title)
	assert.Equal(t, 30, created.TotalTime())

	fetched, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	updated, err := c.Update(ctx, created.ID, types.UpdateRecipeRequest{Servings: intPtr(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Servings)
	assert.Equal(t, "Pho", updated.Title)

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, categories)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err), "expected 404 after delete, got %v", err)
}

func TestClientListWithQuery(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL + "/api/v1")
	ctx := context.Background()

	for i, title := range []string{"Crepes", "Waffles", "Toast"} {
		req := createRequest(title, "Breakfast")
		req.PrepTime = intPtr((i + 1) * 10)
		_, err := c.Create(ctx, req)
		require.NoError(t, err)
	}
	_, err := c.Create(ctx, createRequest("Steak", "Meat"))
	require.NoError(t, err)

	q := types.DefaultListQuery()
	q.Category = "Breakfast"
	q.SortBy = "prep_time"
	q.SortOrder = "asc"
	q.PerPage = 2

	page, err := c.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Crepes", page.Data[0].Title)
	assert.Equal(t, "Waffles", page.Data[1].Title)
}

func TestClientValidationErrorSurface(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL + "/api/v1")

	req := createRequest("Broken", "None")
	req.Ingredients = []string{}
	req.Difficulty = "brutal"

	_, err := c.Create(context.Background(), req)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Contains(t, apiErr.Errors, "ingredients")
	assert.Contains(t, apiErr.Errors, "difficulty")
}

func TestClientNotFound(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL + "/api/v1")

	_, err := c.Get(context.Background(), 4242)
	assert.True(t, IsNotFound(err))

	err = c.Delete(context.Background(), 4242)
	assert.True(t, IsNotFound(err))
}
