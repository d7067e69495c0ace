package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/actions"
	"storefront/auth"
	"storefront/cache"
	"storefront/events"
	"storefront/models"
	"storefront/store"
	"storefront/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemStore, *actions.Deps) {
	t.Helper()

	mem := store.NewMem()
	deps := &actions.Deps{
		Store:    mem,
		Sessions: auth.NewManager(mem, "test-secret", time.Hour),
		Validate: validator.New([]string{"PayPal", "Stripe", "CashOnDelivery"}),
		Pages:    cache.Nop{},
		Events:   events.Nop{},
		PageSize: 12,
	}
	router := SetupRouters(deps)
	require.NotNil(t, router)
	return router, mem, deps
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	TotalPages int             `json:"totalPages"`
	RedirectTo string          `json:"redirectTo"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func seedProduct(t *testing.T, mem *store.MemStore, slug string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        "Product " + slug,
		Slug:        slug,
		Category:    "Shirts",
		Brand:       "Acme",
		Description: "A test product",
		Price:       "19.99",
		Stock:       stock,
		Images:      []string{"/images/" + slug + ".jpg"},
	}
	require.NoError(t, mem.CreateProduct(context.Background(), product))
	return product
}

func signUp(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign-up", jsonBody(t, gin.H{
		"name":            "Alice",
		"email":           email,
		"password":        "secret",
		"confirmPassword": "secret",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := strings.TrimPrefix(w.Header().Get("Authorization"), "Bearer ")
	require.NotEmpty(t, token)
	return token
}

func TestSignUpAndProfileRoundTrip(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := signUp(t, router, "alice@example.com")

	// Authenticated profile fetch works.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	// The password digest never leaves the API.
	assert.NotContains(t, string(env.Data), "password")

	// The same route is closed to anonymous callers.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnonymousCartFlow(t *testing.T) {
	router, mem, _ := newTestRouter(t)
	product := seedProduct(t, mem, "polo-shirt", 5)

	// First mutation mints the session cart cookie.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", jsonBody(t, gin.H{
		"productId": product.ID,
		"name":      product.Name,
		"slug":      product.Slug,
		"qty":       2,
		"image":     product.Images[0],
		"price":     product.Price,
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cartCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_cart_id" {
			cartCookie = cookie
		}
	}
	require.NotNil(t, cartCookie)

	// The cookie identifies the cart on later requests.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(cartCookie)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	var cart models.Cart
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Qty)
	assert.Equal(t, "39.98", cart.ItemsPrice)

	// Removing twice empties the line.
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+product.ID, nil)
		req.AddCookie(cartCookie)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	storedCart, err := mem.GetCartBySessionID(context.Background(), cartCookie.Value)
	require.NoError(t, err)
	assert.Empty(t, storedCart.Items)
}

func TestProductListingAndDetail(t *testing.T) {
	router, mem, _ := newTestRouter(t)
	seedProduct(t, mem, "polo-shirt", 5)
	seedProduct(t, mem, "chinos", 5)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?query=polo", nil))
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	assert.Equal(t, 1, env.TotalPages)

	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "polo-shirt", products[0].Slug)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/polo-shirt", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesGuarded(t *testing.T) {
	router, mem, deps := newTestRouter(t)

	// Anonymous requests are sent to the sign-in page.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sign-in", w.Header().Get("Location"))

	// A signed-in non-admin is refused inline.
	userToken := signUp(t, router, "bob@example.com")
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin session passes.
	digest, err := auth.HashPassword("secret")
	require.NoError(t, err)
	admin := &models.User{Name: "Root", Email: "root@example.com", Password: digest, Role: models.RoleAdmin}
	require.NoError(t, mem.CreateUser(context.Background(), admin))
	adminSess, err := deps.Sessions.Issue(context.Background(), admin)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminSess.Token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestValidationFailureShape(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign-up", jsonBody(t, gin.H{
		"name":            "Alice",
		"email":           "not-an-email",
		"password":        "secret",
		"confirmPassword": "other",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
	assert.Contains(t, w.Body.String(), `"fields"`)
}
