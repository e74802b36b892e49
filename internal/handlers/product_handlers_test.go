package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"storeapi/internal/transport"
)

func createStore(t *testing.T, env *testEnv, access, name string) int {
	t.Helper()

	rec := env.do(http.MethodPost, "/store", map[string]string{"name": name}, access)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.StoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login("alice")
	storeID := createStore(t, env, access, "Shop1")

	rec := env.do(http.MethodPost, "/product", map[string]any{
		"name": "Widget", "price": 9.99, "store_id": storeID,
	}, access)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.ID)
	require.Equal(t, "Widget", resp.Name)
	require.Equal(t, 9.99, resp.Price)
	require.Equal(t, "Shop1", resp.Store.Name)

	// store_id must not leak into the response, the nested store replaces it
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.NotContains(t, raw, "store_id")
	require.Contains(t, raw, "store")
}

func TestCreateProductUnknownStore(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login("alice")

	rec := env.do(http.MethodPost, "/product", map[string]any{
		"name": "Widget", "price": 9.99, "store_id": 42,
	}, access)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_store", errorCode(t, rec))
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login("alice")

	cases := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{"missing name", map[string]any{"price": 9.99, "store_id": 1}, "name is required"},
		{"missing price", map[string]any{"name": "Widget", "store_id": 1}, "price is required"},
		{"missing store_id", map[string]any{"name": "Widget", "price": 9.99}, "store_id is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/product", tc.body, access)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var resp struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, "validation", resp.Error)
			require.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login("alice")

	rec := env.do(http.MethodGet, "/product/42", nil, access)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", errorCode(t, rec))
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login("alice")
	storeID := createStore(t, env, access, "Shop1")

	rec := env.do(http.MethodPost, "/product", map[string]any{
		"name": "Widget", "price": 9.99, "store_id": storeID,
	}, access)
	require.Equal(t, http.StatusCreated, rec.Code)

	// only the provided field changes
	rec = env.do(http.MethodPut, "/product/1", map[string]any{"price": 19.99}, access)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Widget", resp.Name)
	require.Equal(t, 19.99, resp.Price)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login("alice")

	rec := env.do(http.MethodPut, "/product/42", map[string]any{"name": "Widget"}, access)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.login("alice")
	storeID := createStore(t, env, access, "Shop1")

	rec := env.do(http.MethodPost, "/product", map[string]any{
		"name": "Widget", "price": 9.99, "store_id": storeID,
	}, access)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodDelete, "/product/1", nil, access)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/product/1", nil, access)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/product/1", nil, access)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductEndpointsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/product", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "authorization_required", errorCode(t, rec))

	rec = env.do(http.MethodPost, "/product", map[string]any{
		"name": "Widget", "price": 9.99, "store_id": 1,
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
