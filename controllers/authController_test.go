package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodcartapp/foodcart-api/initializers"
	"github.com/foodcartapp/foodcart-api/middlewares"
	"github.com/foodcartapp/foodcart-api/models"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	initializers.DB = setupTestDB(t)

	router := gin.New()
	router.POST("/auth/login", Login)
	router.GET("/manager/restaurants",
		middlewares.Authenticate(), middlewares.RequireManager(), GetRestaurants)
	return router
}

func seedStaff(t *testing.T, username, password string, isManager bool) {
	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, initializers.DB.Create(&models.StaffUser{
		Username:  username,
		Password:  hash,
		IsManager: isManager,
	}).Error)
}

func login(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	return postJSON(router, "/auth/login",
		`{"username": "`+username+`", "password": "`+password+`"}`)
}

func TestLoginIssuesToken(t *testing.T) {
	router := setupAuthTest(t)
	seedStaff(t, "manager", "secret", true)

	w := login(t, router, "manager", "secret")
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
	assert.Equal(t, true, response["isManager"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := setupAuthTest(t)
	seedStaff(t, "manager", "secret", true)

	assert.Equal(t, http.StatusUnauthorized, login(t, router, "manager", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, login(t, router, "nobody", "secret").Code)
}

func TestManagerRoutesRequireToken(t *testing.T) {
	router := setupAuthTest(t)
	seedStaff(t, "manager", "secret", true)
	seedStaff(t, "clerk", "secret", false)

	// No token at all.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manager/restaurants", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manager/restaurants", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token, but not a manager.
	var clerkResp map[string]any
	loginW := login(t, router, "clerk", "secret")
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &clerkResp))
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/manager/restaurants", nil)
	req.Header.Set("Authorization", "Bearer "+clerkResp["token"].(string))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Manager token goes through.
	var managerResp map[string]any
	loginW = login(t, router, "manager", "secret")
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &managerResp))
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/manager/restaurants", nil)
	req.Header.Set("Authorization", "Bearer "+managerResp["token"].(string))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
