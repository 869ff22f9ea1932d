package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lolanalyzer/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *Router {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	return NewRouter(engine)
}

func TestNewRouter(t *testing.T) {
	router := setupTestRouter()

	assert.NotNil(t, router)
	assert.NotNil(t, router.Engine)
	assert.NotNil(t, router.api)
}

func TestSetupRoutes(t *testing.T) {
	router := setupTestRouter()

	playerHandler := &handlers.PlayerHandler{}

	router.SetupRoutes(playerHandler)

	var registered []string
	for _, route := range router.Engine.Routes() {
		registered = append(registered, route.Method+" "+route.Path)
	}

	assert.ElementsMatch(t, []string{
		"GET /api/v1/players",
		"GET /api/v1/players/:puuid",
		"POST /api/v1/players",
		"GET /metrics",
	}, registered)
}

func TestMetricsRoute(t *testing.T) {
	router := setupTestRouter()
	router.SetupRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.Engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
