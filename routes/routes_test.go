package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/handlers"
	"jusbook/models"
	ai "jusbook/services/intelligence"
	"jusbook/utils"
)

const testSecret = "route-secret"

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()

	repo := catalogRepo.NewMemoryCatalogRepo(catalogRepo.Options{Seed: 7}, nil)
	engine := ai.NewDialogueEngine(repo, ai.NewMemorySessionStore(), nil, ai.EngineOptions{BusinessName: "Jusbook"})

	r := gin.New()
	RegisterRoutes(r, handlers.NewHandlerBundle(repo, engine), Options{
		AdminSecret:       testSecret,
		MaxRequestsPerMin: 6000,
		Logger:            zap.NewNop(),
	})
	return r
}

func TestHealthRoute(t *testing.T) {
	r := newRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jusbook-chatbot")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestChatRoute(t *testing.T) {
	r := newRouter(t)
	body, _ := json.Marshal(models.ChatRequest{Message: "hi"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.IntentGreeting, resp.Intent)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateAdminToken(testSecret, "staff-1", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "occupancy_rate")
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
