package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"staticreports-agent/internal/config"
	"staticreports-agent/internal/models"
	"staticreports-agent/services"

	"github.com/gin-gonic/gin"
)

func newHookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rec := services.NewReconcilerWithParts(&config.AppConfig{}, nil, nil, nil, nil, nil)
	NewHookController(rec).RegisterRoutes(r)
	return r
}

func TestDispatchHookUnknownEvent(t *testing.T) {
	router := newHookRouter()

	req := httptest.NewRequest(http.MethodPost, "/staticreports/api/v1/hooks/bogus-event", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want 400", w.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not decodable: %v", err)
	}
	if body.Code != "hook.unknown" {
		t.Errorf("error code = %q", body.Code)
	}
}

func TestDispatchHookRejectsGet(t *testing.T) {
	router := newHookRouter()

	req := httptest.NewRequest(http.MethodGet, "/staticreports/api/v1/hooks/install", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code == http.StatusOK {
		t.Error("hook dispatch must not be reachable via GET")
	}
}
