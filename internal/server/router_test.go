package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/capitolwatch/capitolwatch-backend/internal/handlers"
	"github.com/capitolwatch/capitolwatch-backend/internal/jobs"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/middleware"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return NewRouter(RouterConfig{
		Log:               log,
		LegislatorHandler: handlers.NewLegislatorHandler(log, nil, nil),
		VoteHandler:       handlers.NewVoteHandler(log, nil),
		PortraitHandler:   handlers.NewPortraitHandler(log, nil),
		JobsHandler:       handlers.NewJobsHandler(log, jobs.NewRegistry()),
		AuthMiddleware:    middleware.NewAuthMiddleware(log),
	})
}

func TestCorsOrigins_SplitsExactAndWildcard(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://capitolwatch.org, *.capitolwatch.org")

	exact, suffixes := corsOrigins(nil)
	if len(exact) != 2 {
		t.Fatalf("expected 2 exact origins, got %v", exact)
	}
	if exact[0] != "http://localhost:3000" || exact[1] != "https://capitolwatch.org" {
		t.Fatalf("unexpected exact origins %v", exact)
	}
	if len(suffixes) != 1 || suffixes[0] != ".capitolwatch.org" {
		t.Fatalf("unexpected suffixes %v", suffixes)
	}
}

func TestHealthcheck(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestCorsPreflight_AllowsConfiguredOrigin(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/legislators", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestAdminRoutes_RejectWithoutToken(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "test-secret")
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/jobs", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
