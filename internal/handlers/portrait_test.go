package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/capitolwatch/capitolwatch-backend/internal/services"
)

type stubPortraitService struct {
	lastID string
	path   string
	err    error
}

func (s *stubPortraitService) Resolve(ctx context.Context, bioguideID string) (string, error) {
	s.lastID = bioguideID
	return s.path, s.err
}

func newPortraitRouter(svc *stubPortraitService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := &PortraitHandler{log: mustLogger(), portraitService: svc}
	router.GET("/portraits/:filename", handler.Get)
	return router
}

func TestPortraitGet_StripsExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "B000944.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("seed portrait: %v", err)
	}
	svc := &stubPortraitService{path: path}
	router := newPortraitRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portraits/B000944.jpg", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastID != "B000944" {
		t.Fatalf("expected bare bioguide id, service saw %q", svc.lastID)
	}
	if w.Header().Get("Cache-Control") == "" {
		t.Fatalf("expected cache headers on portrait response")
	}
}

func TestPortraitGet_NotFound(t *testing.T) {
	svc := &stubPortraitService{err: services.ErrPortraitNotFound}
	router := newPortraitRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/portraits/nope.jpg", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
