package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"alumnihub-be/internal/analytics"
	"alumnihub-be/internal/handlers"

	"github.com/gin-gonic/gin"
)

type stubSource struct {
	fn func(spec analytics.QuerySpec) ([]analytics.Row, error)
}

func (s *stubSource) Query(ctx context.Context, spec analytics.QuerySpec) ([]analytics.Row, error) {
	if s.fn != nil {
		return s.fn(spec)
	}
	return nil, nil
}

func newRouter(source analytics.RecordSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := analytics.NewOrchestrator(source, analytics.SystemClock(), analytics.Options{})
	h := handlers.NewAnalyticsHandler(engine)

	r := gin.New()
	r.GET("/user-growth", h.GetUserGrowth)
	return r
}

func TestGetUserGrowth_OK(t *testing.T) {
	r := newRouter(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/user-growth?months=6", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data []struct {
			Month      string `json:"month"`
			TotalUsers int64  `json:"totalUsers"`
			NewUsers   int64  `json:"newUsers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 6 {
		t.Fatalf("expected a fully populated 6-month series, got %d points", len(body.Data))
	}
}

func TestGetUserGrowth_BadWindowParam(t *testing.T) {
	r := newRouter(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/user-growth?months=soon", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetUserGrowth_SourceDown(t *testing.T) {
	r := newRouter(&stubSource{
		fn: func(spec analytics.QuerySpec) ([]analytics.Row, error) {
			return nil, errors.New("no reachable servers")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/user-growth", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}
