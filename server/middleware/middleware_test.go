package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doGET(r *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	r := newTestRouter(RequestID())
	w := doGET(r, "/ping", nil)

	if id := w.Header().Get("X-Request-Id"); id == "" {
		t.Fatal("expected generated request id header")
	}
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	r := newTestRouter(RequestID())
	w := doGET(r, "/ping", map[string]string{"X-Request-Id": "req-abc"})

	if id := w.Header().Get("X-Request-Id"); id != "req-abc" {
		t.Fatalf("expected req-abc, got %q", id)
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST"},
	}
	r := newTestRouter(CORS(cfg))

	w := doGET(r, "/ping", map[string]string{"Origin": "https://app.example.com"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected origin echoed, got %q", got)
	}

	w = doGET(r, "/ping", map[string]string{"Origin": "https://evil.example.com"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("disallowed origin must get no CORS header, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"POST"}}
	r := newTestRouter(CORS(cfg))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
}

func TestRecovery_ContainsPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) {
		panic("wild fault")
	})

	w := doGET(r, "/boom", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("expected structured error body, got %s", w.Body.String())
	}
}

func TestAuth_MissingAndMalformedHeader(t *testing.T) {
	r := newTestRouter(Auth(AuthConfig{
		TokenValidator: func(string) (map[string]interface{}, error) {
			return nil, errors.New("unexpected call")
		},
	}))

	if w := doGET(r, "/ping", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", w.Code)
	}
	w := doGET(r, "/ping", map[string]string{"Authorization": "Token abc"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-Bearer scheme, got %d", w.Code)
	}
}

func TestAuth_ValidTokenSetsClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(AuthConfig{
		TokenValidator: func(token string) (map[string]interface{}, error) {
			if token != "good" {
				return nil, errors.New("bad token")
			}
			return map[string]interface{}{"subject": "user-1"}, nil
		},
	}))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("subject"))
	})

	w := doGET(r, "/ping", map[string]string{"Authorization": "Bearer good"})
	if w.Code != http.StatusOK || w.Body.String() != "user-1" {
		t.Fatalf("expected claims in context, got %d %q", w.Code, w.Body.String())
	}

	if w := doGET(r, "/ping", map[string]string{"Authorization": "Bearer bad"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected token, got %d", w.Code)
	}
}

func TestAuth_SkipPaths(t *testing.T) {
	r := newTestRouter(Auth(AuthConfig{
		TokenValidator: func(string) (map[string]interface{}, error) {
			return nil, errors.New("no tokens today")
		},
		SkipPaths: []string{"/ping"},
	}))

	if w := doGET(r, "/ping", nil); w.Code != http.StatusOK {
		t.Fatalf("expected skip path to bypass auth, got %d", w.Code)
	}
}

func TestRateLimit_Enforced(t *testing.T) {
	r := newTestRouter(RateLimit(RateLimitConfig{RequestsPerMinute: 2}))

	for i := 0; i < 2; i++ {
		if w := doGET(r, "/ping", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, w.Code)
		}
	}
	if w := doGET(r, "/ping", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", w.Code)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 << 20},
		{"512KB", 512 << 10},
		{"1GB", 1 << 30},
		{"128B", 128},
		{"2048", 2048},
		{"", defaultMaxBodySize},
		{"garbage", defaultMaxBodySize},
		{"-5MB", defaultMaxBodySize},
	}

	for _, tt := range tests {
		if got := parseSize(tt.in, defaultMaxBodySize); got != tt.want {
			t.Errorf("parseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
