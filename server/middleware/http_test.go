package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mp/auth"
	"github.com/kbukum/mp/auth/authctx"
	"github.com/kbukum/mp/logger"
	"github.com/kbukum/mp/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_NoPanic(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery(logger.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRecovery_Panic(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery(logger.NewNop()))
	r.GET("/test", func(_ *gin.Context) { panic("test panic") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("unexpected error code: %s", body.Error.Code)
	}
	if strings.Contains(rr.Body.String(), "test panic") {
		t.Error("panic value leaked into response")
	}
}

// ---------------------------------------------------------------------------
// RequestID
// ---------------------------------------------------------------------------

func TestRequestID_GeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		if c.GetString(middleware.ContextKeyRequestID) == "" {
			t.Error("expected request id on gin context")
		}
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("expected X-Request-Id in response headers")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "custom-id-123")
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get(middleware.HeaderRequestID); got != "custom-id-123" {
		t.Fatalf("expected custom-id-123, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_SetHeaders(t *testing.T) {
	cfg := &middleware.CORSConfig{
		AllowedOrigins: []string{"https://example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
	handler := middleware.CORS(cfg)(okHandler())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "https://example.com")
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("expected https://example.com, got %s", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Fatalf("expected 'GET, POST', got %s", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &middleware.CORSConfig{AllowedOrigins: []string{"*"}}
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler should not be called for OPTIONS preflight")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/items/", http.NoBody)
	req.Header.Set("Origin", "https://app.example.com")
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS preflight, got %d", rr.Code)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	cfg := &middleware.CORSConfig{AllowedOrigins: []string{"https://allowed.com"}}
	handler := middleware.CORS(cfg)(okHandler())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Origin", "https://evil.com")
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for disallowed origin, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// BodySizeLimit
// ---------------------------------------------------------------------------

func TestBodySizeLimit(t *testing.T) {
	handler := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name string
		size int
		want int
	}{
		{"under limit", 512, http.StatusOK},
		{"over limit", 2048, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			body := strings.NewReader(strings.Repeat("a", tc.size))
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/register", body))
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Chain
// ---------------------------------------------------------------------------

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-before")
				next.ServeHTTP(w, r)
				order = append(order, name+"-after")
			})
		}
	}

	handler := middleware.Chain(mark("m1"), mark("m2"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	expected := []string{"m1-before", "m2-before", "handler", "m2-after", "m1-after"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected %v, got %v", expected, order)
	}
}

// ---------------------------------------------------------------------------
// Request logging
// ---------------------------------------------------------------------------

func TestGinRequestLogger_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(middleware.GinRequestLogger(logger.NewNop()))
	r.POST("/items/", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{http.MethodPost, "/items/", http.StatusCreated},
		{http.MethodGet, "/health", http.StatusOK},
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, http.NoBody))
		if rr.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type fakeResolver struct {
	users map[string]string // token -> username
	err   error
}

func (f *fakeResolver) ResolveCurrentPrincipal(_ context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if name, ok := f.users[token]; ok {
		return name, nil
	}
	return "", &auth.UnauthorizedError{Detail: auth.DetailInvalidToken}
}

func authRouter(resolver middleware.PrincipalResolver) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Auth(resolver))
	r.GET("/me", func(c *gin.Context) {
		name, ok := authctx.Principal(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": name, "key": c.GetString(middleware.ContextKeyUsername)})
	})
	return r
}

func TestAuth(t *testing.T) {
	resolver := &fakeResolver{users: map[string]string{"good": "alice"}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantDetail string
	}{
		{"missing header", "", http.StatusUnauthorized, auth.DetailNotAuthenticated},
		{"basic scheme", "Basic YWxpY2U6cHc=", http.StatusUnauthorized, auth.DetailNotAuthenticated},
		{"bearer without token", "Bearer ", http.StatusUnauthorized, auth.DetailNotAuthenticated},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, auth.DetailInvalidToken},
		{"valid token", "Bearer good", http.StatusOK, ""},
		{"lowercase scheme", "bearer good", http.StatusOK, ""},
	}

	r := authRouter(resolver)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tc.wantStatus, rr.Code, rr.Body.String())
			}
			if tc.wantStatus == http.StatusOK {
				var body map[string]string
				_ = json.Unmarshal(rr.Body.Bytes(), &body)
				if body["username"] != "alice" || body["key"] != "alice" {
					t.Errorf("expected alice in context, got %v", body)
				}
				return
			}
			if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("expected WWW-Authenticate: Bearer, got %q", got)
			}
			if body := decodeError(t, rr); body.Error.Message != tc.wantDetail {
				t.Errorf("expected detail %q, got %q", tc.wantDetail, body.Error.Message)
			}
		})
	}
}

func TestAuth_ResolverFailureIsInternal(t *testing.T) {
	r := authRouter(&fakeResolver{err: errors.New("store offline")})

	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	req.Header.Set("Authorization", "Bearer anything")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "store offline") {
		t.Error("cause leaked into response")
	}
}
