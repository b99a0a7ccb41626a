package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protectedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuth_Disabled_PassesThrough(t *testing.T) {
	h := BearerAuthMiddleware(nil)(protectedHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected pass-through without keys, got %d", w.Code)
	}
}

func TestBearerAuth_MissingHeader_401(t *testing.T) {
	h := BearerAuthMiddleware([]string{"key-1"})(protectedHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestBearerAuth_WrongScheme_401(t *testing.T) {
	h := BearerAuthMiddleware([]string{"key-1"})(protectedHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	req.Header.Set("Authorization", "Basic a2V5LTE=")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestBearerAuth_InvalidKey_401(t *testing.T) {
	h := BearerAuthMiddleware([]string{"key-1"})(protectedHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestBearerAuth_ValidKey_OK(t *testing.T) {
	h := BearerAuthMiddleware([]string{"key-1", "key-2"})(protectedHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	req.Header.Set("Authorization", "Bearer key-2")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for valid key, got %d", w.Code)
	}
}

func TestBearerAuth_ExemptPaths(t *testing.T) {
	h := BearerAuthMiddleware([]string{"key-1"})(protectedHandler())

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s must bypass auth, got %d", path, w.Code)
		}
	}
}

func TestBearerAuth_EmptyKeyIgnored(t *testing.T) {
	// A blank entry in the key list must not open the door.
	h := BearerAuthMiddleware([]string{""})(protectedHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("all-empty key list disables auth, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/search", nil)
	req.Header.Set("Authorization", "Bearer ")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("disabled auth must pass any request, got %d", w.Code)
	}
}
