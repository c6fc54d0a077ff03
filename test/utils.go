package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// PerformRequest drives a request through the given engine and returns the
// recorder. Headers are "Name: value" strings; a cookie is attached when
// useCookie is set.
func PerformRequest(r *gin.Engine, t *testing.T, method, url string, body io.Reader, headers []string, useCookie bool, cookieName, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			t.Fatalf("malformed header %q", h)
		}
		req.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if useCookie {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
