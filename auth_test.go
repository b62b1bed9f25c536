package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// TestAuthMiddleware_RejectsMissingToken covers the header checks that run
// before the token lookup.
func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	reached := false
	router.GET("/api/me", h.authMiddleware(), func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"basic scheme", "Basic abc"},
		{"bearer without token", "Bearer "},
		{"lowercase bearer", "bearer abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
			}
			if reached {
				t.Fatal("handler ran despite failed auth")
			}
		})
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	router.POST("/api/login", h.login)

	w := doJSON(router, "POST", "/api/login", `{"email":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := hashPassword("correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct-horse")) != nil {
		t.Error("hash does not verify the password")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")) == nil {
		t.Error("hash verifies the wrong password")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := normalizeEmail("  Asha@Example.COM "); got != "asha@example.com" {
		t.Errorf("got %q", got)
	}
}
