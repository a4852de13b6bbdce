package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lyricverse-api/internal/auth"
	"github.com/lyricverse-api/internal/models"
)

func TestAllowlist_IsAdmin(t *testing.T) {
	allow := auth.NewAllowlist([]string{"admin@x.com", " Second@X.Com "})

	tests := []struct {
		email string
		want  bool
	}{
		{"admin@x.com", true},
		{"ADMIN@X.COM", true},
		{"second@x.com", true},
		{"visitor@x.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := allow.IsAdmin(tt.email); got != tt.want {
			t.Errorf("IsAdmin(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestSessions_IssueVerifyRoundtrip(t *testing.T) {
	sessions := auth.NewSessions(strings.Repeat("s", 32), time.Hour)

	identity := models.Identity{
		Email:    "admin@x.com",
		Name:     "Admin",
		ImageURL: "https://img.example/a.png",
	}

	token, err := sessions.Issue(identity)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := sessions.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != identity {
		t.Errorf("Verify returned %+v, want %+v", got, identity)
	}
}

func TestSessions_RejectsExpiredToken(t *testing.T) {
	sessions := auth.NewSessions(strings.Repeat("s", 32), -time.Minute)

	token, err := sessions.Issue(models.Identity{Email: "admin@x.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := sessions.Verify(token); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestSessions_RejectsForeignSignature(t *testing.T) {
	issuing := auth.NewSessions(strings.Repeat("a", 32), time.Hour)
	verifying := auth.NewSessions(strings.Repeat("b", 32), time.Hour)

	token, err := issuing.Issue(models.Identity{Email: "admin@x.com"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifying.Verify(token); err == nil {
		t.Error("Expected token signed with a different secret to be rejected")
	}
}

func setupMiddlewareRouter(t *testing.T) (*gin.Engine, *auth.Sessions) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := auth.NewSessions(strings.Repeat("s", 32), time.Hour)
	allow := auth.NewAllowlist([]string{"admin@x.com"})

	router := gin.New()
	router.GET("/admin/ping", auth.RequireAdmin(sessions, allow), func(c *gin.Context) {
		identity, _ := auth.IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return router, sessions
}

func TestRequireAdmin_NoCookie(t *testing.T) {
	router, _ := setupMiddlewareRouter(t)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestRequireAdmin_NonAdminForbidden(t *testing.T) {
	router, sessions := setupMiddlewareRouter(t)

	token, _ := sessions.Issue(models.Identity{Email: "visitor@x.com"})
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", w.Code)
	}
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	router, sessions := setupMiddlewareRouter(t)

	token, _ := sessions.Issue(models.Identity{Email: "admin@x.com"})
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "admin@x.com") {
		t.Errorf("Expected identity email in response, got %s", w.Body.String())
	}
}
