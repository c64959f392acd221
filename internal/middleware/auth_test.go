package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/zharkyn/carmarket/internal/domain"
)

// stubJWTService implements jwt.Service for testing.
type stubJWTService struct {
	token *jwt.Token
	err   error
}

func (s *stubJWTService) GenerateToken(string, []string, time.Duration) (string, error) {
	return "", nil
}
func (s *stubJWTService) ValidateToken(string) (*jwt.Token, error) { return s.token, s.err }
func (s *stubJWTService) ValidateAndParse(string) (*jwt.Token, error) {
	return s.token, s.err
}
func (s *stubJWTService) RefreshToken(string) (string, error)                      { return "", nil }
func (s *stubJWTService) RefreshTokenExtend(string, time.Duration) (string, error) { return "", nil }
func (s *stubJWTService) RevokeToken(string) error                                 { return nil }
func (s *stubJWTService) IsTokenRevoked(string) bool                               { return false }
func (s *stubJWTService) ParseToken(string) (*jwt.Token, error)                    { return s.token, s.err }
func (s *stubJWTService) RevokeAllUserTokens(string) error                         { return nil }
func (s *stubJWTService) Close()                                                   {}

func setupAuthRouter(svc jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(svc))
	r.GET("/whoami", func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doAuthRequest(t *testing.T, r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_NoHeaderPassesThroughAnonymous(t *testing.T) {
	r := setupAuthRouter(&stubJWTService{})

	w := doAuthRequest(t, r, "/whoami", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doAuthRequest(t, r, "/private", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on guarded route, got %d", w.Code)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	svc := &stubJWTService{token: &jwt.Token{UserID: "42", Roles: []string{domain.RoleAdmin}}}
	r := setupAuthRouter(svc)

	w := doAuthRequest(t, r, "/private", "Bearer good-token")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 on guarded route, got %d: %s", w.Code, w.Body.String())
	}

	w = doAuthRequest(t, r, "/admin", "Bearer good-token")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 on admin route, got %d", w.Code)
	}
}

func TestAuth_DefaultRoleIsUser(t *testing.T) {
	svc := &stubJWTService{token: &jwt.Token{UserID: "7"}}
	r := setupAuthRouter(svc)

	w := doAuthRequest(t, r, "/admin", "Bearer good-token")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin on admin route, got %d", w.Code)
	}

	w = doAuthRequest(t, r, "/private", "Bearer good-token")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 on guarded route, got %d", w.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := setupAuthRouter(&stubJWTService{token: &jwt.Token{UserID: "1"}})

	for _, header := range []string{"Token abc", "bearer abc", "Basic abc"} {
		w := doAuthRequest(t, r, "/whoami", header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := setupAuthRouter(&stubJWTService{err: errors.New("expired")})

	w := doAuthRequest(t, r, "/whoami", "Bearer stale-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestAuth_NonNumericSubject(t *testing.T) {
	r := setupAuthRouter(&stubJWTService{token: &jwt.Token{UserID: "not-a-number"}})

	w := doAuthRequest(t, r, "/whoami", "Bearer odd-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-numeric subject, got %d", w.Code)
	}
}

func TestRequireAdmin_Unauthenticated(t *testing.T) {
	r := setupAuthRouter(&stubJWTService{})

	w := doAuthRequest(t, r, "/admin", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous admin access, got %d", w.Code)
	}
}
