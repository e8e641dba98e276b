package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Token & cookie constants                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	// AccessCookie carries the short-lived signed access token.
	AccessCookie = "accessToken"
	// RefreshCookie carries the long-lived refresh token. Its value is also
	// persisted on the user document; refresh requests must present the same
	// token or they are rejected as expired/used.
	RefreshCookie = "refreshToken"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the per-request view of the caller, loaded fresh from the
// database on every request so role changes take effect immediately.
type SessionUser struct {
	ID           string
	Name         string
	Email        string
	ProjectRoles map[string]string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context. Test helper only;
// production requests go through LoadTokenUser.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Token manager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// UserFetcher loads fresh user data for a verified token subject. It returns
// nil when the user no longer exists or any lookup error occurs, which makes
// the request anonymous.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

// Manager signs, verifies, and transports the access/refresh token pair.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
	fetcher    UserFetcher
	log        *zap.Logger
}

// NewManager validates the signing secret and builds a Manager. The secure
// flag controls the cookies' Secure attribute; enable it in production.
func NewManager(secret string, accessTTL, refreshTTL time.Duration, secure bool, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty; provide ≥32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("token secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		secure:     secure,
		log:        logger,
	}, nil
}

// SetUserFetcher wires the store that resolves token subjects to users.
func (m *Manager) SetUserFetcher(f UserFetcher) { m.fetcher = f }

// IssueAccessToken signs a short-lived access token for the user.
func (m *Manager) IssueAccessToken(userID, email string) (string, error) {
	return m.sign(userID, email, tokenTypeAccess, m.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the user. The caller
// persists the returned value on the user document.
func (m *Manager) IssueRefreshToken(userID string) (string, error) {
	return m.sign(userID, "", tokenTypeRefresh, m.refreshTTL)
}

func (m *Manager) sign(userID, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        userID,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	if email != "" {
		claims["email"] = email
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyAccessToken returns the subject user ID of a valid access token.
func (m *Manager) VerifyAccessToken(tokenString string) (string, error) {
	return m.verify(tokenString, tokenTypeAccess)
}

// VerifyRefreshToken returns the subject user ID of a valid refresh token.
// Callers must additionally compare the presented token against the one stored
// on the user document.
func (m *Manager) VerifyRefreshToken(tokenString string) (string, error) {
	return m.verify(tokenString, tokenTypeRefresh)
}

func (m *Manager) verify(tokenString, wantType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	if tt, _ := claims["token_type"].(string); tt != wantType {
		return "", fmt.Errorf("unexpected token type")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Cookie transport                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// SetAuthCookies writes both token cookies. Cookies are host-only (no Domain),
// HttpOnly, and Secure when the manager was built for production.
func (m *Manager) SetAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, m.cookie(AccessCookie, access, m.accessTTL))
	http.SetCookie(w, m.cookie(RefreshCookie, refresh, m.refreshTTL))
}

// ClearAuthCookies expires both token cookies.
func (m *Manager) ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		c := m.cookie(name, "", 0)
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (m *Manager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadTokenUser injects the user into context when a valid access cookie is
// presented. Invalid or absent tokens leave the request anonymous; guarded
// routes reject it downstream.
func (m *Manager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(AccessCookie)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.VerifyAccessToken(c.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if m.fetcher != nil {
			if u := m.fetcher.FetchUser(r.Context(), userID); u != nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}
