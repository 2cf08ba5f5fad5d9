package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	// AdminCookieName is the cookie carrying the admin session token
	AdminCookieName = "admin_session"
	sessionTTL      = 12 * time.Hour
	tokenIssuer     = "nube-alta-cafe"
)

var (
	// ErrInvalidCredentials is returned on a wrong email or password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAdminDisabled is returned when no admin credentials are configured
	ErrAdminDisabled = errors.New("admin access is not configured")
	// ErrInvalidSession is returned for a missing, expired or tampered token
	ErrInvalidSession = errors.New("invalid session")
)

type adminContextKey struct{}

// AuthService authenticates the single back-office administrator
type AuthService struct {
	email        string
	passwordHash []byte
	secret       []byte
	now          func() time.Time
}

// NewAuthService creates an AuthService from ADMIN_EMAIL, ADMIN_PASSWORD_HASH (bcrypt) and SESSION_SECRET values
func NewAuthService(email string, passwordHash string, secret string) *AuthService {
	return &AuthService{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		now:          time.Now,
	}
}

// Enabled reports whether admin login is possible
func (s *AuthService) Enabled() bool {
	return s.email != "" && len(s.passwordHash) > 0 && len(s.secret) > 0
}

// Login checks the credentials and returns a signed session token
func (s *AuthService) Login(email string, password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrAdminDisabled
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(s.email)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !emailOK || passwordErr != nil {
		log.Printf("⚠️ Failed admin login for %q", email)
		return "", time.Time{}, ErrInvalidCredentials
	}

	expires := s.now().Add(sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   s.email,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}

	log.Printf("✅ Admin %s logged in", s.email)
	return signed, expires, nil
}

// Verify validates a session token and returns the admin email
func (s *AuthService) Verify(tokenString string) (string, error) {
	if !s.Enabled() || tokenString == "" {
		return "", ErrInvalidSession
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !claims.VerifyExpiresAt(s.now(), true) || claims.Issuer != tokenIssuer || claims.Subject != s.email {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// RequireAdmin rejects requests without a valid admin session cookie
func (s *AuthService) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AdminCookieName)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		email, err := s.Verify(cookie.Value)
		if err != nil {
			log.Printf("⚠️ Rejected admin request %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), adminContextKey{}, email)))
	}
}

// AdminFromContext returns the admin email set by RequireAdmin
func AdminFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminContextKey{}).(string)
	return email, ok
}
