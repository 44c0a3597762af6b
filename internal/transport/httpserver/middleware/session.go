package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"budget-app-go/internal/config"
	userdomain "budget-app-go/internal/domain/user"
	"budget-app-go/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "budget-app"

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

type User struct {
	ID       string
	Username string
	Email    string
}

type UserLoader interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Sessions keeps the signed-in user in an HS256 JWT cookie.
type Sessions struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	users      UserLoader
	log        logger.Logger
	now        func() time.Time
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewSessions(cfg config.SessionConfig, users UserLoader, log logger.Logger) *Sessions {
	return &Sessions{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.CookieSecure,
		users:      users,
		log:        log,
		now:        time.Now,
	}
}

func (s *Sessions) Issue(w http.ResponseWriter, user User) error {
	now := s.now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Parse validates a session token and returns the user id it was issued for.
func (s *Sessions) Parse(token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("session without subject")
	}
	return claims.Subject, nil
}

// Load attaches the signed-in user to the request context. Requests with a
// missing or stale cookie continue anonymously.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context(), s.log)
		cookie, err := r.Cookie(s.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := s.Parse(cookie.Value)
		if err != nil {
			log.Debug("session.load: rejected cookie", "err", err)
			s.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.users.GetByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, userdomain.ErrUserNotFound) {
				log.InternalError("session.load: get user failed", err, "user_id", userID)
			}
			s.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithUser(r.Context(), User{ID: user.ID, Username: user.Username, Email: user.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser redirects anonymous requests to the login page.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
