// Package auth holds the cookie-session layer shared by the mentee and
// admin endpoints. Sessions carry only the identity snapshot taken at
// login; handlers re-load fresh records when they need current state.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/system/httpjson"
)

const (
	isAuthKey  = "is_authenticated"
	userIDKey  = "user_id"
	userName   = "user_name"
	userRole   = "user_role"
)

// Roles stored in the session.
const (
	RoleMentee = "mentee"
	RoleAdmin  = "admin"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

var sessionName = "mentorhub-session"

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID   string // business id
	Name string
	Role string // mentee | admin
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the signed-in user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// InitSessionStore initializes the global session Store. An empty session
// key gets a random one (sessions then die with the process, which is fine
// for dev). The secure flag controls the Secure cookie attribute.
func InitSessionStore(sessionKey, name, domain string, secure bool, logger *zap.Logger) error {
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return fmt.Errorf("generate session key")
		}
		logger.Warn("no session key configured; using a random per-process key")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}
	if name != "" {
		sessionName = name
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))
	return nil
}

// SignIn writes an authenticated session for u.
func SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[userRole] = u.Role
	return sess.Save(r, w)
}

// SignOut clears the session.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are logged in.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := Store.Get(r, sessionName)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:   getString(sess, userIDKey),
				Name: getString(sess, userName),
				Role: getString(sess, userRole),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser); otherwise it answers 401 JSON.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the signed-in user has one of the allowed roles.
// Missing session → 401, wrong role → 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, has := set[u.Role]; !has {
				httpjson.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
