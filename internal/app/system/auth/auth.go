// internal/app/system/auth/auth.go
//
// Package auth extracts the caller's credential token from a request
// and threads it through the request context. Identity verification
// happens in an external identity provider; this package only carries
// the opaque token identifier the provider issued.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// SessionName is the cookie used for browser sessions.
const SessionName = "filehaven_session"

const sessionTokenKey = "token_identifier"

var store *sessions.CookieStore

// Init configures the session cookie store. hashKey must be non-empty;
// an empty blockKey disables cookie encryption (fine behind TLS in
// development, not in production).
func Init(hashKey, blockKey string, secure bool) {
	if blockKey != "" {
		store = sessions.NewCookieStore([]byte(hashKey), []byte(blockKey))
	} else {
		store = sessions.NewCookieStore([]byte(hashKey))
	}
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewSessionKeys generates a random hash/block key pair, for
// deployments that have not pinned keys in config.
func NewSessionKeys() (hashKey, blockKey string) {
	return string(securecookie.GenerateRandomKey(32)), string(securecookie.GenerateRandomKey(32))
}

type ctxKey struct{}

// WithToken returns a context carrying the credential token. Handlers
// and tests use it to simulate an authenticated caller.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFrom returns the credential token from ctx, if any.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKey{}).(string)
	return token, ok && token != ""
}

// Middleware attaches the caller's token to the request context. It
// checks the Authorization header first, then the session cookie. A
// request with neither proceeds untokened; authorization decisions are
// made downstream so denial responses stay uniform.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" {
			r = r.WithContext(WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if store == nil {
		return ""
	}
	sess, err := store.Get(r, SessionName)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[sessionTokenKey].(string)
	return token
}

// SetSessionToken stores the token in the browser session, used after
// the identity provider redirects back.
func SetSessionToken(w http.ResponseWriter, r *http.Request, token string) error {
	if store == nil {
		return nil
	}
	sess, err := store.Get(r, SessionName)
	if err != nil {
		sess, _ = store.New(r, SessionName)
	}
	sess.Values[sessionTokenKey] = token
	return sess.Save(r, w)
}

// ClearSession drops the browser session.
func ClearSession(w http.ResponseWriter, r *http.Request) error {
	if store == nil {
		return nil
	}
	sess, err := store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
