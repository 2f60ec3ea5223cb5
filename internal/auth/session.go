package auth

import (
	"encoding/gob"
	"net/http"
	"time"

	"spendwise/internal/models"

	"github.com/gorilla/sessions"
)

const (
	// SessionName is the name of the session cookie.
	SessionName = "session"
	// SessionDuration is how long sessions last (30 days).
	SessionDuration = 30 * 24 * time.Hour

	keyUserID    = "user_id"
	keyName      = "name"
	keyEmail     = "email"
	keyRenewedAt = "renewed_at"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Flash{})
}

// Identity is what the session remembers about the signed-in user.
type Identity struct {
	UserID int64
	Name   string
	Email  string
}

// Sessions stores identity and flashes in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
}

// NewSessions creates a cookie store signed with key.
func NewSessions(key []byte, secure bool) *Sessions {
	store := sessions.NewCookieStore(key)
	store.MaxAge(int(SessionDuration.Seconds()))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return &Sessions{store: store}
}

// session returns the request's session. A cookie that fails verification
// yields a fresh, empty session.
func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, _ := s.store.Get(r, SessionName)
	return sess
}

// Login binds the session to user.
func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, user *models.User) error {
	sess := s.session(r)
	sess.Values[keyUserID] = user.ID
	sess.Values[keyName] = user.Name
	sess.Values[keyEmail] = user.Email
	sess.Values[keyRenewedAt] = time.Now().Unix()
	return sess.Save(r, w)
}

// Logout forgets the user. Flashes survive so the next page can show them.
func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, keyUserID)
	delete(sess.Values, keyName)
	delete(sess.Values, keyEmail)
	delete(sess.Values, keyRenewedAt)
	return sess.Save(r, w)
}

// Identity returns the signed-in identity, if any.
func (s *Sessions) Identity(r *http.Request) (Identity, bool) {
	sess := s.session(r)
	id, ok := sess.Values[keyUserID].(int64)
	if !ok || id == 0 {
		return Identity{}, false
	}
	name, _ := sess.Values[keyName].(string)
	email, _ := sess.Values[keyEmail].(string)
	return Identity{UserID: id, Name: name, Email: email}, true
}

// Renew re-issues the cookie once it is past half of its lifetime so that
// active users stay signed in while idle sessions still expire.
func (s *Sessions) Renew(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	renewedAt, _ := sess.Values[keyRenewedAt].(int64)
	if time.Since(time.Unix(renewedAt, 0)) < SessionDuration/2 {
		return nil
	}
	sess.Values[keyRenewedAt] = time.Now().Unix()
	return sess.Save(r, w)
}

// AddFlash queues a notice for the next page.
func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) error {
	sess := s.session(r)
	sess.AddFlash(Flash{Kind: kind, Message: message})
	return sess.Save(r, w)
}

// Flashes pops queued notices.
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := s.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if fl, ok := f.(Flash); ok {
			flashes = append(flashes, fl)
		}
	}
	return flashes
}
