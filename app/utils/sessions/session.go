package sessions

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "catalog-admin-session"

	adminIDSessionKey = "adminID"
)

type SessionStore interface {
	GetAdminID(r *http.Request) string
	SetAdminID(w http.ResponseWriter, r *http.Request, adminID string) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/admin",
		MaxAge:   int(12 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A cookie signed with old keys yields a fresh session.
		logger.Warn(r.Context()).Err(err).Msg("Error decoding admin session")
	}
	return session
}

func (c *CookieSessionStore) GetAdminID(r *http.Request) string {
	adminID, ok := c.getSession(r).Values[adminIDSessionKey].(string)
	if !ok {
		return ""
	}
	return adminID
}

func (c *CookieSessionStore) SetAdminID(w http.ResponseWriter, r *http.Request, adminID string) error {
	session := c.getSession(r)
	session.Values[adminIDSessionKey] = adminID
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
