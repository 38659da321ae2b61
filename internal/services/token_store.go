package services

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"catalogadmin/internal/domain"
	"catalogadmin/internal/repos"
)

const (
	TokenCookie = "hexToken"
	SIDCookie   = "sid"
)

// TokenStore persists the API session between browser requests.
type TokenStore interface {
	Load(c *fiber.Ctx) (domain.Session, bool)
	Save(c *fiber.Ctx, s domain.Session) error
	Clear(c *fiber.Ctx) error
}

// CookieTokenStore keeps the raw token in the hexToken cookie, expiring with
// the session.
type CookieTokenStore struct {
	Secure bool
}

func (st *CookieTokenStore) Load(c *fiber.Ctx) (domain.Session, bool) {
	tok := c.Cookies(TokenCookie)
	if tok == "" {
		return domain.Session{}, false
	}
	return domain.Session{Token: tok}, true
}

func (st *CookieTokenStore) Save(c *fiber.Ctx, s domain.Session) error {
	c.Cookie(sessionCookie(TokenCookie, s.Token, s.ExpiresAt, st.Secure))
	return nil
}

func (st *CookieTokenStore) Clear(c *fiber.Ctx) error {
	c.Cookie(sessionCookie(TokenCookie, "", time.Now().Add(-time.Hour), st.Secure))
	return nil
}

// SQLTokenStore keeps only an opaque sid in the browser; the token lives in
// the sessions table.
type SQLTokenStore struct {
	Repo   *repos.SessionRepo
	Secure bool
}

func (st *SQLTokenStore) Load(c *fiber.Ctx) (domain.Session, bool) {
	sid := c.Cookies(SIDCookie)
	if sid == "" {
		return domain.Session{}, false
	}
	s, err := st.Repo.Get(sid)
	if err != nil {
		return domain.Session{}, false
	}
	return s, true
}

// Save always issues a fresh sid; a sid sent by the browser is dropped.
func (st *SQLTokenStore) Save(c *fiber.Ctx, s domain.Session) error {
	sid := uuid.NewString()
	if err := st.Repo.Bind(sid, s); err != nil {
		return err
	}
	if old := c.Cookies(SIDCookie); old != "" {
		if err := st.Repo.Delete(old); err != nil {
			return err
		}
	}
	c.Cookie(sessionCookie(SIDCookie, sid, s.ExpiresAt, st.Secure))
	return nil
}

func (st *SQLTokenStore) Clear(c *fiber.Ctx) error {
	sid := c.Cookies(SIDCookie)
	if sid == "" {
		return nil
	}
	c.Cookie(sessionCookie(SIDCookie, "", time.Now().Add(-time.Hour), st.Secure))
	return st.Repo.Delete(sid)
}

func sessionCookie(name, value string, expires time.Time, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
	}
}
