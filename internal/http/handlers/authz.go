package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catalogadmin/internal/domain"
	applog "catalogadmin/internal/log"
	"catalogadmin/internal/services"
)

const sessionLocal = "session"

// RestoreSession reads the persisted token and keeps it for the request only
// if the API still accepts it. A rejected token is cleared and the request
// continues unauthenticated.
func RestoreSession(m *services.SessionManager, tokens services.TokenStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := tokens.Load(c)
		if !ok {
			return c.Next()
		}
		if err := m.Restore(s); err != nil {
			applog.Security(c, "auth.restore.fail", map[string]any{"reason": err.Error()})
			if cerr := tokens.Clear(c); cerr != nil {
				applog.Error(c, "auth.restore.clear.fail", cerr, nil)
			}
			return c.Next()
		}
		c.Locals(sessionLocal, s)
		return c.Next()
	}
}

// RequireSession sends unauthenticated requests back to the login view.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := sessionFrom(c); !ok {
			applog.Security(c, "access.denied", nil)
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

func sessionFrom(c *fiber.Ctx) (domain.Session, bool) {
	s, ok := c.Locals(sessionLocal).(domain.Session)
	return s, ok && s.Valid()
}
