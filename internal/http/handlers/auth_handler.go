package handlers

import (
	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain"
	"catalogadmin/internal/log"
	"catalogadmin/internal/services"
	"catalogadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Sessions *services.SessionManager
	Tokens   services.TokenStore
	API      catalogapi.API
	Guard    *services.SubmitGuard
}

// Login signs in against the catalog API, persists the token and shows the
// freshly fetched product list.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username, ok := validate.Email(c.FormValue("username"))
	pass := c.FormValue("password")
	if !ok || !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"username": c.FormValue("username"), "reason": "bad_format"})
		c.Status(fiber.StatusUnauthorized)
		return renderLogin(c, c.FormValue("username"), AlertLoginFailed)
	}

	s, err := h.Sessions.Login(domain.Credentials{Username: username, Password: pass})
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": err.Error()})
		c.Status(fiber.StatusUnauthorized)
		return renderLogin(c, username, AlertLoginFailed)
	}
	if err := h.Tokens.Save(c, s); err != nil {
		log.Error(c, "auth.session.save.fail", err, nil)
		c.Status(fiber.StatusInternalServerError)
		return renderLogin(c, username, AlertLoginFailed)
	}
	log.Audit(c, "auth.login.success", map[string]any{"username": username, "expires": s.ExpiresAt})

	store := services.NewProductStore(h.API, s, h.Guard)
	view := panelView{}
	if err := store.Refresh(); err != nil {
		log.Error(c, "products.list.fail", err, nil)
		view.Alert = AlertFetchFailed
	}
	view.Products = store.Products
	return renderPanel(c, view)
}
