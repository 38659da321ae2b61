package handlers

import (
	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Sessions *services.SessionManager
	Tokens   services.TokenStore

	AuthHandler    *AuthHandler
	PanelHandler   *PanelHandler
	ProductHandler *ProductHandler
}

func NewDeps(api catalogapi.API, tokens services.TokenStore) *Deps {
	sessions := services.NewSessionManager(api)
	guard := services.NewSubmitGuard()
	panel := &PanelHandler{API: api, Guard: guard}

	return &Deps{
		Sessions:       sessions,
		Tokens:         tokens,
		AuthHandler:    &AuthHandler{Sessions: sessions, Tokens: tokens, API: api, Guard: guard},
		PanelHandler:   panel,
		ProductHandler: &ProductHandler{Panel: panel},
	}
}

// Routes mounts the panel. loginGuards run before the login handler (rate
// limiting in production).
func (d *Deps) Routes(r fiber.Router, loginGuards ...fiber.Handler) {
	restore := RestoreSession(d.Sessions, d.Tokens)

	r.Get("/", restore, d.PanelHandler.Index)
	r.Post("/login", append(loginGuards, d.AuthHandler.Login)...)

	products := r.Group("/products", restore, RequireSession())
	products.Post("/", d.ProductHandler.Create)
	products.Post("/draft", d.ProductHandler.Draft)
	products.Post("/:id/delete", d.ProductHandler.Delete)
	products.Post("/:id", d.ProductHandler.Update)
}
