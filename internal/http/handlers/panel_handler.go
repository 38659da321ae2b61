package handlers

import (
	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain"
	applog "catalogadmin/internal/log"
	"catalogadmin/internal/services"
	"catalogadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PanelHandler struct {
	API   catalogapi.API
	Guard *services.SubmitGuard
}

func (h *PanelHandler) store(c *fiber.Ctx) (*services.ProductStore, bool) {
	s, ok := sessionFrom(c)
	if !ok {
		return nil, false
	}
	return services.NewProductStore(h.API, s, h.Guard), true
}

// GET /
// Login view without a live session; otherwise the product list, with the
// dialog named by ?dialog=create|edit|delete (&id=) opened on top.
func (h *PanelHandler) Index(c *fiber.Ctx) error {
	store, ok := h.store(c)
	if !ok {
		return renderLogin(c, "", "")
	}

	view := panelView{}
	if err := store.Refresh(); err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		view.Alert = AlertFetchFailed
		c.Status(fiber.StatusBadGateway)
		return renderPanel(c, view)
	}
	view.Products = store.Products

	switch c.Query("dialog") {
	case string(services.DialogCreate):
		view.Dialog.OpenCreate()
	case string(services.DialogEdit):
		p, found := h.lookup(c, store)
		if !found {
			view.Alert = AlertNotFound
			break
		}
		view.Dialog.OpenEdit(p)
	case "delete":
		p, found := h.lookup(c, store)
		if !found {
			view.Alert = AlertNotFound
			break
		}
		view.Delete.Show(p)
	}
	return renderPanel(c, view)
}

func (h *PanelHandler) lookup(c *fiber.Ctx, store *services.ProductStore) (domain.Product, bool) {
	id, valid := validate.ID(c.Query("id"))
	if !valid {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return domain.Product{}, false
	}
	return store.Find(id)
}
