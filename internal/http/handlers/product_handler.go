package handlers

import (
	"errors"

	"catalogadmin/internal/domain"
	applog "catalogadmin/internal/log"
	"catalogadmin/internal/services"
	"catalogadmin/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the product and delete dialogs. Every route sits
// behind RequireSession.
type ProductHandler struct {
	Panel *PanelHandler
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	return h.submit(c, services.DialogCreate, "")
}

// POST /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	return h.submit(c, services.DialogEdit, id)
}

func (h *ProductHandler) submit(c *fiber.Ctx, mode services.DialogMode, id string) error {
	store, ok := h.Panel.store(c)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	action, base := "products.create", AlertCreateFailed
	if mode == services.DialogEdit {
		action, base = "products.update", AlertUpdateFailed
	}

	wp, err := workingFromForm(c)
	if err != nil {
		return h.failDialog(c, store, mode, domain.BlankProduct(), action, base, err)
	}
	if mode == services.DialogEdit {
		wp.ID = id
	}

	var dialog services.ProductDialog
	dialog.Resume(mode, wp)
	err = dialog.Submit(store)
	if err != nil && !errors.Is(err, services.ErrListStale) {
		return h.failDialog(c, store, mode, wp, action, base, err)
	}
	applog.Audit(c, action, map[string]any{"product": id, "title": wp.Title})
	if err != nil {
		return staleList(c, store, err)
	}
	return renderPanel(c, panelView{Products: store.Products})
}

// staleList renders the panel after an accepted mutation whose list fetch
// failed. The dialog is closed; the list is not fetched again.
func staleList(c *fiber.Ctx, store *services.ProductStore, err error) error {
	applog.Error(c, "products.list.fail", err, nil)
	c.Status(fiber.StatusBadGateway)
	return renderPanel(c, panelView{Products: store.Products, Alert: AlertFetchFailed})
}

// failDialog re-renders the dialog still open with the admin's edits.
func (h *ProductHandler) failDialog(c *fiber.Ctx, store *services.ProductStore, mode services.DialogMode,
	wp *domain.WorkingProduct, action, base string, err error) error {
	applog.Error(c, action+".fail", err, map[string]any{"product": wp.ID})
	alert, status := alertFor(base, err)
	if rerr := store.Refresh(); rerr != nil {
		applog.Error(c, "products.list.fail", rerr, nil)
	}
	view := panelView{Products: store.Products, Alert: alert}
	view.Dialog.Resume(mode, wp)
	c.Status(status)
	return renderPanel(c, view)
}

// POST /products/:id/delete
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	store, ok := h.Panel.store(c)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	id, valid := validate.ID(c.Params("id"))
	if !valid {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}

	var dialog services.DeleteDialog
	dialog.Show(domain.Product{ID: id, Title: c.FormValue("title")})
	err := dialog.Confirm(store)
	if err != nil && !errors.Is(err, services.ErrListStale) {
		applog.Error(c, "products.delete.fail", err, map[string]any{"product": id})
		alert, status := alertFor(AlertDeleteFailed, err)
		if rerr := store.Refresh(); rerr != nil {
			applog.Error(c, "products.list.fail", rerr, nil)
		}
		c.Status(status)
		return renderPanel(c, panelView{Products: store.Products, Alert: alert, Delete: dialog})
	}
	applog.Audit(c, "products.delete", map[string]any{"product": id})
	if err != nil {
		return staleList(c, store, err)
	}
	return renderPanel(c, panelView{Products: store.Products})
}

// POST /products/draft
// Applies image slot edits to the posted working product and shows the
// dialog again. Nothing is sent to the API besides the list fetch.
func (h *ProductHandler) Draft(c *fiber.Ctx) error {
	store, ok := h.Panel.store(c)
	if !ok {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	mode := services.DialogMode(c.FormValue("mode"))
	if mode != services.DialogCreate && mode != services.DialogEdit {
		return c.Status(fiber.StatusBadRequest).SendString("invalid dialog mode")
	}
	wp, err := workingFromForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product form")
	}

	switch c.FormValue("op") {
	case "add_image":
		wp.AddImageSlot()
	case "remove_image":
		wp.RemoveImageSlot()
	}

	view := panelView{}
	if err := store.Refresh(); err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		view.Alert = AlertFetchFailed
	}
	view.Products = store.Products
	view.Dialog.Resume(mode, wp)
	return renderPanel(c, view)
}
