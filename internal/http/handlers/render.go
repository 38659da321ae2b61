package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"catalogadmin/internal/catalogapi"
	"catalogadmin/internal/domain"
	"catalogadmin/internal/services"
)

// Alert texts shown to the admin.
const (
	AlertLoginFailed  = "login failed"
	AlertFetchFailed  = "fetch products failed"
	AlertCreateFailed = "create product failed"
	AlertUpdateFailed = "update product failed"
	AlertDeleteFailed = "delete product failed"
	AlertInFlight     = "a request is already in progress"
	AlertNotFound     = "product not found"
	AlertBadInput     = "invalid product input"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// panelView is everything the product list page can show at once.
type panelView struct {
	Products []domain.Product
	Alert    string
	Dialog   services.ProductDialog
	Delete   services.DeleteDialog
}

func renderPanel(c *fiber.Ctx, v panelView) error {
	if v.Products == nil {
		v.Products = []domain.Product{}
	}
	return render(c, "index", fiber.Map{
		"Products":   v.Products,
		"Alert":      v.Alert,
		"Dialog":     v.Dialog,
		"DialogOpen": v.Dialog.IsOpen(),
		"Creating":   v.Dialog.Mode == services.DialogCreate,
		"Delete":     v.Delete,
	})
}

func renderLogin(c *fiber.Ctx, username, alert string) error {
	return render(c, "login", fiber.Map{"Username": username, "Alert": alert})
}

// alertFor turns a failed operation into its alert text and response status.
func alertFor(base string, err error) (string, int) {
	switch {
	case errors.Is(err, services.ErrSubmissionInFlight):
		return AlertInFlight, fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidNumber), errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrSlotOutOfRange):
		return AlertBadInput + ": " + err.Error(), fiber.StatusUnprocessableEntity
	}
	var apiErr *catalogapi.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Message != "" {
		return base + ": " + apiErr.Message, fiber.StatusBadRequest
	}
	return base, fiber.StatusBadGateway
}
