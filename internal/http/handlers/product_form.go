package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catalogadmin/internal/domain"
)

var productFields = []string{
	"imageUrl", "title", "category", "unit", "origin_price", "price",
	"description", "content", "is_enabled",
}

// workingFromForm rebuilds the dialog's working product from a posted form.
// Image slots keep their posted order.
func workingFromForm(c *fiber.Ctx) (*domain.WorkingProduct, error) {
	wp := domain.BlankProduct()
	wp.ID = c.FormValue("id")
	for _, name := range productFields {
		if err := wp.SetField(name, c.FormValue(name)); err != nil {
			return nil, err
		}
	}

	var images []string
	for _, v := range c.Request().PostArgs().PeekMulti("imagesUrl") {
		images = append(images, string(v))
	}
	for i := 1; i < len(images); i++ {
		wp.AddImageSlot()
	}
	for i, url := range images {
		if err := wp.SetImageAt(i, url); err != nil {
			return nil, err
		}
	}
	return wp, nil
}
