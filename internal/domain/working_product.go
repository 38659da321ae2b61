package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownField   = errors.New("unknown product field")
	ErrSlotOutOfRange = errors.New("image slot out of range")
	ErrInvalidNumber  = errors.New("invalid number")
)

// WorkingProduct is the scratch copy edited by the product dialog. Prices stay
// as the raw form strings until Payload converts them.
type WorkingProduct struct {
	ID          string
	ImageURL    string
	Title       string
	Category    string
	Unit        string
	OriginPrice string
	Price       string
	Description string
	Content     string
	IsEnabled   bool
	ImagesURL   []string
}

// BlankProduct is the template loaded when the dialog opens in create mode.
func BlankProduct() *WorkingProduct {
	return &WorkingProduct{ImagesURL: []string{""}}
}

// EditProduct copies p into a working product.
func EditProduct(p Product) *WorkingProduct {
	wp := &WorkingProduct{
		ID:          p.ID,
		ImageURL:    p.ImageURL,
		Title:       p.Title,
		Category:    p.Category,
		Unit:        p.Unit,
		OriginPrice: formatNumber(p.OriginPrice),
		Price:       formatNumber(p.Price),
		Description: p.Description,
		Content:     p.Content,
		IsEnabled:   p.Enabled(),
		ImagesURL:   append([]string(nil), p.ImagesURL...),
	}
	if len(wp.ImagesURL) == 0 {
		wp.ImagesURL = []string{""}
	}
	return wp
}

// SetField assigns one dialog field by its wire name.
func (wp *WorkingProduct) SetField(name, value string) error {
	switch name {
	case "imageUrl":
		wp.ImageURL = value
	case "title":
		wp.Title = value
	case "category":
		wp.Category = value
	case "unit":
		wp.Unit = value
	case "origin_price":
		wp.OriginPrice = value
	case "price":
		wp.Price = value
	case "description":
		wp.Description = value
	case "content":
		wp.Content = value
	case "is_enabled":
		wp.IsEnabled = checked(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func (wp *WorkingProduct) SetImageAt(i int, url string) error {
	if i < 0 || i >= len(wp.ImagesURL) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
	}
	wp.ImagesURL[i] = url
	return nil
}

func (wp *WorkingProduct) AddImageSlot() {
	wp.ImagesURL = append(wp.ImagesURL, "")
}

// RemoveImageSlot drops the last slot. The final slot is never removed.
func (wp *WorkingProduct) RemoveImageSlot() {
	if len(wp.ImagesURL) <= 1 {
		if len(wp.ImagesURL) == 0 {
			wp.ImagesURL = []string{""}
		}
		return
	}
	wp.ImagesURL = wp.ImagesURL[:len(wp.ImagesURL)-1]
}

// Payload builds the product sent to the API: prices become numbers and the
// enabled flag becomes 0 or 1.
func (wp *WorkingProduct) Payload() (Product, error) {
	origin, err := parseNumber(wp.OriginPrice)
	if err != nil {
		return Product{}, fmt.Errorf("origin_price: %w", err)
	}
	price, err := parseNumber(wp.Price)
	if err != nil {
		return Product{}, fmt.Errorf("price: %w", err)
	}
	enabled := 0
	if wp.IsEnabled {
		enabled = 1
	}
	images := append([]string(nil), wp.ImagesURL...)
	if len(images) == 0 {
		images = []string{""}
	}
	return Product{
		ID:          wp.ID,
		ImageURL:    wp.ImageURL,
		Title:       wp.Title,
		Category:    wp.Category,
		Unit:        wp.Unit,
		OriginPrice: origin,
		Price:       price,
		Description: wp.Description,
		Content:     wp.Content,
		IsEnabled:   enabled,
		ImagesURL:   images,
	}, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}
