package domain

// Product is the catalog record as the remote API stores it.
type Product struct {
	ID          string   `json:"id,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice float64  `json:"origin_price"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	IsEnabled   int      `json:"is_enabled"` // 0 | 1
	ImagesURL   []string `json:"imagesUrl"`
}

func (p Product) Enabled() bool { return p.IsEnabled != 0 }
