package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const PlaceholderImage = "https://via.placeholder.com/300x200?text=No+Image"

// Taka is a price in BDT. The catalog API serializes decimals as strings,
// so unmarshalling accepts both string and numeric JSON; anything that does
// not parse becomes 0.
type Taka float64

func (t *Taka) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*t = 0
		return nil
	}
	*t = Taka(value)
	return nil
}

func (t Taka) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(t))
}

type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"product_count,omitempty"`
}

type Product struct {
	ID            int       `json:"id"`
	Category      *Category `json:"category,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug,omitempty"`
	Image         string    `json:"image,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Price         Taka      `json:"price"`
	DiscountPrice Taka      `json:"discount_price,omitempty"`
	Description   string    `json:"description,omitempty"`
	Stock         int       `json:"stock"`
	Available     bool      `json:"available"`
	Featured      bool      `json:"featured,omitempty"`
	Created       string    `json:"created,omitempty"`
	Updated       string    `json:"updated,omitempty"`
}

// EffectivePrice is the discount price when one is set and actually lower.
func (p *Product) EffectivePrice() Taka {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

func (p *Product) HasDiscount() bool {
	return p.DiscountPrice > 0 && p.DiscountPrice < p.Price
}

// DisplayImage resolves the image reference against the catalog base URL,
// falling back to a placeholder when the product carries no image at all.
func (p *Product) DisplayImage(baseURL string) string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if p.Image == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(p.Image, "http://") || strings.HasPrefix(p.Image, "https://") {
		return p.Image
	}
	if strings.HasPrefix(p.Image, "/") {
		return baseURL + p.Image
	}
	return baseURL + "/media/" + p.Image
}

// CreatedTime parses the catalog timestamp; products without one sort as
// the zero time.
func (p *Product) CreatedTime() time.Time {
	if p.Created == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, p.Created); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
