package product

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrUnknownType is returned when a record carries a type outside the enum
	ErrUnknownType = errors.New("unknown product type")

	// ErrInvalidCollection is returned when a payload is not a list of products
	ErrInvalidCollection = errors.New("invalid product collection")
)

type wireAttributes struct {
	Size       *float64    `json:"size,omitempty"`
	Weight     *float64    `json:"weight,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

type wireProduct struct {
	SKU        string         `json:"sku"`
	Name       string         `json:"name"`
	Price      float64        `json:"price"`
	ImageURL   string         `json:"imageUrl"`
	Type       Type           `json:"type"`
	Attributes wireAttributes `json:"attributes"`
	CreatedAt  int64          `json:"createdAt"`
}

// MarshalJSON encodes the product with the attribute shape of its type
func (p Product) MarshalJSON() ([]byte, error) {
	w := wireProduct{
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Type:      p.Type,
		CreatedAt: p.CreatedAt,
	}
	switch a := p.Attributes.(type) {
	case DVD:
		w.Attributes.Size = &a.Size
	case Book:
		w.Attributes.Weight = &a.Weight
	case Furniture:
		d := a.Dimensions
		w.Attributes.Dimensions = &d
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a product, keeping only the attribute key that
// belongs to its type
func (p *Product) UnmarshalJSON(data []byte) error {
	var w wireProduct
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, w.Type)
	}

	var attrs Attributes
	switch w.Type {
	case TypeDVD:
		if w.Attributes.Size != nil {
			attrs = DVD{Size: *w.Attributes.Size}
		}
	case TypeBook:
		if w.Attributes.Weight != nil {
			attrs = Book{Weight: *w.Attributes.Weight}
		}
	case TypeFurniture:
		if w.Attributes.Dimensions != nil {
			attrs = Furniture{Dimensions: *w.Attributes.Dimensions}
		}
	}

	*p = Product{
		SKU:        w.SKU,
		Name:       w.Name,
		Price:      w.Price,
		ImageURL:   w.ImageURL,
		Type:       w.Type,
		Attributes: attrs,
		CreatedAt:  w.CreatedAt,
	}
	return nil
}

// EncodeCollection serializes products as a JSON array
func EncodeCollection(products []Product) ([]byte, error) {
	if products == nil {
		products = []Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("failed to encode products: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a JSON array of products. Anything that is not an
// array of well-formed records with unique, non-empty SKUs is rejected.
func DecodeCollection(data []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidCollection)
	}

	var products []Product
	if err := json.Unmarshal(trimmed, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCollection, err)
	}

	seen := make(SKUSet, len(products))
	for i, p := range products {
		if p.SKU == "" {
			return nil, fmt.Errorf("%w: record %d has no sku", ErrInvalidCollection, i)
		}
		if seen.Has(p.SKU) {
			return nil, fmt.Errorf("%w: duplicate sku %q", ErrInvalidCollection, p.SKU)
		}
		seen[p.SKU] = struct{}{}
	}

	if products == nil {
		products = []Product{}
	}
	return products, nil
}
