package product

import "strings"

// Type is the product type discriminant
type Type string

const (
	TypeDVD       Type = "DVD"
	TypeBook      Type = "Book"
	TypeFurniture Type = "Furniture"
)

// Types returns all known product types in display order
func Types() []Type {
	return []Type{TypeDVD, TypeBook, TypeFurniture}
}

// Valid reports whether t is a known product type
func (t Type) Valid() bool {
	switch t {
	case TypeDVD, TypeBook, TypeFurniture:
		return true
	}
	return false
}

// ParseType converts user input into a Type, ignoring case
func ParseType(s string) (Type, bool) {
	for _, t := range Types() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// Attributes is the type-specific part of a product.
// Only DVD, Book and Furniture implement it.
type Attributes interface {
	Type() Type
	sealed()
}

// DVD attributes, size in MB
type DVD struct {
	Size float64
}

// Book attributes, weight in kg
type Book struct {
	Weight float64
}

// Dimensions in cm
type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// Furniture attributes
type Furniture struct {
	Dimensions Dimensions
}

func (DVD) Type() Type       { return TypeDVD }
func (Book) Type() Type      { return TypeBook }
func (Furniture) Type() Type { return TypeFurniture }

func (DVD) sealed()       {}
func (Book) sealed()      {}
func (Furniture) sealed() {}

// Product is a catalog record identified by its SKU.
// A Product with CreatedAt == 0 is a draft that has not been stored yet.
type Product struct {
	SKU        string
	Name       string
	Price      float64
	ImageURL   string
	Type       Type
	Attributes Attributes // nil means no attributes
	CreatedAt  int64      // Unix milliseconds
}

// MatchesType reports whether the attribute shape agrees with the product type
func (p Product) MatchesType() bool {
	return p.Attributes == nil || p.Attributes.Type() == p.Type
}

// SKUSet is a set of SKUs
type SKUSet map[string]struct{}

// NewSKUSet builds a set from the given SKUs
func NewSKUSet(skus ...string) SKUSet {
	set := make(SKUSet, len(skus))
	for _, sku := range skus {
		set[sku] = struct{}{}
	}
	return set
}

// Has reports whether sku is in the set
func (s SKUSet) Has(sku string) bool {
	_, ok := s[sku]
	return ok
}
