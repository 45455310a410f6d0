package listing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pankajredekar/catalog/internal/product"
)

// DefaultPerPage is the page size of the product list
const DefaultPerPage = 10

// Sort keys
const (
	SortCreatedAt = "createdAt"
	SortName      = "name"
	SortPrice     = "price"
	SortSKU       = "sku"
)

// Options controls ordering, filtering and pagination.
// The zero value lists newest first, ten per page, page 1.
type Options struct {
	SortBy    string
	Ascending bool
	Type      product.Type // empty means all types
	Page      int          // 1-based
	PerPage   int
}

// Page is one page of products
type Page struct {
	Items      []product.Product
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// SortKeys returns the accepted values of Options.SortBy
func SortKeys() []string {
	return []string{SortCreatedAt, SortName, SortPrice, SortSKU}
}

// Apply filters, sorts and paginates products. The input slice is not modified.
// A page past the end returns no items but keeps the totals.
func Apply(products []product.Product, opts Options) (Page, error) {
	less, err := lessFunc(opts.SortBy)
	if err != nil {
		return Page{}, err
	}
	if opts.Type != "" && !opts.Type.Valid() {
		return Page{}, fmt.Errorf("unknown product type %q", opts.Type)
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	items := make([]product.Product, 0, len(products))
	for _, p := range products {
		if opts.Type == "" || p.Type == opts.Type {
			items = append(items, p)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if opts.Ascending {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})

	total := len(items)
	result := Page{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
		Items:      []product.Product{},
	}

	start := (page - 1) * perPage
	if start >= total {
		return result, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	result.Items = items[start:end]
	return result, nil
}

func lessFunc(key string) (func(a, b product.Product) bool, error) {
	switch key {
	case "", SortCreatedAt:
		return func(a, b product.Product) bool { return a.CreatedAt < b.CreatedAt }, nil
	case SortName:
		return func(a, b product.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }, nil
	case SortPrice:
		return func(a, b product.Product) bool { return a.Price < b.Price }, nil
	case SortSKU:
		return func(a, b product.Product) bool { return a.SKU < b.SKU }, nil
	}
	return nil, fmt.Errorf("unknown sort key %q (use one of %s)", key, strings.Join(SortKeys(), ", "))
}
