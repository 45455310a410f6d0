package catalog

import (
	"context"

	"github.com/pankajredekar/catalog/internal/draft"
	"github.com/pankajredekar/catalog/internal/listing"
	"github.com/pankajredekar/catalog/internal/product"
	"github.com/pankajredekar/catalog/internal/skugen"
	"github.com/pankajredekar/catalog/internal/storage"
	"github.com/pankajredekar/catalog/internal/store"
	"github.com/pankajredekar/catalog/internal/upload"
	"github.com/pankajredekar/catalog/internal/validation"
)

// Product types
type (
	Product    = product.Product
	Type       = product.Type
	Attributes = product.Attributes
	DVD        = product.DVD
	Book       = product.Book
	Furniture  = product.Furniture
	Dimensions = product.Dimensions
	SKUSet     = product.SKUSet
)

const (
	TypeDVD       = product.TypeDVD
	TypeBook      = product.TypeBook
	TypeFurniture = product.TypeFurniture
)

// Store and its storage
type (
	Store       = store.Store
	StoreOption = store.Option
	Backend     = storage.Backend
)

// Validation result, field key to message
type Errors = validation.Errors

// Draft is one form session
type Draft = draft.Draft

type (
	Uploader    = upload.Uploader
	ListOptions = listing.Options
	ListPage    = listing.Page
)

var (
	ErrNotFound     = store.ErrNotFound
	ErrDuplicateSKU = store.ErrDuplicateSKU
	ErrCorruptState = store.ErrCorruptState
	ErrSaveFailed   = store.ErrSaveFailed
	ErrInvalid      = draft.ErrInvalid
)

// OpenStorage connects to a storage URL such as file://./data or bolt://catalog.db
func OpenStorage(ctx context.Context, url string) (Backend, error) {
	return storage.Open(ctx, url)
}

// NewStore creates a store on backend. Call Initialize before use.
func NewStore(backend Backend, opts ...StoreOption) *Store {
	return store.New(backend, opts...)
}

// Validate checks a draft product
func Validate(p Product, isNew bool, existing SKUSet) Errors {
	return validation.Validate(p, isNew, existing)
}

// GenerateSKU returns a new SKU
func GenerateSKU() string {
	return skugen.Generate()
}

// NewDraft starts a draft for a new product
func NewDraft() *Draft {
	return draft.New(skugen.Generate)
}

// EditDraft starts a draft for the stored product with the given SKU
func EditDraft(s *Store, sku string) (*Draft, error) {
	return draft.Edit(s, sku)
}

// List sorts and paginates products
func List(products []Product, opts ListOptions) (ListPage, error) {
	return listing.Apply(products, opts)
}
