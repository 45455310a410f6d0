package validation

import (
	"math"
	"sort"
	"strings"

	"github.com/pankajredekar/catalog/internal/product"
)

// Field keys used in Errors
const (
	FieldSKU      = "sku"
	FieldName     = "name"
	FieldPrice    = "price"
	FieldImageURL = "imageUrl"
	FieldType     = "type"
	FieldSize     = "size"
	FieldWeight   = "weight"
	FieldHeight   = "height"
	FieldWidth    = "width"
	FieldLength   = "length"
)

// Messages shown for each kind of violation
const (
	MsgRequired  = "Please, submit required data"
	MsgSKUUnique = "SKU must be unique"
	MsgPrice     = "Please, provide valid price"
	MsgType      = "Please, select a product type"
	MsgSize      = "Please, provide valid size"
	MsgWeight    = "Please, provide valid weight"
	MsgHeight    = "Please, provide valid height"
	MsgWidth     = "Please, provide valid width"
	MsgLength    = "Please, provide valid length"
)

// Errors maps a field key to its error message
type Errors map[string]string

// Valid reports whether there are no errors
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the field keys in sorted order
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error implements the error interface
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// Validate checks a draft and returns every violation found.
// existing is only consulted for new records.
func Validate(draft product.Product, isNew bool, existing product.SKUSet) Errors {
	errs := Errors{}

	if strings.TrimSpace(draft.SKU) == "" {
		errs[FieldSKU] = MsgRequired
	} else if isNew && existing.Has(draft.SKU) {
		errs[FieldSKU] = MsgSKUUnique
	}

	if strings.TrimSpace(draft.Name) == "" {
		errs[FieldName] = MsgRequired
	}

	if !positive(draft.Price) {
		errs[FieldPrice] = MsgPrice
	}

	if strings.TrimSpace(draft.ImageURL) == "" {
		errs[FieldImageURL] = MsgRequired
	}

	validateAttributes(draft, errs)

	return errs
}

func validateAttributes(draft product.Product, errs Errors) {
	switch draft.Type {
	case product.TypeDVD:
		a, _ := draft.Attributes.(product.DVD)
		if !positive(a.Size) {
			errs[FieldSize] = MsgSize
		}
	case product.TypeBook:
		a, _ := draft.Attributes.(product.Book)
		if !positive(a.Weight) {
			errs[FieldWeight] = MsgWeight
		}
	case product.TypeFurniture:
		a, _ := draft.Attributes.(product.Furniture)
		if !positive(a.Dimensions.Height) {
			errs[FieldHeight] = MsgHeight
		}
		if !positive(a.Dimensions.Width) {
			errs[FieldWidth] = MsgWidth
		}
		if !positive(a.Dimensions.Length) {
			errs[FieldLength] = MsgLength
		}
	default:
		errs[FieldType] = MsgType
	}
}

// positive rejects NaN and +Inf, neither can be stored
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
