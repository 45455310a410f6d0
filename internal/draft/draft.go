package draft

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pankajredekar/catalog/internal/product"
	"github.com/pankajredekar/catalog/internal/store"
	"github.com/pankajredekar/catalog/internal/upload"
	"github.com/pankajredekar/catalog/internal/validation"
)

// FieldSubmit holds errors that are not tied to a single input
const FieldSubmit = "submit"

const (
	MsgSaveFailed   = "Failed to save product"
	MsgUploadFailed = "Failed to upload image"
)

var (
	// ErrInvalid is returned by Submit when validation fails; see Errors
	ErrInvalid = errors.New("product has invalid fields")

	// ErrAlreadyPersisted is returned when a submitted draft is submitted again
	ErrAlreadyPersisted = errors.New("draft already saved")

	// ErrSKUImmutable is returned when changing the SKU of an existing product
	ErrSKUImmutable = errors.New("sku of an existing product cannot change")

	// ErrAttributesMismatch is returned when attributes do not fit the draft type
	ErrAttributesMismatch = errors.New("attributes do not match product type")
)

// State of a draft session
type State int

const (
	StateNew State = iota
	StateEditing
	StatePersisted
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateEditing:
		return "editing"
	case StatePersisted:
		return "persisted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Draft collects edits to one product until it is submitted
type Draft struct {
	state   State
	product product.Product
	errs    validation.Errors
}

// New starts a draft for a new product with a generated SKU
func New(generate func() string) *Draft {
	d := &Draft{
		state: StateNew,
		product: product.Product{
			Type: product.TypeDVD,
		},
		errs: validation.Errors{},
	}
	if generate != nil {
		d.product.SKU = generate()
	}
	return d
}

// Edit starts a draft from the stored product with the given SKU
func Edit(s *store.Store, sku string) (*Draft, error) {
	p, ok := s.Get(sku)
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, sku)
	}
	return &Draft{
		state:   StateEditing,
		product: p,
		errs:    validation.Errors{},
	}, nil
}

// State returns the lifecycle state of the draft
func (d *Draft) State() State { return d.state }

// Product returns the current draft values
func (d *Draft) Product() product.Product { return d.product }

// Errors returns a copy of the errors from the last Submit or AttachImage
func (d *Draft) Errors() validation.Errors {
	out := make(validation.Errors, len(d.errs))
	for k, v := range d.errs {
		out[k] = v
	}
	return out
}

// SetSKU sets the SKU. Once the draft edits a stored product the SKU is fixed
// and any other value returns ErrSKUImmutable.
func (d *Draft) SetSKU(sku string) error {
	if d.state != StateNew && sku != d.product.SKU {
		return ErrSKUImmutable
	}
	d.product.SKU = sku
	return nil
}

// SetName sets the display name
func (d *Draft) SetName(name string) { d.product.Name = name }

// SetPrice sets the price. It is checked on Submit, not here.
func (d *Draft) SetPrice(price float64) { d.product.Price = price }

// SetImageURL sets the image URL directly, bypassing AttachImage
func (d *Draft) SetImageURL(url string) { d.product.ImageURL = url }

// SetType switches the product type. Attributes of the previous type are dropped.
func (d *Draft) SetType(t product.Type) {
	if t == d.product.Type {
		return
	}
	d.product.Type = t
	d.product.Attributes = nil
}

// SetAttributes replaces the attributes; they must belong to the current type
func (d *Draft) SetAttributes(a product.Attributes) error {
	if a != nil && a.Type() != d.product.Type {
		return fmt.Errorf("%w: %s attributes on %s", ErrAttributesMismatch, a.Type(), d.product.Type)
	}
	d.product.Attributes = a
	return nil
}

// Submit validates the draft and saves it. New drafts are added, edited
// drafts update the stored product. On failure the draft keeps its values.
func (d *Draft) Submit(ctx context.Context, s *store.Store) (product.Product, error) {
	if d.state == StatePersisted {
		return product.Product{}, ErrAlreadyPersisted
	}

	isNew := d.state == StateNew
	d.errs = validation.Validate(d.product, isNew, s.SKUs())
	if !d.errs.Valid() {
		return product.Product{}, fmt.Errorf("%w: %v", ErrInvalid, d.errs)
	}

	var (
		saved product.Product
		err   error
	)
	if isNew {
		saved, err = s.Add(ctx, d.product)
	} else {
		saved, err = s.Update(ctx, d.product)
	}
	if err != nil {
		d.errs[FieldSubmit] = MsgSaveFailed
		return product.Product{}, err
	}

	d.product = saved
	d.state = StatePersisted
	return saved, nil
}

// AttachImage uploads an image and stores the resulting URL in the draft.
// A failed upload only affects the imageUrl field.
func (d *Draft) AttachImage(ctx context.Context, u upload.Uploader, name string, r io.Reader) error {
	url, err := u.Upload(ctx, name, r)
	if err != nil {
		d.errs[validation.FieldImageURL] = MsgUploadFailed
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	d.product.ImageURL = url
	delete(d.errs, validation.FieldImageURL)
	return nil
}
