package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pankajredekar/catalog/internal/draft"
	"github.com/pankajredekar/catalog/internal/product"
	"github.com/pankajredekar/catalog/internal/upload"
	"github.com/pankajredekar/catalog/internal/utils"
	"github.com/pankajredekar/catalog/internal/validation"
	"github.com/spf13/cobra"
)

// productFlags are the field flags shared by add and edit
type productFlags struct {
	sku       string
	name      string
	price     float64
	image     string
	imageFile string
	typ       string
	size      float64
	weight    float64
	height    float64
	width     float64
	length    float64
}

// attributeFlags lists the attribute flags of each type
var attributeFlags = map[product.Type][]string{
	product.TypeDVD:       {"size"},
	product.TypeBook:      {"weight"},
	product.TypeFurniture: {"height", "width", "length"},
}

func (f *productFlags) register(cmd *cobra.Command, withSKU bool) {
	flags := cmd.Flags()
	if withSKU {
		flags.StringVar(&f.sku, "sku", "", "product SKU (generated when omitted)")
	}
	flags.StringVar(&f.name, "name", "", "product name")
	flags.Float64Var(&f.price, "price", 0, "price")
	flags.StringVar(&f.image, "image", "", "image URL")
	flags.StringVar(&f.imageFile, "image-file", "", "upload a local image and use its URL")
	flags.StringVarP(&f.typ, "type", "t", "", "product type: DVD, Book or Furniture")
	flags.Float64Var(&f.size, "size", 0, "DVD size in MB")
	flags.Float64Var(&f.weight, "weight", 0, "book weight in kg")
	flags.Float64Var(&f.height, "height", 0, "furniture height in cm")
	flags.Float64Var(&f.width, "width", 0, "furniture width in cm")
	flags.Float64Var(&f.length, "length", 0, "furniture length in cm")
}

// apply copies every flag given on the command line into the draft
func (f *productFlags) apply(ctx context.Context, cmd *cobra.Command, a *app, d *draft.Draft) error {
	changed := cmd.Flags().Changed

	if changed("sku") {
		if err := d.SetSKU(f.sku); err != nil {
			return err
		}
	}
	if changed("name") {
		d.SetName(f.name)
	}
	if changed("price") {
		d.SetPrice(f.price)
	}
	if changed("image") {
		d.SetImageURL(f.image)
	}
	if changed("type") {
		t, ok := product.ParseType(f.typ)
		if !ok {
			// left for validation to report
			t = product.Type(f.typ)
		}
		d.SetType(t)
	}

	if err := f.applyAttributes(changed, d); err != nil {
		return err
	}

	if changed("image-file") {
		if err := attachImage(ctx, a, d, f.imageFile); err != nil {
			return err
		}
	}
	return nil
}

func (f *productFlags) applyAttributes(changed func(string) bool, d *draft.Draft) error {
	p := d.Product()
	for t, names := range attributeFlags {
		if t == p.Type {
			continue
		}
		for _, name := range names {
			if changed(name) {
				utils.PrintWarning("--%s ignored for type %s", name, p.Type)
			}
		}
	}

	switch p.Type {
	case product.TypeDVD:
		if changed("size") {
			return d.SetAttributes(product.DVD{Size: f.size})
		}
	case product.TypeBook:
		if changed("weight") {
			return d.SetAttributes(product.Book{Weight: f.weight})
		}
	case product.TypeFurniture:
		if !changed("height") && !changed("width") && !changed("length") {
			return nil
		}
		a, _ := p.Attributes.(product.Furniture)
		if changed("height") {
			a.Dimensions.Height = f.height
		}
		if changed("width") {
			a.Dimensions.Width = f.width
		}
		if changed("length") {
			a.Dimensions.Length = f.length
		}
		return d.SetAttributes(a)
	}
	return nil
}

func attachImage(ctx context.Context, a *app, d *draft.Draft, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	uploader := upload.NewPlaceholder(a.cfg.Upload.BaseURL, a.cfg.Upload.Delay)
	if err := d.AttachImage(ctx, uploader, filepath.Base(path), file); err != nil {
		utils.PrintError("imageUrl: %s", d.Errors()[validation.FieldImageURL])
		return err
	}
	return nil
}

// submit saves the draft and prints the field errors when it is rejected
func submit(ctx context.Context, a *app, d *draft.Draft) (product.Product, error) {
	saved, err := d.Submit(ctx, a.store)
	if err == nil {
		return saved, nil
	}

	errs := d.Errors()
	for _, field := range errs.Fields() {
		utils.PrintError("%s: %s", field, errs[field])
	}
	if errors.Is(err, draft.ErrInvalid) {
		return product.Product{}, fmt.Errorf("product %s was not saved", d.Product().SKU)
	}
	return product.Product{}, err
}
