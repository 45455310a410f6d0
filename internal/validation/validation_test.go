package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/pankajredekar/catalog/internal/product"
)

func validDVD() product.Product {
	return product.Product{
		SKU:        "A1",
		Name:       "Movie",
		Price:      9.99,
		ImageURL:   "http://x/i.png",
		Type:       product.TypeDVD,
		Attributes: product.DVD{Size: 700},
	}
}

func TestValidateValidDVD(t *testing.T) {
	errs := Validate(validDVD(), true, product.NewSKUSet())
	if !errs.Valid() {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		price   float64
		wantErr bool
	}{
		{-10, true},
		{-0.01, true},
		{0, true},
		{math.NaN(), true},
		{math.Inf(1), true},
		{math.Inf(-1), true},
		{0.01, false},
		{9.99, false},
		{100000, false},
	}

	for _, tt := range tests {
		draft := validDVD()
		draft.Price = tt.price
		errs := Validate(draft, true, nil)

		_, hasErr := errs[FieldPrice]
		if hasErr != tt.wantErr {
			t.Errorf("price %v: expected price error %v, got %v", tt.price, tt.wantErr, errs)
		}
		if !tt.wantErr && !errs.Valid() {
			t.Errorf("price %v: expected no errors, got %v", tt.price, errs)
		}
	}
}

func TestValidateSKUUniqueness(t *testing.T) {
	existing := product.NewSKUSet("A1", "B2")

	errs := Validate(validDVD(), true, existing)
	if errs[FieldSKU] != MsgSKUUnique {
		t.Errorf("Expected %q for new record, got %q", MsgSKUUnique, errs[FieldSKU])
	}

	errs = Validate(validDVD(), false, existing)
	if _, ok := errs[FieldSKU]; ok {
		t.Errorf("Editing draft should not report sku error, got %q", errs[FieldSKU])
	}
}

func TestValidateBlankStrings(t *testing.T) {
	draft := validDVD()
	draft.SKU = "   "
	draft.Name = "\t"
	draft.ImageURL = " "

	errs := Validate(draft, true, product.NewSKUSet("   "))
	for _, f := range []string{FieldSKU, FieldName, FieldImageURL} {
		if errs[f] != MsgRequired {
			t.Errorf("Field %s: expected %q, got %q", f, MsgRequired, errs[f])
		}
	}
}

func TestValidateEmptyFurnitureDraft(t *testing.T) {
	draft := product.Product{Type: product.TypeFurniture}

	errs := Validate(draft, true, product.NewSKUSet())

	want := []string{FieldHeight, FieldImageURL, FieldLength, FieldName, FieldPrice, FieldSKU, FieldWidth}
	got := errs.Fields()
	if len(got) != len(want) {
		t.Fatalf("Expected %d errors, got %d: %v", len(want), len(got), errs)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected field %s at %d, got %s", want[i], i, got[i])
		}
	}
}

func TestValidateTypeSpecific(t *testing.T) {
	tests := []struct {
		name       string
		typ        product.Type
		attrs      product.Attributes
		wantFields []string
	}{
		{"dvd missing size", product.TypeDVD, nil, []string{FieldSize}},
		{"dvd negative size", product.TypeDVD, product.DVD{Size: -1}, []string{FieldSize}},
		{"dvd with book shape", product.TypeDVD, product.Book{Weight: 3}, []string{FieldSize}},
		{"book ok", product.TypeBook, product.Book{Weight: 1.2}, nil},
		{"dvd infinite size", product.TypeDVD, product.DVD{Size: math.Inf(1)}, []string{FieldSize}},
		{"book zero weight", product.TypeBook, product.Book{}, []string{FieldWeight}},
		{"book infinite weight", product.TypeBook, product.Book{Weight: math.Inf(1)}, []string{FieldWeight}},
		{"furniture ok", product.TypeFurniture, product.Furniture{Dimensions: product.Dimensions{Height: 1, Width: 2, Length: 3}}, nil},
		{"furniture missing width", product.TypeFurniture, product.Furniture{Dimensions: product.Dimensions{Height: 1, Length: 3}}, []string{FieldWidth}},
		{"furniture infinite height", product.TypeFurniture, product.Furniture{Dimensions: product.Dimensions{Height: math.Inf(1), Width: 2, Length: 3}}, []string{FieldHeight}},
		{"furniture all missing", product.TypeFurniture, nil, []string{FieldHeight, FieldLength, FieldWidth}},
		{"unknown type", product.Type("Vinyl"), nil, []string{FieldType}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDVD()
			draft.Type = tt.typ
			draft.Attributes = tt.attrs

			got := Validate(draft, true, nil).Fields()
			if len(got) != len(tt.wantFields) {
				t.Fatalf("Expected fields %v, got %v", tt.wantFields, got)
			}
			for i := range got {
				if got[i] != tt.wantFields[i] {
					t.Errorf("Expected fields %v, got %v", tt.wantFields, got)
				}
			}
		})
	}
}

func TestErrorsError(t *testing.T) {
	errs := Errors{FieldPrice: MsgPrice, FieldName: MsgRequired}
	msg := errs.Error()
	if !strings.HasPrefix(msg, "name: ") {
		t.Errorf("Expected sorted fields in message, got %q", msg)
	}
	if !strings.Contains(msg, "price: "+MsgPrice) {
		t.Errorf("Expected price message, got %q", msg)
	}
}
