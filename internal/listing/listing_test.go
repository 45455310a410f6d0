package listing

import (
	"fmt"
	"testing"

	"github.com/pankajredekar/catalog/internal/product"
)

func sample(n int) []product.Product {
	products := make([]product.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, product.Product{
			SKU:       fmt.Sprintf("SKU%02d", i),
			Name:      fmt.Sprintf("Item %02d", n-i),
			Price:     float64(i),
			Type:      product.TypeDVD,
			CreatedAt: int64(i * 1000),
		})
	}
	return products
}

func skus(items []product.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.SKU
	}
	return out
}

func TestApplyDefaults(t *testing.T) {
	page, err := Apply(sample(25), Options{})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if page.Page != 1 || page.PerPage != DefaultPerPage {
		t.Errorf("Expected page 1 of size %d, got %d of size %d", DefaultPerPage, page.Page, page.PerPage)
	}
	if page.Total != 25 || page.TotalPages != 3 {
		t.Errorf("Expected 25 items on 3 pages, got %d on %d", page.Total, page.TotalPages)
	}
	if len(page.Items) != 10 {
		t.Fatalf("Expected 10 items, got %d", len(page.Items))
	}
	// Newest first
	if page.Items[0].SKU != "SKU25" || page.Items[9].SKU != "SKU16" {
		t.Errorf("Unexpected order %v", skus(page.Items))
	}
}

func TestApplyLastPage(t *testing.T) {
	page, err := Apply(sample(25), Options{Page: 3})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(page.Items) != 5 {
		t.Errorf("Expected 5 items on the last page, got %d", len(page.Items))
	}

	page, err = Apply(sample(25), Options{Page: 4})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(page.Items) != 0 || page.Total != 25 {
		t.Errorf("Expected empty page past the end, got %d items, total %d", len(page.Items), page.Total)
	}
}

func TestApplySortKeys(t *testing.T) {
	tests := []struct {
		opts  Options
		first string
	}{
		{Options{SortBy: SortCreatedAt, Ascending: true}, "SKU01"},
		{Options{SortBy: SortName, Ascending: true}, "SKU05"},
		{Options{SortBy: SortName}, "SKU01"},
		{Options{SortBy: SortPrice}, "SKU05"},
		{Options{SortBy: SortSKU, Ascending: true}, "SKU01"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%v", tt.opts.SortBy, tt.opts.Ascending), func(t *testing.T) {
			page, err := Apply(sample(5), tt.opts)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if page.Items[0].SKU != tt.first {
				t.Errorf("Expected %s first, got %v", tt.first, skus(page.Items))
			}
		})
	}
}

func TestApplyFilterType(t *testing.T) {
	products := sample(4)
	products[1].Type = product.TypeBook
	products[3].Type = product.TypeBook

	page, err := Apply(products, Options{Type: product.TypeBook})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("Expected 2 books, got %d", page.Total)
	}
	for _, p := range page.Items {
		if p.Type != product.TypeBook {
			t.Errorf("Unexpected type %s in filtered list", p.Type)
		}
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	products := sample(3)
	if _, err := Apply(products, Options{SortBy: SortPrice}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if products[0].SKU != "SKU01" {
		t.Errorf("Input was reordered: %v", skus(products))
	}
}

func TestApplyEmpty(t *testing.T) {
	page, err := Apply(nil, Options{})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 || page.TotalPages != 0 {
		t.Errorf("Unexpected empty page %+v", page)
	}
}

func TestApplyInvalidOptions(t *testing.T) {
	if _, err := Apply(sample(1), Options{SortBy: "color"}); err == nil {
		t.Error("Expected error for unknown sort key")
	}
	if _, err := Apply(sample(1), Options{Type: "Lamp"}); err == nil {
		t.Error("Expected error for unknown type")
	}
}
