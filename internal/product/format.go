package product

import (
	"fmt"
	"strconv"
)

// Describe renders the attributes the way the product list shows them
func Describe(p Product) string {
	switch a := p.Attributes.(type) {
	case DVD:
		return fmt.Sprintf("Size: %s MB", formatNumber(a.Size))
	case Book:
		return fmt.Sprintf("Weight: %s kg", formatNumber(a.Weight))
	case Furniture:
		d := a.Dimensions
		return fmt.Sprintf("Dimensions: %s x %s x %s cm",
			formatNumber(d.Height), formatNumber(d.Width), formatNumber(d.Length))
	}
	return ""
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
