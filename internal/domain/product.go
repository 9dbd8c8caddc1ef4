package domain

type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ProductType string `json:"productType"`
}

// Catalog is the full product listing. Truncated is set when pagination
// stopped early because a page could not be fetched.
type Catalog struct {
	Products     []Product `json:"products"`
	ProductTypes []string  `json:"productTypes"`
	Truncated    bool      `json:"-"`
}

func NewCatalog(products []Product, truncated bool) *Catalog {
	if products == nil {
		products = []Product{}
	}
	return &Catalog{
		Products:     products,
		ProductTypes: UniqueProductTypes(products),
		Truncated:    truncated,
	}
}

// UniqueProductTypes returns the distinct product types in order of first occurrence.
func UniqueProductTypes(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.ProductType]; ok {
			continue
		}
		seen[p.ProductType] = struct{}{}
		out = append(out, p.ProductType)
	}
	return out
}
