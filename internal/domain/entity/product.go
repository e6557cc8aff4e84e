package entity

// Product is a catalog entry. The catalog is populated outside this service.
type Product struct {
	ID       int64
	Type     string
	Name     string
	Price    float64
	OldPrice *float64 // Nil when the product is not discounted.
	InStock  bool
	ImgSrc   string
}
