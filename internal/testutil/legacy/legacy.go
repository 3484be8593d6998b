// Package legacy holds fixtures whose names collide with testutil types.
package legacy

// Order shares its simple name with testutil.Order.
type Order struct {
	Reference string `json:"reference"`
}

// Shipment references the colliding Order.
type Shipment struct {
	Order Order `json:"order"`
}
