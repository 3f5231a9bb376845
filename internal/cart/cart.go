// Package cart holds the customer's selected line items prior to checkout and
// keeps them persisted in a durable key-value slot after every mutation.
package cart

// Item is a single cart line. There is at most one Item per ProductID;
// adding the same product again replaces the stored quantity.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line amount for this item.
func (i Item) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Summary aggregates cart statistics. Computed on read, never stored, so it
// cannot drift from the item list.
type Summary struct {
	Lines int     `json:"lines"`
	Units int     `json:"units"`
	Total float64 `json:"total"`
}
