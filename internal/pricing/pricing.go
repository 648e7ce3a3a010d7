// Package pricing computes cart totals. It is pure: no I/O, same inputs
// always give the same Totals.
package pricing

import "github.com/getbarcodesolutions-star/GBS/internal/domain"

const (
	// TaxRate is the flat 18% GST applied to the subtotal.
	TaxRate = 0.18

	// DeliveryFee is charged on any non-empty cart below FreeDeliveryAt.
	DeliveryFee    = 100.0
	FreeDeliveryAt = 1999.0
)

type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DeliveryCharge float64 `json:"delivery_charge"`
	GrandTotal     float64 `json:"grand_total"`
}

// Calculate derives totals from desired quantities and the catalog.
// Quantities referencing products missing from the catalog contribute
// nothing; they are not an error.
func Calculate(quantities map[int64]int, catalog []domain.Product) Totals {
	var subtotal float64
	for _, p := range catalog {
		qty := quantities[p.ID]
		if qty <= 0 {
			continue
		}
		subtotal += p.Price * float64(qty)
	}

	t := Totals{
		Subtotal:       subtotal,
		TaxAmount:      subtotal * TaxRate,
		DeliveryCharge: deliveryCharge(subtotal),
	}
	t.GrandTotal = t.Subtotal + t.TaxAmount + t.DeliveryCharge
	return t
}

// CalculateItems is Calculate over already-frozen order items, using the
// price captured on each item.
func CalculateItems(items []domain.OrderItem) Totals {
	var subtotal float64
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		subtotal += item.Price * float64(item.Quantity)
	}

	t := Totals{
		Subtotal:       subtotal,
		TaxAmount:      subtotal * TaxRate,
		DeliveryCharge: deliveryCharge(subtotal),
	}
	t.GrandTotal = t.Subtotal + t.TaxAmount + t.DeliveryCharge
	return t
}

func deliveryCharge(subtotal float64) float64 {
	if subtotal == 0 {
		return 0
	}
	if subtotal >= FreeDeliveryAt {
		return 0
	}
	return DeliveryFee
}
