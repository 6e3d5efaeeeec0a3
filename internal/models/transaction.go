package models

import "time"

// Transaction is one sale parsed from a line of an uploaded transaction file.
type Transaction struct {
	StaffID  int
	Time     time.Time
	Products []Product
	Amount   float64
}

// Product is a single productId:quantity line item within a transaction.
type Product struct {
	ID       string
	Quantity int
}

// TotalUnits returns the summed quantity across the transaction's line items.
func (t Transaction) TotalUnits() int {
	units := 0
	for _, p := range t.Products {
		units += p.Quantity
	}
	return units
}
