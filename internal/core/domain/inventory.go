package domain

// StockItem is one row of the produtos table.
type StockItem struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// Withdrawal describes units taken out of an item.
type Withdrawal struct {
	Name      string `json:"name"`
	Withdrawn int    `json:"withdrawn"`
	Remaining int    `json:"remaining"`
}

// Edit describes an in-place rename and/or quantity change.
type Edit struct {
	Name string    `json:"name"` // name the rows were matched by
	Item StockItem `json:"item"`
}
