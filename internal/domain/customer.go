package domain

// CustomerSummary is one entry of the paginated customer list.
type CustomerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomerPage is a paginated list of unique customers, deduplicated in
// first-seen table order.
type CustomerPage struct {
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	TotalItems int               `json:"total_items"`
	Customers  []CustomerSummary `json:"customers"`
}

// CustomerStats is the per-customer rollup computed from the table.
// Spent and received are split by amount sign; spent is reported as a
// positive magnitude.
type CustomerStats struct {
	TransactionCount int     `json:"transaction_count"`
	TotalSpent       float64 `json:"total_spent"`
	TotalReceived    float64 `json:"total_received"`
	CurrentBalance   float64 `json:"current_balance"`
}

// CustomerProfile is the full per-customer view.
type CustomerProfile struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Stats CustomerStats `json:"stats"`
}

// TopCustomer ranks a customer by transaction volume.
type TopCustomer struct {
	ID               string `json:"id"`
	TransactionCount int    `json:"transaction_count"`
}
