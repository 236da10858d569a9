package domain

// TransactionRecord is the per-row projection returned by the API.
// Optional fields are pointers so that "absent" serializes as JSON null
// instead of a zero value (a zip code of 0 is not a real zip code).
type TransactionRecord struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Amount          float64  `json:"amount"`
	Type            string   `json:"type"`
	NameOrig        string   `json:"nameOrig"`
	NameDest        string   `json:"nameDest"`
	FormattedAmount string   `json:"formatted_amount"`
	ClientID        *float64 `json:"client_id,omitempty"`
	CardID          *float64 `json:"card_id,omitempty"`
	MerchantID      *float64 `json:"merchant_id,omitempty"`
	UseChip         *string  `json:"use_chip,omitempty"`
	MerchantCity    *string  `json:"merchant_city,omitempty"`
	MerchantState   *string  `json:"merchant_state"`
	Zip             *float64 `json:"zip"`
	MCC             *float64 `json:"mcc,omitempty"`
	Errors          *string  `json:"errors"`
}

// TransactionPage is a paginated slice of transactions plus totals.
type TransactionPage struct {
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"total_pages"`
	TotalItems   int                 `json:"total_items"`
	Transactions []TransactionRecord `json:"transactions"`
}

// SearchCriteria are the optional filters accepted by the search endpoint.
type SearchCriteria struct {
	Type      string   `json:"type,omitempty"`
	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
}
